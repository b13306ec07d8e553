package tokens

import (
	"strings"
)

// CSSVars converts flattened tokens into CSS custom properties ("--name").
func CSSVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !strings.HasPrefix(key, "--") {
			key = "--" + key
		}
		out[key] = value
	}
	return out
}

// Stylesheet renders CSS variables as a deterministic :root block.
func Stylesheet(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range sortedKeys(vars) {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// UtilityConfig is the utility-CSS configuration: semantic names resolved to
// CSS custom property references, consumed by the build of assets/site.css and
// by components that emit arbitrary-value classes.
type UtilityConfig struct {
	Colors       map[string]string `json:"colors"`
	Spacing      map[string]string `json:"spacing"`
	BorderRadius map[string]string `json:"borderRadius"`
	FontSize     map[string]string `json:"fontSize"`
	FontFamily   map[string]string `json:"fontFamily"`
	Screens      map[string]string `json:"screens"`
}

// Utilities returns the utility configuration for the current token tables.
func Utilities() UtilityConfig {
	cfg := UtilityConfig{
		Colors:       make(map[string]string, len(Colors)),
		Spacing:      make(map[string]string, len(Spacing)),
		BorderRadius: make(map[string]string, len(Radii)),
		FontSize:     make(map[string]string, len(Type.Sizes)),
		FontFamily: map[string]string{
			"sans":  "var(--font-sans)",
			"serif": "var(--font-serif)",
		},
		Screens: make(map[string]string, len(Breakpoints)),
	}
	for name := range Colors {
		cfg.Colors[name] = varRef("color-" + name)
	}
	for name := range Spacing {
		cfg.Spacing[name] = varRef("space-" + name)
	}
	for name := range Radii {
		cfg.BorderRadius[name] = varRef("radius-" + name)
	}
	for name := range Type.Sizes {
		cfg.FontSize[name] = varRef("font-size-" + name)
	}
	for name, value := range Flatten() {
		if bp, ok := strings.CutPrefix(name, "breakpoint-"); ok {
			cfg.Screens[bp] = value
		}
	}
	return cfg
}

func varRef(name string) string {
	return "var(--" + name + ")"
}
