package tokens

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	ThemeName           = "medsite"
	ThemeVersion        = "1.0.0"
	VariantDefault      = "default"
	VariantHighContrast = "high-contrast"

	AssetStylesheet = "site.stylesheet"
	AssetScript     = "site.script"
)

// ErrUnknownTheme is returned when a selector is asked for a theme it does not
// manage.
var ErrUnknownTheme = errors.New("tokens: unknown theme")

// DefaultPartials maps template keys to the bundled template paths. Theme
// manifests and variants override individual entries.
func DefaultPartials() map[string]string {
	return map[string]string{
		"layout.base":   "templates/layouts/base.tmpl",
		"layout.header": "templates/partials/header.tmpl",
		"layout.footer": "templates/partials/footer.tmpl",
		"ui.button":     "templates/components/button.tmpl",
		"ui.input":      "templates/components/input.tmpl",
		"ui.textarea":   "templates/components/textarea.tmpl",
		"ui.select":     "templates/components/select.tmpl",
		"ui.checkbox":   "templates/components/checkbox.tmpl",
		"ui.radio":      "templates/components/radio.tmpl",
		"ui.card":       "templates/components/card.tmpl",
		"ui.image":      "templates/components/image.tmpl",
	}
}

// Manifest builds the go-theme manifest for the site. The high-contrast variant
// darkens text and borders and strengthens the focus ring.
func Manifest() *theme.Manifest {
	return &theme.Manifest{
		Name:      ThemeName,
		Version:   ThemeVersion,
		Tokens:    Flatten(),
		Templates: DefaultPartials(),
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				AssetStylesheet: "site.css",
				AssetScript:     "site.js",
			},
		},
		Variants: map[string]theme.Variant{
			VariantHighContrast: {
				Tokens: map[string]string{
					"color-foreground":    "#000000",
					"color-muted":         "#1E293B",
					"color-border":        "#0F172A",
					"color-primary":       "#0B4F63",
					"color-focus":         "#B45309",
					"focus-ring-color":    "#B45309",
					"focus-ring-width":    "3px",
					"color-surface":       "#FFFFFF",
					"color-surface-muted": "#FFFFFF",
				},
			},
		},
	}
}

// Selector resolves theme selections for the site manifest. It satisfies
// theme.ThemeSelector so it can be handed to anything that consumes go-theme
// selectors.
type Selector struct {
	manifest       *theme.Manifest
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers the manifest with a go-theme registry (which validates
// it) and returns a selector defaulting to defaultVariant.
func NewSelector(manifest *theme.Manifest, defaultVariant string) (*Selector, error) {
	if manifest == nil {
		manifest = Manifest()
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("tokens: register manifest: %w", err)
	}
	defaultVariant = strings.TrimSpace(defaultVariant)
	if defaultVariant == "" {
		defaultVariant = VariantDefault
	}
	if defaultVariant != VariantDefault {
		if _, ok := manifest.Variants[defaultVariant]; !ok {
			return nil, fmt.Errorf("tokens: unknown default variant %q", defaultVariant)
		}
	}
	return &Selector{manifest: manifest, defaultVariant: defaultVariant}, nil
}

// Select returns the selection for name/variant. Empty values fall back to the
// site theme and the selector's default variant; unknown variants fall back to
// the default variant.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil || s.manifest == nil {
		return nil, errors.New("tokens: selector is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.manifest.Name
	}
	if name != s.manifest.Name {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}
	if variant != VariantDefault {
		if _, ok := s.manifest.Variants[variant]; !ok {
			variant = s.defaultVariant
		}
	}
	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: s.manifest,
	}, nil
}

// Variants lists the selectable variants, default first.
func (s *Selector) Variants() []string {
	out := []string{VariantDefault}
	if s == nil || s.manifest == nil {
		return out
	}
	names := make([]string, 0, len(s.manifest.Variants))
	for name := range s.manifest.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return append(out, names...)
}

// RendererConfig flattens a selection into the renderer-facing configuration:
// base tokens overlaid by variant tokens, partials merged over fallbacks, CSS
// variables derived from the merged tokens and an asset URL resolver.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Partials: cloneMap(fallbacks),
	}
	if selection == nil || selection.Manifest == nil {
		cfg.Tokens = Flatten()
		cfg.CSSVars = CSSVars(cfg.Tokens)
		cfg.AssetURL = func(key string) string { return "" }
		return cfg
	}

	manifest := selection.Manifest
	cfg.Theme = selection.Theme
	cfg.Variant = selection.Variant

	tokens := cloneMap(manifest.Tokens)
	files := cloneMap(manifest.Assets.Files)
	if cfg.Partials == nil {
		cfg.Partials = make(map[string]string)
	}
	for key, value := range manifest.Templates {
		cfg.Partials[key] = value
	}
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		if tokens == nil {
			tokens = make(map[string]string, len(variant.Tokens))
		}
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
		for key, value := range variant.Templates {
			cfg.Partials[key] = value
		}
		if files == nil {
			files = make(map[string]string, len(variant.Assets.Files))
		}
		for key, value := range variant.Assets.Files {
			files[key] = value
		}
		if strings.TrimSpace(variant.Assets.Prefix) != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cfg.Tokens = tokens
	cfg.CSSVars = CSSVars(tokens)
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || strings.TrimSpace(file) == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		return prefix + "/" + strings.TrimLeft(file, "/")
	}
}

func cloneMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
