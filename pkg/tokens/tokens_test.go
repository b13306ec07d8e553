package tokens

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBreakpointsAscending(t *testing.T) {
	if diff := cmp.Diff([]string{"sm", "md", "lg", "xl"}, BreakpointNames()); diff != "" {
		t.Fatalf("breakpoint order mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(Breakpoints); i++ {
		if Breakpoints[i].MinWidth <= Breakpoints[i-1].MinWidth {
			t.Fatalf("breakpoint %s not wider than %s", Breakpoints[i].Name, Breakpoints[i-1].Name)
		}
	}
}

func TestFlattenNamesEveryTable(t *testing.T) {
	flat := Flatten()

	want := map[string]string{
		"color-primary":      Colors["primary"],
		"space-4":            "1rem",
		"font-size-lg":       "1.125rem",
		"font-weight-bold":   "700",
		"line-height-normal": "1.5",
		"radius-md":          "0.375rem",
		"breakpoint-md":      "768px",
		"focus-ring-color":   Colors["focus"],
		"touch-target-min":   "44px",
		"font-sans":          Type.FontSans,
	}
	for key, value := range want {
		if got := flat[key]; got != value {
			t.Fatalf("token %s: want %q, got %q", key, value, got)
		}
	}

	flat["color-primary"] = "#000"
	if Flatten()["color-primary"] == "#000" {
		t.Fatalf("Flatten must return a fresh map")
	}
}

func TestStylesheetIsSortedRootBlock(t *testing.T) {
	css := Stylesheet(CSSVars(map[string]string{
		"b":     "2",
		"a":     "1",
		"--pre": "x",
	}))

	want := ":root {\n  --a: 1;\n  --b: 2;\n  --pre: x;\n}\n"
	if diff := cmp.Diff(want, css); diff != "" {
		t.Fatalf("stylesheet mismatch (-want +got):\n%s", diff)
	}
	if Stylesheet(nil) != "" {
		t.Fatalf("expected empty stylesheet for no vars")
	}
}

func TestUtilitiesReferenceCustomProperties(t *testing.T) {
	cfg := Utilities()

	if got := cfg.Colors["primary"]; got != "var(--color-primary)" {
		t.Fatalf("primary color ref: %s", got)
	}
	if got := cfg.Spacing["4"]; got != "var(--space-4)" {
		t.Fatalf("spacing ref: %s", got)
	}
	if got := cfg.Screens["lg"]; got != "1024px" {
		t.Fatalf("lg screen: %s", got)
	}
	if len(cfg.Colors) != len(Colors) {
		t.Fatalf("expected %d colors, got %d", len(Colors), len(cfg.Colors))
	}
	for name, ref := range cfg.BorderRadius {
		if !strings.HasPrefix(ref, "var(--radius-") {
			t.Fatalf("radius %s not a var ref: %s", name, ref)
		}
	}
}

func TestFocusClassesUseFocusToken(t *testing.T) {
	if !strings.Contains(Focus.Classes, "var(--color-focus)") {
		t.Fatalf("focus classes should reference the focus token: %s", Focus.Classes)
	}
}
