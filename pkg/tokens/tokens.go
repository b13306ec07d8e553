// Package tokens centralises the practice's design decisions (color, spacing,
// typography, breakpoints, radii and focus rings) as named constants. Every
// component in pkg/ui reads from these tables, and the same values are exported
// as CSS custom properties and as a go-theme manifest so templates and the
// browser runtime agree on a single source of truth.
package tokens

import (
	"sort"
	"strconv"
)

// MinTouchTarget is the smallest interactive hit area allowed for controls.
const MinTouchTarget = "44px"

// Colors maps semantic color names to their hex values.
var Colors = map[string]string{
	"primary":          "#0E7490",
	"primary-hover":    "#155E75",
	"primary-contrast": "#FFFFFF",
	"secondary":        "#F97316",
	"secondary-hover":  "#EA580C",
	"accent":           "#14B8A6",
	"background":       "#FFFFFF",
	"surface":          "#F8FAFC",
	"surface-muted":    "#F1F5F9",
	"foreground":       "#0F172A",
	"muted":            "#475569",
	"border":           "#CBD5E1",
	"success":          "#15803D",
	"warning":          "#B45309",
	"danger":           "#B91C1C",
	"focus":            "#2563EB",
}

// Spacing follows a 4px base scale.
var Spacing = map[string]string{
	"0":  "0",
	"1":  "0.25rem",
	"2":  "0.5rem",
	"3":  "0.75rem",
	"4":  "1rem",
	"6":  "1.5rem",
	"8":  "2rem",
	"10": "2.5rem",
	"12": "3rem",
	"16": "4rem",
	"20": "5rem",
	"24": "6rem",
}

// Typography groups font families, sizes, weights and line heights.
type Typography struct {
	FontSans    string
	FontSerif   string
	Sizes       map[string]string
	Weights     map[string]string
	LineHeights map[string]string
}

var Type = Typography{
	FontSans:  `"Inter", system-ui, -apple-system, "Segoe UI", sans-serif`,
	FontSerif: `"Merriweather", Georgia, serif`,
	Sizes: map[string]string{
		"xs":   "0.75rem",
		"sm":   "0.875rem",
		"base": "1rem",
		"lg":   "1.125rem",
		"xl":   "1.25rem",
		"2xl":  "1.5rem",
		"3xl":  "1.875rem",
		"4xl":  "2.25rem",
		"5xl":  "3rem",
	},
	Weights: map[string]string{
		"normal":   "400",
		"medium":   "500",
		"semibold": "600",
		"bold":     "700",
	},
	LineHeights: map[string]string{
		"tight":   "1.25",
		"normal":  "1.5",
		"relaxed": "1.75",
	},
}

// Breakpoint is a named min-width media query threshold.
type Breakpoint struct {
	Name     string
	MinWidth int
}

// Breakpoints are ordered from narrowest to widest. Responsive class prefixes
// in pkg/ui follow the same order.
var Breakpoints = []Breakpoint{
	{Name: "sm", MinWidth: 640},
	{Name: "md", MinWidth: 768},
	{Name: "lg", MinWidth: 1024},
	{Name: "xl", MinWidth: 1280},
}

var Radii = map[string]string{
	"none": "0",
	"sm":   "0.125rem",
	"md":   "0.375rem",
	"lg":   "0.5rem",
	"xl":   "0.75rem",
	"full": "9999px",
}

// FocusRing describes the visible focus indicator shared by all controls.
type FocusRing struct {
	Width   string
	Offset  string
	Color   string
	Classes string
}

var Focus = FocusRing{
	Width:   "2px",
	Offset:  "2px",
	Color:   Colors["focus"],
	Classes: "focus:outline-none focus-visible:ring-2 focus-visible:ring-[var(--color-focus)] focus-visible:ring-offset-2",
}

// BreakpointNames returns the breakpoint prefixes in ascending width order.
func BreakpointNames() []string {
	names := make([]string, 0, len(Breakpoints))
	for _, bp := range Breakpoints {
		names = append(names, bp.Name)
	}
	return names
}

// Flatten returns every token keyed by its CSS-friendly name (for example
// "color-primary", "space-4", "font-size-lg"). The result is a fresh map.
func Flatten() map[string]string {
	out := make(map[string]string, 64)
	for name, value := range Colors {
		out["color-"+name] = value
	}
	for name, value := range Spacing {
		out["space-"+name] = value
	}
	for name, value := range Type.Sizes {
		out["font-size-"+name] = value
	}
	for name, value := range Type.Weights {
		out["font-weight-"+name] = value
	}
	for name, value := range Type.LineHeights {
		out["line-height-"+name] = value
	}
	out["font-sans"] = Type.FontSans
	out["font-serif"] = Type.FontSerif
	for name, value := range Radii {
		out["radius-"+name] = value
	}
	for _, bp := range Breakpoints {
		out["breakpoint-"+bp.Name] = strconv.Itoa(bp.MinWidth) + "px"
	}
	out["focus-ring-width"] = Focus.Width
	out["focus-ring-offset"] = Focus.Offset
	out["focus-ring-color"] = Focus.Color
	out["touch-target-min"] = MinTouchTarget
	return out
}

func sortedKeys(in map[string]string) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
