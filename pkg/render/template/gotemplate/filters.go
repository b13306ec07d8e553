package gotemplate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	defaults := map[string]pongo2.FilterFunction{
		"trim":       filterTrim,
		"lowerfirst": filterLowerFirst,
		"classes":    filterClasses,
		"idrefs":     filterIDRefs,
		"cssvar":     filterCSSVar,
	}
	for name, fn := range defaults {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterLowerFirst(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	t := in.String()

	var (
		firstNonWhitespaceIndex int
		firstRune               rune
		firstRuneSize           int
	)

	for i, r := range t {
		if !strings.ContainsRune(" \t\n\r", r) {
			firstNonWhitespaceIndex = i
			firstRune = r
			firstRuneSize = utf8.RuneLen(r)
			break
		}
	}

	if firstRune == 0 {
		return pongo2.AsValue(t), nil
	}

	prefix := t[:firstNonWhitespaceIndex]
	loweredRune := strings.ToLower(string(firstRune))
	rest := t[firstNonWhitespaceIndex+firstRuneSize:]

	return pongo2.AsValue(prefix + loweredRune + rest), nil
}

// filterClasses joins class lists (a string or a list of strings) into a single
// class attribute value, dropping blanks and duplicates while keeping order. The
// optional parameter is appended last.
func filterClasses(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	parts := valueStrings(in)
	if param != nil {
		parts = append(parts, valueStrings(param)...)
	}
	return pongo2.AsValue(JoinClasses(parts...)), nil
}

// filterIDRefs builds an aria-describedby style list: non-empty ids separated by
// single spaces.
func filterIDRefs(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	parts := valueStrings(in)
	if param != nil {
		parts = append(parts, valueStrings(param)...)
	}
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return pongo2.AsValue(strings.Join(ids, " ")), nil
}

// filterCSSVar turns a token name ("color-primary") into "var(--color-primary)".
func filterCSSVar(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	name := strings.TrimPrefix(strings.TrimSpace(in.String()), "--")
	if name == "" {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue("var(--" + name + ")"), nil
}

// JoinClasses splits each input on whitespace and joins the unique, non-empty
// classes with single spaces.
func JoinClasses(parts ...string) string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		for _, class := range strings.Fields(part) {
			if _, ok := seen[class]; ok {
				continue
			}
			seen[class] = struct{}{}
			out = append(out, class)
		}
	}
	return strings.Join(out, " ")
}

func valueStrings(v *pongo2.Value) []string {
	if v == nil || v.IsNil() {
		return nil
	}
	switch raw := v.Interface().(type) {
	case string:
		return []string{raw}
	case []string:
		return raw
	case []any:
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{v.String()}
	}
}
