package ui

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-medsite/pkg/render/template/gotemplate"
)

// ControlID derives the DOM id for a form control. An explicit id wins over
// one derived from the field name.
func ControlID(explicit, name string) string {
	if id := slug(explicit); id != "" {
		return id
	}
	if id := slug(name); id != "" {
		return "field-" + id
	}
	return ""
}

// ErrorID is the id of the element carrying a control's error message.
func ErrorID(controlID string) string {
	if controlID == "" {
		return ""
	}
	return controlID + "-error"
}

// HintID is the id of the element carrying a control's hint text.
func HintID(controlID string) string {
	if controlID == "" {
		return ""
	}
	return controlID + "-hint"
}

// DescribedBy builds the aria-describedby value: the error id when an error is
// present, then the hint id when a hint is present.
func DescribedBy(controlID string, hasError, hasHint bool) string {
	ids := make([]string, 0, 2)
	if hasError {
		ids = append(ids, ErrorID(controlID))
	}
	if hasHint {
		ids = append(ids, HintID(controlID))
	}
	return strings.Join(ids, " ")
}

// slug lowercases value and collapses anything outside [a-z0-9_-] into single
// dashes.
func slug(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(value))
	dash := false
	for _, r := range strings.ToLower(value) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '_':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func classList(parts ...string) string {
	return gotemplate.JoinClasses(parts...)
}
