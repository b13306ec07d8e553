package forms

import (
	"fmt"
	"strings"
)

// FieldKind picks the control a field renders as.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindPhone    FieldKind = "tel"
	KindDate     FieldKind = "date"
	KindTextArea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
	KindRadio    FieldKind = "radio"
	KindCheckbox FieldKind = "checkbox"
)

// Option is a selectable choice of a select or radio field.
type Option struct {
	Value    string `json:"value" yaml:"value"`
	Label    string `json:"label" yaml:"label"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Field declares one input of a form.
type Field struct {
	Name         string    `json:"name" yaml:"name"`
	Label        string    `json:"label" yaml:"label"`
	Kind         FieldKind `json:"kind" yaml:"kind"`
	Required     bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Options      []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder  string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Hint         string    `json:"hint,omitempty" yaml:"hint,omitempty"`
	Autocomplete string    `json:"autocomplete,omitempty" yaml:"autocomplete,omitempty"`
	// Wide fields span both columns of the two column layout.
	Wide  bool   `json:"wide,omitempty" yaml:"wide,omitempty"`
	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// rules returns the effective rule list: required first, then the kind's
// implied rule, then the explicit rules.
func (f Field) rules() []Rule {
	out := make([]Rule, 0, len(f.Rules)+2)
	if f.Required {
		out = append(out, Rule{Kind: RuleRequired})
	}
	switch f.Kind {
	case KindEmail:
		out = append(out, Rule{Kind: RuleEmail})
	case KindPhone:
		out = append(out, Rule{Kind: RulePhone})
	case KindSelect, KindRadio:
		out = append(out, Rule{Kind: RuleOption})
	}
	return append(out, f.Rules...)
}

// Schema describes a form: its fields in display order plus copy for the
// submit button and the success notice.
type Schema struct {
	Name           string  `json:"name" yaml:"name"`
	Title          string  `json:"title" yaml:"title"`
	Action         string  `json:"action" yaml:"action"`
	SubmitLabel    string  `json:"submitLabel" yaml:"submitLabel"`
	SuccessMessage string  `json:"successMessage" yaml:"successMessage"`
	Fields         []Field `json:"fields" yaml:"fields"`
}

// Field returns the named field.
func (s Schema) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names returns the field names in display order.
func (s Schema) Names() []string {
	out := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		out = append(out, field.Name)
	}
	return out
}

// Issue is one failed rule.
type Issue struct {
	Field  string
	Label  string
	Rule   Rule
	Params map[string]string
}

// Check evaluates every field against values and returns at most one issue per
// field (its first failing rule), in field order. Empty optional fields are
// skipped; values are compared after trimming surrounding whitespace.
func (s Schema) Check(values map[string]string) []Issue {
	var issues []Issue
	for _, field := range s.Fields {
		value := strings.TrimSpace(values[field.Name])
		for _, rule := range field.rules() {
			failed := false
			if rule.Kind == RuleRequired {
				failed = value == ""
			} else if value != "" {
				failed = !rule.check(field, value)
			}
			if failed {
				issues = append(issues, Issue{Field: field.Name, Label: field.Label, Rule: rule, Params: rule.Params})
				break
			}
		}
	}
	return issues
}

// Validate computes a fresh error map from values using the default English
// messages. An empty map means the values are valid.
func (s Schema) Validate(values map[string]string) map[string]string {
	return s.validate(values, DefaultMessage)
}

func (s Schema) validate(values map[string]string, message MessageFunc) map[string]string {
	if message == nil {
		message = DefaultMessage
	}
	errs := make(map[string]string)
	for _, issue := range s.Check(values) {
		errs[issue.Field] = message(issue)
	}
	return errs
}

// MessageFunc turns an issue into user-facing copy.
type MessageFunc func(Issue) string

// MessageKey is the catalog key for an issue's message, e.g. "forms.email".
func MessageKey(issue Issue) string {
	switch issue.Rule.Kind {
	case RuleMinLength:
		return "forms.min_length"
	case RuleMaxLength:
		return "forms.max_length"
	default:
		return "forms." + issue.Rule.Kind
	}
}

// MessageArgs are the format arguments for MessageKey's message.
func MessageArgs(issue Issue) []any {
	switch issue.Rule.Kind {
	case RuleRequired, RulePattern:
		return []any{issue.Label}
	case RuleMinLength, RuleMaxLength:
		return []any{issue.Label, issue.Params["value"]}
	default:
		return nil
	}
}

// DefaultMessage renders the English message for an issue.
func DefaultMessage(issue Issue) string {
	switch issue.Rule.Kind {
	case RuleRequired:
		return fmt.Sprintf("%s is required", issue.Label)
	case RuleEmail:
		return "Enter a valid email address"
	case RulePhone:
		return "Enter a 10-digit phone number"
	case RuleOption:
		return "Select one of the listed options"
	case RuleMinLength:
		return fmt.Sprintf("%s must be at least %s characters", issue.Label, issue.Params["value"])
	case RuleMaxLength:
		return fmt.Sprintf("%s must be at most %s characters", issue.Label, issue.Params["value"])
	default:
		return fmt.Sprintf("%s is not in the expected format", issue.Label)
	}
}
