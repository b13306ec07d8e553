package ui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-medsite/pkg/tokens"
)

// FieldProps are shared by every labelled form control.
type FieldProps struct {
	ID       string
	Name     string
	Label    string
	Value    string
	Error    string
	Hint     string
	Required bool
	Disabled bool
	Size     Size
	Class    string
}

// TextFieldProps configures a single-line input.
type TextFieldProps struct {
	FieldProps
	Type         string
	Placeholder  string
	Autocomplete string
	InputMode    string
	Min          string
	Max          string
}

// TextAreaProps configures a multi-line input.
type TextAreaProps struct {
	FieldProps
	Rows        int
	MaxLength   int
	Placeholder string
}

// SelectOption is one entry of a Select or radio group.
type SelectOption struct {
	Value    string
	Label    string
	Disabled bool
}

// SelectProps configures a dropdown. Placeholder renders as an empty first
// option.
type SelectProps struct {
	FieldProps
	Options     []SelectOption
	Placeholder string
}

// CheckboxProps configures a single checkbox. Value is submitted when checked
// and defaults to "on".
type CheckboxProps struct {
	FieldProps
	Checked     bool
	Description string
}

// RadioGroupProps configures a fieldset of radio inputs sharing Name. Label is
// rendered as the legend.
type RadioGroupProps struct {
	FieldProps
	Options []SelectOption
	Inline  bool
}

var allowedInputTypes = map[string]struct{}{
	"text": {}, "email": {}, "tel": {}, "date": {}, "time": {}, "number": {},
	"password": {}, "url": {}, "search": {},
}

var controlSizeClasses = map[Size]string{
	SizeSmall:  "px-3 py-2 text-sm",
	SizeMedium: "px-3 py-2.5 text-base",
	SizeLarge:  "px-4 py-3 text-lg",
}

// ControlClasses returns the class list for text-like controls.
func ControlClasses(size Size, invalid, disabled bool) string {
	sizeClasses, ok := controlSizeClasses[size]
	if !ok {
		sizeClasses = controlSizeClasses[SizeMedium]
	}
	border := "border-[var(--color-border)]"
	if invalid {
		border = "border-[var(--color-danger)]"
	}
	parts := []string{
		"block w-full rounded-[var(--radius-md)] border bg-[var(--color-background)] text-[var(--color-foreground)]",
		"min-h-[44px]",
		border,
		sizeClasses,
		tokens.Focus.Classes,
	}
	if disabled {
		parts = append(parts, "cursor-not-allowed bg-[var(--color-surface-muted)] opacity-70")
	}
	return classList(parts...)
}

const (
	fieldWrapperClass = "flex flex-col gap-1.5"
	labelClass        = "text-sm font-medium text-[var(--color-foreground)]"
	hintClass         = "text-sm text-[var(--color-muted)]"
	errorClass        = "text-sm font-medium text-[var(--color-danger)]"
	choiceClass       = "h-5 w-5 shrink-0 accent-[var(--color-primary)]"
	choiceLabelClass  = "inline-flex min-h-[44px] items-center gap-3 cursor-pointer"
)

type optionView struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"`
}

type fieldView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Label        string       `json:"label"`
	Value        string       `json:"value"`
	Error        string       `json:"error,omitempty"`
	Hint         string       `json:"hint,omitempty"`
	ErrorID      string       `json:"error_id"`
	HintID       string       `json:"hint_id"`
	DescribedBy  string       `json:"described_by,omitempty"`
	Required     bool         `json:"required"`
	Disabled     bool         `json:"disabled"`
	Invalid      bool         `json:"invalid"`
	WrapperClass string       `json:"wrapper_class"`
	LabelClass   string       `json:"label_class"`
	ControlClass string       `json:"control_class"`
	HintClass    string       `json:"hint_class"`
	ErrorClass   string       `json:"error_class"`
	Type         string       `json:"type,omitempty"`
	Placeholder  string       `json:"placeholder,omitempty"`
	Autocomplete string       `json:"autocomplete,omitempty"`
	InputMode    string       `json:"inputmode,omitempty"`
	Min          string       `json:"min,omitempty"`
	Max          string       `json:"max,omitempty"`
	Rows         int          `json:"rows,omitempty"`
	MaxLength    int          `json:"maxlength,omitempty"`
	Checked      bool         `json:"checked"`
	Description  string       `json:"description,omitempty"`
	Inline       bool         `json:"inline"`
	Options      []optionView `json:"options,omitempty"`
}

func newFieldView(props FieldProps) (fieldView, error) {
	name := strings.TrimSpace(props.Name)
	if name == "" {
		return fieldView{}, fmt.Errorf("ui: field name is required")
	}
	label := strings.TrimSpace(props.Label)
	if label == "" {
		return fieldView{}, fmt.Errorf("ui: field %q requires a label", name)
	}
	id := ControlID(props.ID, name)
	errMsg := strings.TrimSpace(props.Error)
	hint := strings.TrimSpace(props.Hint)
	invalid := errMsg != ""

	return fieldView{
		ID:           id,
		Name:         name,
		Label:        label,
		Value:        props.Value,
		Error:        errMsg,
		Hint:         hint,
		ErrorID:      ErrorID(id),
		HintID:       HintID(id),
		DescribedBy:  DescribedBy(id, invalid, hint != ""),
		Required:     props.Required,
		Disabled:     props.Disabled,
		Invalid:      invalid,
		WrapperClass: classList(fieldWrapperClass, props.Class),
		LabelClass:   labelClass,
		ControlClass: ControlClasses(props.Size, invalid, props.Disabled),
		HintClass:    hintClass,
		ErrorClass:   errorClass,
	}, nil
}

func buildOptions(id, current string, options []SelectOption) []optionView {
	out := make([]optionView, 0, len(options))
	for idx, option := range options {
		label := strings.TrimSpace(option.Label)
		if label == "" {
			label = option.Value
		}
		out = append(out, optionView{
			ID:       fmt.Sprintf("%s-%d", id, idx),
			Value:    option.Value,
			Label:    label,
			Selected: current != "" && option.Value == current,
			Disabled: option.Disabled,
		})
	}
	return out
}

func textFieldRenderer(_ context.Context, buf *bytes.Buffer, props any, data ComponentData) error {
	p, ok := props.(TextFieldProps)
	if !ok {
		return fmt.Errorf("ui: text field expects TextFieldProps, got %T", props)
	}
	view, err := newFieldView(p.FieldProps)
	if err != nil {
		return err
	}
	view.Type = strings.ToLower(strings.TrimSpace(p.Type))
	if _, ok := allowedInputTypes[view.Type]; !ok {
		view.Type = "text"
	}
	view.Placeholder = p.Placeholder
	view.Autocomplete = p.Autocomplete
	view.InputMode = p.InputMode
	view.Min = p.Min
	view.Max = p.Max
	return renderPartial(buf, data, "ui.input", map[string]any{"field": view})
}

func textAreaRenderer(_ context.Context, buf *bytes.Buffer, props any, data ComponentData) error {
	p, ok := props.(TextAreaProps)
	if !ok {
		return fmt.Errorf("ui: textarea expects TextAreaProps, got %T", props)
	}
	view, err := newFieldView(p.FieldProps)
	if err != nil {
		return err
	}
	view.Rows = p.Rows
	if view.Rows <= 0 {
		view.Rows = 4
	}
	view.MaxLength = p.MaxLength
	view.Placeholder = p.Placeholder
	view.ControlClass = classList(view.ControlClass, "min-h-[120px]")
	return renderPartial(buf, data, "ui.textarea", map[string]any{"field": view})
}

func selectRenderer(_ context.Context, buf *bytes.Buffer, props any, data ComponentData) error {
	p, ok := props.(SelectProps)
	if !ok {
		return fmt.Errorf("ui: select expects SelectProps, got %T", props)
	}
	view, err := newFieldView(p.FieldProps)
	if err != nil {
		return err
	}
	view.Placeholder = p.Placeholder
	view.Options = buildOptions(view.ID, p.Value, p.Options)
	return renderPartial(buf, data, "ui.select", map[string]any{"field": view})
}

func checkboxRenderer(_ context.Context, buf *bytes.Buffer, props any, data ComponentData) error {
	p, ok := props.(CheckboxProps)
	if !ok {
		return fmt.Errorf("ui: checkbox expects CheckboxProps, got %T", props)
	}
	view, err := newFieldView(p.FieldProps)
	if err != nil {
		return err
	}
	if view.Value == "" {
		view.Value = "on"
	}
	view.Checked = p.Checked
	view.Description = strings.TrimSpace(p.Description)
	view.ControlClass = classList(choiceClass, tokens.Focus.Classes)
	view.LabelClass = classList(choiceLabelClass, labelClass)
	return renderPartial(buf, data, "ui.checkbox", map[string]any{"field": view})
}

func radioRenderer(_ context.Context, buf *bytes.Buffer, props any, data ComponentData) error {
	p, ok := props.(RadioGroupProps)
	if !ok {
		return fmt.Errorf("ui: radio expects RadioGroupProps, got %T", props)
	}
	if len(p.Options) == 0 {
		return fmt.Errorf("ui: radio group %q requires options", p.Name)
	}
	view, err := newFieldView(p.FieldProps)
	if err != nil {
		return err
	}
	view.Inline = p.Inline
	view.Options = buildOptions(view.ID, p.Value, p.Options)
	view.ControlClass = classList(choiceClass, tokens.Focus.Classes)
	return renderPartial(buf, data, "ui.radio", map[string]any{
		"field":        view,
		"choice_label": choiceLabelClass,
	})
}
