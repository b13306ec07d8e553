package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-medsite/pkg/testsupport"
)

func TestTextFieldAccessibilityContract(t *testing.T) {
	lib := newTestLibrary(t)

	out, err := lib.TextField(context.Background(), TextFieldProps{
		FieldProps: FieldProps{
			Name:     "email",
			Label:    "Email address",
			Value:    "foo@",
			Error:    "Enter a valid email address",
			Hint:     "We never share your email.",
			Required: true,
		},
		Type:         "email",
		Autocomplete: "email",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	doc := testsupport.MustParseHTML(t, out)
	input := testsupport.MustFind(t, doc, "input#field-email")
	label := testsupport.MustFind(t, doc, "label")
	if got := testsupport.MustAttr(t, label, "for"); got != "field-email" {
		t.Fatalf("label for: %q", got)
	}
	if got := testsupport.MustAttr(t, input, "aria-invalid"); got != "true" {
		t.Fatalf("aria-invalid: %q", got)
	}
	if got := testsupport.MustAttr(t, input, "aria-describedby"); got != "field-email-error field-email-hint" {
		t.Fatalf("aria-describedby: %q", got)
	}
	if got := testsupport.MustAttr(t, input, "type"); got != "email" {
		t.Fatalf("type: %q", got)
	}
	if got := testsupport.MustAttr(t, input, "value"); got != "foo@" {
		t.Fatalf("value: %q", got)
	}
	if !strings.Contains(testsupport.MustAttr(t, input, "class"), "min-h-[44px]") {
		t.Fatalf("missing touch target class")
	}

	alert := testsupport.MustFind(t, doc, `#field-email-error[role="alert"]`)
	if testsupport.Text(alert) != "Enter a valid email address" {
		t.Fatalf("error text: %q", testsupport.Text(alert))
	}
	testsupport.MustFind(t, doc, "#field-email-hint")
}

func TestTextFieldWithoutErrorIsValid(t *testing.T) {
	lib := newTestLibrary(t)

	out, err := lib.TextField(context.Background(), TextFieldProps{
		FieldProps: FieldProps{Name: "name", Label: "Full name"},
		Type:       "bogus",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	doc := testsupport.MustParseHTML(t, out)
	input := testsupport.MustFind(t, doc, "input")
	if _, ok := input.Attr("aria-invalid"); ok {
		t.Fatalf("unexpected aria-invalid: %s", out)
	}
	if _, ok := input.Attr("aria-describedby"); ok {
		t.Fatalf("unexpected aria-describedby: %s", out)
	}
	if doc.Find(`[role="alert"]`).Length() != 0 {
		t.Fatalf("unexpected alert")
	}
	if got := testsupport.MustAttr(t, input, "type"); got != "text" {
		t.Fatalf("unknown type should fall back to text, got %q", got)
	}
}

func TestFieldRequiresNameAndLabel(t *testing.T) {
	lib := newTestLibrary(t)
	if _, err := lib.TextField(context.Background(), TextFieldProps{FieldProps: FieldProps{Label: "x"}}); err == nil {
		t.Fatalf("expected error for missing name")
	}
	if _, err := lib.TextField(context.Background(), TextFieldProps{FieldProps: FieldProps{Name: "x"}}); err == nil {
		t.Fatalf("expected error for missing label")
	}
}

func TestSelectMarksCurrentOption(t *testing.T) {
	lib := newTestLibrary(t)

	out, err := lib.Select(context.Background(), SelectProps{
		FieldProps:  FieldProps{Name: "service", Label: "Service", Value: "pediatrics", Error: "Pick one"},
		Placeholder: "Choose a service",
		Options:     []SelectOption{
			{Value: "primary-care", Label: "Primary care"},
			{Value: "pediatrics", Label: "Pediatrics"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	doc := testsupport.MustParseHTML(t, out)
	sel := testsupport.MustFind(t, doc, "select#field-service")
	if got := testsupport.MustAttr(t, sel, "aria-describedby"); got != "field-service-error" {
		t.Fatalf("aria-describedby: %q", got)
	}
	options := doc.Find("option")
	if options.Length() != 3 {
		t.Fatalf("expected placeholder plus 2 options, got %d", options.Length())
	}
	selected := doc.Find("option[selected]")
	if selected.Length() != 1 || testsupport.MustAttr(t, selected, "value") != "pediatrics" {
		t.Fatalf("unexpected selected option: %s", out)
	}
}

func TestCheckboxAndRadio(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	out, err := lib.Checkbox(ctx, CheckboxProps{
		FieldProps: FieldProps{Name: "consent", Label: "I agree", Error: "Required"},
		Checked:    true,
	})
	if err != nil {
		t.Fatalf("render checkbox: %v", err)
	}
	doc := testsupport.MustParseHTML(t, out)
	box := testsupport.MustFind(t, doc, `input[type="checkbox"]`)
	if _, ok := box.Attr("checked"); !ok {
		t.Fatalf("expected checked")
	}
	if got := testsupport.MustAttr(t, box, "value"); got != "on" {
		t.Fatalf("default value: %q", got)
	}
	if got := testsupport.MustAttr(t, box, "aria-invalid"); got != "true" {
		t.Fatalf("aria-invalid: %q", got)
	}

	out, err = lib.Radio(ctx, RadioGroupProps{
		FieldProps: FieldProps{Name: "patient_type", Label: "Patient type", Value: "new", Hint: "Choose one"},
		Options:    []SelectOption{
			{Value: "new", Label: "New patient"},
			{Value: "returning", Label: "Returning patient"},
		},
		Inline: true,
	})
	if err != nil {
		t.Fatalf("render radio: %v", err)
	}
	doc = testsupport.MustParseHTML(t, out)
	testsupport.MustFind(t, doc, "fieldset legend")
	radios := doc.Find(`input[type="radio"]`)
	if radios.Length() != 2 {
		t.Fatalf("expected 2 radios, got %d", radios.Length())
	}
	checked := doc.Find(`input[type="radio"][checked]`)
	if checked.Length() != 1 || testsupport.MustAttr(t, checked, "value") != "new" {
		t.Fatalf("unexpected checked radio: %s", out)
	}
	if got := testsupport.MustAttr(t, radios, "aria-describedby"); got != "field-patient_type-hint" {
		t.Fatalf("aria-describedby: %q", got)
	}

	if _, err := lib.Radio(ctx, RadioGroupProps{FieldProps: FieldProps{Name: "x", Label: "X"}}); err == nil {
		t.Fatalf("expected error for radio group without options")
	}
}

func TestTextAreaEscapesValue(t *testing.T) {
	lib := newTestLibrary(t)

	out, err := lib.TextArea(context.Background(), TextAreaProps{
		FieldProps: FieldProps{Name: "message", Label: "Message", Value: "<script>alert(1)</script>"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("value not escaped: %s", out)
	}
	doc := testsupport.MustParseHTML(t, out)
	area := testsupport.MustFind(t, doc, "textarea")
	if got := testsupport.MustAttr(t, area, "rows"); got != "4" {
		t.Fatalf("rows: %q", got)
	}
	if area.Text() != "<script>alert(1)</script>" {
		t.Fatalf("value: %q", area.Text())
	}
}

func TestControlIDs(t *testing.T) {
	if got := ControlID("", "Preferred Date"); got != "field-preferred-date" {
		t.Fatalf("derived id: %q", got)
	}
	if got := ControlID("Custom ID", "x"); got != "custom-id" {
		t.Fatalf("explicit id: %q", got)
	}
	if got := DescribedBy("f", false, true); got != "f-hint" {
		t.Fatalf("described by: %q", got)
	}
	if got := DescribedBy("f", false, false); got != "" {
		t.Fatalf("described by empty: %q", got)
	}
}
