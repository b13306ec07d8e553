package forms

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMapErrors(t *testing.T) {
	mapping := MapErrors(ContactSchema(), map[string][]string{
		"/body/email":      {"already subscribed", " "},
		"values[0].phone":  {"unreachable number"},
		"$.data.name":      {"too long", "too long"},
		"non_field_errors": {"Service unavailable"},
		"captcha":          {"captcha failed"},
		"":                 {"Service unavailable"},
	})

	wantFields := map[string][]string{
		"email": {"already subscribed"},
		"phone": {"unreachable number"},
		"name":  {"too long"},
	}
	if diff := cmp.Diff(wantFields, mapping.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Service unavailable", "captcha failed"}, mapping.Form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorMappingApply(t *testing.T) {
	state := State{FormError: "Service unavailable"}
	ErrorMapping{
		Fields: map[string][]string{"email": {"first", "second"}},
		Form:   []string{"Service unavailable", "Try later"},
	}.Apply(&state)

	if state.Errors["email"] != "first" {
		t.Fatalf("field error: %q", state.Errors["email"])
	}
	if state.FormError != "Service unavailable Try later" {
		t.Fatalf("form error: %q", state.FormError)
	}
	if got := MapErrors(ContactSchema(), nil); got.Fields != nil || got.Form != nil {
		t.Fatalf("empty payload should map to nothing, got %+v", got)
	}
}
