package forms

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestHiddenFieldsMergeAndSort(t *testing.T) {
	merged := MergeHiddenFields(map[string]string{"_form": "contact", " ": "x"},
		Hidden("source", "footer"),
		Hidden("_form", "appointment"),
		HiddenField{},
	)
	want := []HiddenField{{Name: "_form", Value: "appointment"}, {Name: "source", Value: "footer"}}
	if diff := cmp.Diff(want, SortedHiddenFields(merged)); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
	if MergeHiddenFields(nil) != nil {
		t.Fatalf("expected nil for no fields")
	}
}

func TestCSRFTokens(t *testing.T) {
	csrf, err := NewCSRF("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new csrf: %v", err)
	}
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	csrf.now = func() time.Time { return now }

	token, err := csrf.Token(ContactForm)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if err := csrf.Verify(ContactForm, token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := csrf.Verify(AppointmentForm, token); !errors.Is(err, ErrCSRFInvalid) {
		t.Fatalf("token bound to another form should be invalid, got %v", err)
	}
	if err := csrf.Verify(ContactForm, ""); !errors.Is(err, ErrCSRFMissing) {
		t.Fatalf("expected missing, got %v", err)
	}
	tampered := strings.Replace(token, ".", ".x", 1)
	if err := csrf.Verify(ContactForm, tampered); !errors.Is(err, ErrCSRFInvalid) {
		t.Fatalf("expected invalid signature, got %v", err)
	}

	other, _ := NewCSRF("other-secret", time.Hour)
	if err := other.Verify(ContactForm, token); !errors.Is(err, ErrCSRFInvalid) {
		t.Fatalf("token from another key should be invalid, got %v", err)
	}

	now = now.Add(2 * time.Hour)
	if err := csrf.Verify(ContactForm, token); !errors.Is(err, ErrCSRFExpired) {
		t.Fatalf("expected expired, got %v", err)
	}
}

func TestCSRFFields(t *testing.T) {
	csrf, err := NewCSRF("", 0)
	if err != nil {
		t.Fatalf("new csrf: %v", err)
	}
	fields, err := csrf.Fields(ExampleForm)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if len(fields) != 2 || fields[0].Name != FormNameField || fields[0].Value != ExampleForm || fields[1].Name != CSRFField {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if err := csrf.Verify(ExampleForm, fields[1].Value); err != nil {
		t.Fatalf("verify: %v", err)
	}
}
