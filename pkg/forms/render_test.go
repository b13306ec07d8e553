package forms

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-medsite/pkg/i18n"
	"github.com/goliatone/go-medsite/pkg/testsupport"
)

func newTestRenderer(t *testing.T, opts ...RendererOption) *Renderer {
	t.Helper()
	r, err := NewRenderer(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderIdleFormWithErrors(t *testing.T) {
	r := newTestRenderer(t)
	schema := ContactSchema()
	state := NewState()
	state.Values["email"] = "foo@"
	state.Errors = schema.Validate(state.Values)

	out, err := r.Render(context.Background(), schema, state, Hidden(CSRFField, "token-123"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := testsupport.MustParseHTML(t, out)

	form := testsupport.MustFind(t, doc, "form#form-contact")
	if got := testsupport.MustAttr(t, form, "data-status"); got != "idle" {
		t.Fatalf("status: %q", got)
	}
	if _, ok := form.Attr("novalidate"); !ok {
		t.Fatalf("expected novalidate")
	}
	if got := testsupport.MustAttr(t, doc.Find(`input[name="_form"]`), "value"); got != ContactForm {
		t.Fatalf("form name field: %q", got)
	}
	if got := testsupport.MustAttr(t, doc.Find(`input[name="_csrf"]`), "value"); got != "token-123" {
		t.Fatalf("csrf field: %q", got)
	}

	email := testsupport.MustFind(t, doc, "input#field-email")
	if got := testsupport.MustAttr(t, email, "aria-invalid"); got != "true" {
		t.Fatalf("aria-invalid: %q", got)
	}
	if got := testsupport.MustAttr(t, email, "inputmode"); got != "email" {
		t.Fatalf("inputmode: %q", got)
	}
	if got := testsupport.MustAttr(t, email, "value"); got != "foo@" {
		t.Fatalf("value: %q", got)
	}

	summary := doc.Find("[data-error-summary] a")
	if summary.Length() != 4 {
		t.Fatalf("expected 4 summary links, got %d: %s", summary.Length(), out)
	}
	if got := testsupport.MustAttr(t, summary.First(), "href"); got != "#field-name" {
		t.Fatalf("first summary link: %q", got)
	}

	message := testsupport.MustFind(t, doc, "textarea#field-message")
	if got := testsupport.MustAttr(t, message, "maxlength"); got != "2000" {
		t.Fatalf("maxlength: %q", got)
	}
	cell := message.Closest("[data-field]").Parent()
	if got := testsupport.MustAttr(t, cell, "class"); got != "md:col-span-2" {
		t.Fatalf("wide field should span both columns, got %q", got)
	}

	if doc.Find("[data-form-success]").Length() != 0 || doc.Find("[data-form-error]").Length() != 0 {
		t.Fatalf("idle form should not show success or form error")
	}
	button := testsupport.MustFind(t, doc, `button[type="submit"]`)
	if testsupport.Text(button) != "Send message" {
		t.Fatalf("submit label: %q", testsupport.Text(button))
	}
}

func TestRenderSubmittingDisablesControls(t *testing.T) {
	r := newTestRenderer(t)
	state := NewState()
	state.Status = StatusSubmitting

	out, err := r.Render(context.Background(), ContactSchema(), state)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := testsupport.MustParseHTML(t, out)
	form := testsupport.MustFind(t, doc, "form")
	if got := testsupport.MustAttr(t, form, "aria-busy"); got != "true" {
		t.Fatalf("form aria-busy: %q", got)
	}
	button := testsupport.MustFind(t, doc, `button[type="submit"]`)
	if got := testsupport.MustAttr(t, button, "aria-busy"); got != "true" {
		t.Fatalf("button aria-busy: %q", got)
	}
	if _, ok := testsupport.MustFind(t, doc, "input#field-name").Attr("disabled"); !ok {
		t.Fatalf("inputs should be disabled while submitting")
	}
}

func TestRenderSuccessAndFailure(t *testing.T) {
	r := newTestRenderer(t)
	state := NewState()
	state.Status = StatusSuccess
	state.Reference = "ref-42"

	out, err := r.Render(context.Background(), AppointmentSchema(), state)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := testsupport.MustParseHTML(t, out)
	status := testsupport.MustFind(t, doc, `[data-form-status][role="status"]`)
	if got := testsupport.MustAttr(t, status, "aria-live"); got != "polite" {
		t.Fatalf("aria-live: %q", got)
	}
	if !strings.Contains(testsupport.Text(status), "ref-42") {
		t.Fatalf("reference not shown: %q", testsupport.Text(status))
	}

	state = NewState()
	state.Status = StatusFailed
	state.FormError = "Could not send"
	out, err = r.Render(context.Background(), AppointmentSchema(), state)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc = testsupport.MustParseHTML(t, out)
	alert := testsupport.MustFind(t, doc, `[data-form-error][role="alert"]`)
	if testsupport.Text(alert) != "Could not send" {
		t.Fatalf("form error: %q", testsupport.Text(alert))
	}
}

func TestRenderTranslatesCopy(t *testing.T) {
	catalog, err := i18n.DefaultCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	r := newTestRenderer(t, WithTranslator(catalog, i18n.English))
	ctx := i18n.WithLocale(context.Background(), i18n.Spanish)

	schema := ContactSchema()
	m := NewMachine(schema, r.MachineOptions(ctx, schema)...)
	state, err := m.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if state.Errors["name"] != "Nombre completo es obligatorio" {
		t.Fatalf("translated message: %q", state.Errors["name"])
	}

	out, err := r.Render(ctx, schema, state)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := testsupport.MustParseHTML(t, out)
	if got := testsupport.Text(doc.Find(`label[for="field-email"]`)); !strings.HasPrefix(got, "Correo electrónico") {
		t.Fatalf("label: %q", got)
	}
	if got := testsupport.Text(doc.Find(`button[type="submit"]`)); got != "Enviar mensaje" {
		t.Fatalf("submit: %q", got)
	}
}

func TestRenderRequiresSchemaName(t *testing.T) {
	r := newTestRenderer(t)
	if _, err := r.Render(context.Background(), Schema{}, NewState()); err == nil {
		t.Fatalf("expected error for unnamed schema")
	}
}

func TestRenderAdvertisesAPIEndpoint(t *testing.T) {
	ctx := context.Background()

	out, err := newTestRenderer(t).Render(ctx, ContactSchema(), NewState())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	form := testsupport.MustFind(t, testsupport.MustParseHTML(t, out), "form")
	if got := testsupport.MustAttr(t, form, "data-api"); got != "/api/forms/contact" {
		t.Fatalf("data-api: %q", got)
	}

	out, err = newTestRenderer(t, WithAPIBase("")).Render(ctx, ContactSchema(), NewState())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	form = testsupport.MustFind(t, testsupport.MustParseHTML(t, out), "form")
	if _, ok := form.Attr("data-api"); ok {
		t.Fatalf("static forms should not advertise an endpoint")
	}
}
