package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-medsite/pkg/forms"
	"github.com/goliatone/go-medsite/pkg/ui"
)

// maxFormBytes bounds form and API request bodies.
const maxFormBytes = 64 << 10

// formOutcome is a rendered form and the status the page should answer with.
type formOutcome struct {
	schema forms.Schema
	state  forms.State
	status int
	html   string
}

// formForRequest renders the named form, submitting it first on POST.
func (s *Site) formForRequest(w http.ResponseWriter, pr *pageRequest, name string) (*formOutcome, error) {
	schema, err := forms.Lookup(name)
	if err != nil {
		return nil, StatusError{Code: http.StatusNotFound, Err: err}
	}

	outcome := &formOutcome{schema: schema, state: forms.NewState(), status: http.StatusOK}
	if pr.req.Method == http.MethodPost {
		pr.req.Body = http.MaxBytesReader(w, pr.req.Body, maxFormBytes)
		if err := pr.req.ParseForm(); err != nil {
			return nil, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("site: parse form: %w", err)}
		}
		values := make(map[string]string, len(schema.Fields))
		for _, field := range schema.Names() {
			values[field] = pr.req.PostForm.Get(field)
		}
		outcome.state, outcome.status = s.submit(pr.ctx, schema, values, pr.req.PostForm.Get(forms.CSRFField))
	}

	outcome.html, err = s.renderForm(pr.ctx, schema, outcome.state)
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// submit runs values through a fresh state machine and maps the result onto
// a response status.
func (s *Site) submit(ctx context.Context, schema forms.Schema, values map[string]string, token string) (forms.State, int) {
	if s.opts.CSRF != nil && !s.opts.Static {
		if err := s.opts.CSRF.Verify(schema.Name, token); err != nil {
			s.logger.Info("form token rejected", zap.String("form", schema.Name), zap.Error(err))
			state := forms.NewState()
			state.Values = values
			state.Status = forms.StatusFailed
			state.FormError = s.localizer(ctx).Text("forms.session_expired", "Your session expired. Please submit the form again.")
			return state, http.StatusForbidden
		}
	}

	opts := append(s.forms.MachineOptions(ctx, schema),
		forms.WithBackend(s.backend),
		forms.WithResetDelay(s.opts.ResetDelay),
		forms.WithMachineLogger(s.logger),
	)
	machine := forms.NewMachine(schema, opts...)
	defer machine.Close()

	machine.SetValues(values)
	state, err := machine.Submit(ctx)

	var submitErr *forms.SubmitError
	var rejected *forms.RejectedError
	switch {
	case errors.As(err, &rejected):
		return state, http.StatusUnprocessableEntity
	case errors.As(err, &submitErr) && submitErr.Outcome == forms.OutcomeTimeout:
		return state, http.StatusGatewayTimeout
	case errors.As(err, &submitErr):
		return state, http.StatusBadGateway
	case err != nil:
		s.logger.Error("form submit", zap.String("form", schema.Name), zap.Error(err))
		state.FormError = s.localizer(ctx).Text("forms.failed", "We could not send your request. Please try again or call us.")
		state.Status = forms.StatusFailed
		return state, http.StatusInternalServerError
	case len(state.Errors) > 0:
		return state, http.StatusUnprocessableEntity
	}
	return state, http.StatusOK
}

func (s *Site) renderForm(ctx context.Context, schema forms.Schema, state forms.State) (string, error) {
	var hidden []forms.HiddenField
	if s.opts.CSRF != nil && !s.opts.Static {
		fields, err := s.opts.CSRF.Fields(schema.Name)
		if err != nil {
			return "", fmt.Errorf("site: form token: %w", err)
		}
		hidden = fields
	}
	out, err := s.forms.Render(ctx, schema, state, hidden...)
	if err != nil {
		return "", fmt.Errorf("site: render form %s: %w", schema.Name, err)
	}
	return out, nil
}

type formAPIRequest struct {
	Values map[string]string `json:"values"`
	CSRF   string            `json:"csrf"`
}

type formAPIResponse struct {
	Status    forms.Status      `json:"status"`
	Errors    map[string]string `json:"errors,omitempty"`
	FormError string            `json:"formError,omitempty"`
	Reference string            `json:"reference,omitempty"`
	HTML      string            `json:"html,omitempty"`
}

// handleFormAPI accepts a JSON body ({values, csrf}) or a urlencoded form and
// answers with the resulting state plus the re-rendered form.
func (s *Site) handleFormAPI(w http.ResponseWriter, r *http.Request) {
	schema, err := forms.Lookup(r.PathValue("name"))
	if err != nil {
		writeJSONError(w, http.StatusNotFound, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	var req formAPIRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json", "text/plain":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("site: decode form: %w", err))
			return
		}
	default:
		if err := r.ParseForm(); err != nil {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("site: parse form: %w", err))
			return
		}
		req.Values = make(map[string]string, len(schema.Fields))
		for _, field := range schema.Names() {
			req.Values[field] = r.PostForm.Get(field)
		}
		req.CSRF = r.PostForm.Get(forms.CSRFField)
	}

	values := make(map[string]string, len(schema.Fields))
	for _, field := range schema.Names() {
		values[field] = req.Values[field]
	}

	ctx := ui.WithCollector(r.Context(), ui.NewCollector())
	state, status := s.submit(ctx, schema, values, req.CSRF)
	out, err := s.renderForm(ctx, schema, state)
	if err != nil {
		s.logger.Error("render form", zap.String("form", schema.Name), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, errors.New(http.StatusText(http.StatusInternalServerError)))
		return
	}

	writeJSON(w, status, formAPIResponse{
		Status:    state.Status,
		Errors:    state.Errors,
		FormError: state.FormError,
		Reference: state.Reference,
		HTML:      out,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Site) contactPage(pr *pageRequest) (pageResult, error) {
	c, loc := pr.ui, pr.loc
	practice := s.content.Practice()
	return pageResult{
		template: "templates/pages/contact.tmpl",
		data: map[string]any{
			"intro":         pageIntro(c, loc.Text("pages.contact.title", "Contact us"), loc.Text("pages.contact.lead", "Questions about a visit, billing or records? Send us a message and we will reply within one business day.")),
			"form_title":    loc.Text("forms.contact.title", pr.form.schema.Title),
			"form":          pr.form.html,
			"details_title": loc.Text("pages.contact.details", "Visit or call"),
			"address":       practice.Address.String(),
			"map_url":       practice.MapURL,
			"map_label":     loc.Text("pages.contact.map", "Get directions"),
			"phone":         practice.Phone,
			"phone_href":    telHref(practice.Phone),
			"email":         practice.Email,
			"hours_title":   loc.Text("footer.hours_title", "Office hours"),
			"hours":         practice.Hours,
			"emergency":     loc.Text("footer.emergency", "If this is a medical emergency, call 911."),
			"privacy":       loc.Text("pages.contact.privacy", "Please do not include medical details in this form."),
		},
		meta: staticMeta("/contact"),
	}, nil
}

func (s *Site) appointmentPage(pr *pageRequest) (pageResult, error) {
	loc := pr.loc
	return s.formPage(pr, "/appointment",
		loc.Text("pages.appointment.title", "Request an appointment"),
		loc.Text("pages.appointment.lead", "Tell us what you need and when suits you. A member of our team will call to confirm."),
		loc.Text("pages.appointment.expect", "What to expect"),
		[]string{
			loc.Text("pages.appointment.steps.call", "We call you within one business day to confirm a time."),
			loc.Text("pages.appointment.steps.bring", "Bring a photo ID, your insurance card and a list of medications."),
			loc.Text("pages.appointment.steps.arrive", "New patients should arrive 15 minutes early."),
		},
	), nil
}

func (s *Site) formExamplePage(pr *pageRequest) (pageResult, error) {
	loc := pr.loc
	return s.formPage(pr, "/form-example",
		loc.Text("pages.form_example.title", "Form example"),
		loc.Text("pages.form_example.lead", "A complete form assembled from the component library, validated on the server and enhanced in the browser."),
		loc.Text("pages.form_example.notes", "Try it"),
		[]string{
			loc.Text("pages.form_example.steps.empty", "Submit the form empty to see the error summary."),
			loc.Text("pages.form_example.steps.email", "Enter an address like foo@bar to see email validation."),
			loc.Text("pages.form_example.steps.success", "A valid submission shows a reference, then the form resets."),
		},
	), nil
}

func (s *Site) formPage(pr *pageRequest, path, title, lead, asideTitle string, aside []string) pageResult {
	return pageResult{
		template: "templates/pages/form.tmpl",
		data: map[string]any{
			"intro":       pageIntro(pr.ui, title, lead),
			"form_title":  pr.loc.Text("forms."+pr.form.schema.Name+".title", pr.form.schema.Title),
			"form":        pr.form.html,
			"aside_title": asideTitle,
			"aside_items": aside,
		},
		meta: staticMeta(path),
	}
}
