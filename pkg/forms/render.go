package forms

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-medsite/pkg/i18n"
	rendertemplate "github.com/goliatone/go-medsite/pkg/render/template"
	"github.com/goliatone/go-medsite/pkg/render/template/gotemplate"
	"github.com/goliatone/go-medsite/pkg/ui"
)

const formTemplate = "templates/forms/form.tmpl"

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLibrary sets the component library used for the controls.
func WithLibrary(lib *ui.Library) RendererOption {
	return func(r *Renderer) {
		if lib != nil {
			r.library = lib
		}
	}
}

// WithTemplates sets the engine used for the form wrapper. It must be able to
// load templates/forms/form.tmpl.
func WithTemplates(templates rendertemplate.TemplateRenderer) RendererOption {
	return func(r *Renderer) {
		if templates != nil {
			r.templates = templates
		}
	}
}

// WithTranslator localizes labels and copy using the context locale.
func WithTranslator(t i18n.Translator, fallbackLocale string) RendererOption {
	return func(r *Renderer) {
		r.translator = t
		if fallbackLocale != "" {
			r.fallbackLocale = fallbackLocale
		}
	}
}

// WithRendererLogger sets the logger.
func WithRendererLogger(logger *zap.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAPIBase sets the prefix of the JSON endpoint advertised to the browser
// runtime in data-api. An empty base leaves it out, and the runtime simulates
// submission instead (static exports).
func WithAPIBase(base string) RendererOption {
	return func(r *Renderer) {
		r.apiBase = strings.TrimSpace(base)
	}
}

// Renderer turns a schema and state into an accessible HTML form.
type Renderer struct {
	apiBase        string
	library        *ui.Library
	templates      rendertemplate.TemplateRenderer
	translator     i18n.Translator
	fallbackLocale string
	logger         *zap.Logger
}

// NewRenderer builds a renderer. Without options it creates its own template
// engine over the ui and form templates.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{apiBase: "/api/forms/", fallbackLocale: i18n.English, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(ui.TemplatesFS()),
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithLogger(r.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("forms: configure templates: %w", err)
		}
		r.templates = engine
	}
	if r.library == nil {
		lib, err := ui.New(ui.WithTemplateRenderer(r.templates), ui.WithLogger(r.logger))
		if err != nil {
			return nil, fmt.Errorf("forms: configure components: %w", err)
		}
		r.library = lib
	}
	return r, nil
}

// Localizer returns the localizer for ctx.
func (r *Renderer) Localizer(ctx context.Context) i18n.Localizer {
	return i18n.FromContext(ctx, r.translator, r.fallbackLocale)
}

// Messages returns a MessageFunc producing validation copy in ctx's locale.
func (r *Renderer) Messages(ctx context.Context, schema Schema) MessageFunc {
	loc := r.Localizer(ctx)
	return func(issue Issue) string {
		issue.Label = loc.Text(fieldKey(schema.Name, issue.Field), issue.Label)
		return loc.Format(MessageKey(issue), DefaultMessage(issue), MessageArgs(issue)...)
	}
}

// MachineOptions returns the locale-aware options a request's Machine should
// use.
func (r *Renderer) MachineOptions(ctx context.Context, schema Schema) []MachineOption {
	loc := r.Localizer(ctx)
	return []MachineOption{
		WithMessages(r.Messages(ctx, schema)),
		WithFormErrors(
			loc.Text("forms.failed", "We could not send your request. Please try again or call us."),
			loc.Text("forms.timeout", "The request took too long. Please try again."),
		),
	}
}

type errorItem struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type renderedField struct {
	Class string `json:"class"`
	HTML  string `json:"html"`
}

// clientMessages feed the in-browser validation used when no API is wired.
type clientMessages struct {
	Required string `json:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type formView struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Action         string          `json:"action"`
	API            string          `json:"api,omitempty"`
	Status         string          `json:"status"`
	Hidden         []HiddenField   `json:"hidden,omitempty"`
	Success        string          `json:"success,omitempty"`
	SuccessText    string          `json:"success_text"`
	Messages       clientMessages  `json:"messages"`
	Reference      string          `json:"reference,omitempty"`
	ReferenceLabel string          `json:"reference_label"`
	FormError      string          `json:"form_error,omitempty"`
	ErrorSummary   string          `json:"error_summary"`
	ErrorItems     []errorItem     `json:"error_items,omitempty"`
	GridClass      string          `json:"grid_class"`
	Fields         []renderedField `json:"fields"`
	Submit         string          `json:"submit"`
}

// Render renders schema with state. hidden fields are emitted first; the
// form's own name is always included.
func (r *Renderer) Render(ctx context.Context, schema Schema, state State, hidden ...HiddenField) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(schema.Name) == "" {
		return "", fmt.Errorf("forms: schema name is required")
	}
	loc := r.Localizer(ctx)
	state = state.Clone()
	if state.Status == "" {
		state.Status = StatusIdle
	}

	fields := make(map[string]string, len(hidden)+1)
	fields[FormNameField] = schema.Name
	view := formView{
		ID:             "form-" + schema.Name,
		Name:           schema.Name,
		Action:         schema.Action,
		Status:         string(state.Status),
		Hidden:         SortedHiddenFields(MergeHiddenFields(fields, hidden...)),
		ReferenceLabel: loc.Text("forms.reference", "Reference"),
		FormError:      state.FormError,
		ErrorSummary:   loc.Text("forms.error_summary", "Please correct the following:"),
		SuccessText:    loc.Text("forms."+schema.Name+".success", schema.SuccessMessage),
		GridClass:      ui.GridClasses(ui.Responsive[int]{Base: 1, MD: 2}, ui.Responsive[ui.Gap]{Base: ui.GapMD, MD: ui.GapLG}),
		Messages: clientMessages{
			Required: loc.Text("forms.required", "%s is required"),
			Email:    loc.Text("forms.email", "Enter a valid email address"),
			Phone:    loc.Text("forms.phone", "Enter a 10-digit phone number"),
		},
	}
	if r.apiBase != "" {
		view.API = strings.TrimRight(r.apiBase, "/") + "/" + schema.Name
	}
	if state.Status == StatusSuccess {
		view.Success = view.SuccessText
		view.Reference = state.Reference
	}

	for _, field := range schema.Fields {
		label := loc.Text(fieldKey(schema.Name, field.Name), field.Label)
		html, err := r.renderField(ctx, field, label, state)
		if err != nil {
			return "", fmt.Errorf("forms: render %s.%s: %w", schema.Name, field.Name, err)
		}
		class := "md:col-span-1"
		if field.Wide || field.Kind == KindTextArea {
			class = "md:col-span-2"
		}
		view.Fields = append(view.Fields, renderedField{Class: class, HTML: html})
		if msg := state.Errors[field.Name]; msg != "" {
			view.ErrorItems = append(view.ErrorItems, errorItem{ID: ui.ControlID("", field.Name), Message: msg})
		}
	}

	submitting := state.Status == StatusSubmitting
	submit, err := r.library.Button(ctx, ui.ButtonProps{
		Label:        loc.Text("forms."+schema.Name+".submit", schema.SubmitLabel),
		Type:         "submit",
		Size:         ui.SizeLarge,
		Loading:      submitting,
		LoadingLabel: loc.Text("forms.submitting", "Sending..."),
	})
	if err != nil {
		return "", fmt.Errorf("forms: render submit: %w", err)
	}
	view.Submit = submit

	out, err := r.templates.RenderTemplate(formTemplate, map[string]any{"form": view})
	if err != nil {
		r.logger.Error("form render failed", zap.String("form", schema.Name), zap.Error(err))
		return "", fmt.Errorf("forms: render %s: %w", schema.Name, err)
	}
	return out, nil
}

func (r *Renderer) renderField(ctx context.Context, field Field, label string, state State) (string, error) {
	base := ui.FieldProps{
		Name:     field.Name,
		Label:    label,
		Value:    state.Values[field.Name],
		Error:    state.Errors[field.Name],
		Hint:     field.Hint,
		Required: field.Required,
		Disabled: state.Status == StatusSubmitting,
	}
	switch field.Kind {
	case KindTextArea:
		return r.library.TextArea(ctx, ui.TextAreaProps{FieldProps: base, Rows: 5, Placeholder: field.Placeholder, MaxLength: maxLengthOf(field)})
	case KindSelect:
		return r.library.Select(ctx, ui.SelectProps{FieldProps: base, Options: selectOptions(field.Options), Placeholder: field.Placeholder})
	case KindRadio:
		return r.library.Radio(ctx, ui.RadioGroupProps{FieldProps: base, Options: selectOptions(field.Options), Inline: true})
	case KindCheckbox:
		value := strings.ToLower(strings.TrimSpace(base.Value))
		base.Value = ""
		return r.library.Checkbox(ctx, ui.CheckboxProps{FieldProps: base, Checked: value == "on" || value == "true" || value == "1"})
	default:
		props := ui.TextFieldProps{FieldProps: base, Type: string(field.Kind), Placeholder: field.Placeholder, Autocomplete: field.Autocomplete}
		if field.Kind == KindPhone {
			props.InputMode = "tel"
		}
		if field.Kind == KindEmail {
			props.InputMode = "email"
		}
		return r.library.TextField(ctx, props)
	}
}

func selectOptions(options []Option) []ui.SelectOption {
	out := make([]ui.SelectOption, 0, len(options))
	for _, option := range options {
		out = append(out, ui.SelectOption{Value: option.Value, Label: option.Label, Disabled: option.Disabled})
	}
	return out
}

func maxLengthOf(field Field) int {
	for _, rule := range field.Rules {
		if rule.Kind == RuleMaxLength {
			if n, err := strconv.Atoi(rule.Params["value"]); err == nil {
				return n
			}
		}
	}
	return 0
}

func fieldKey(form, field string) string {
	return "forms." + form + ".fields." + field
}
