package forms

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

const (
	ContactForm     = "contact"
	AppointmentForm = "appointment"
	ExampleForm     = "example"
)

var serviceOptions = []Option{
	{Value: "primary-care", Label: "Primary care"},
	{Value: "pediatrics", Label: "Pediatrics"},
	{Value: "womens-health", Label: "Women's health"},
	{Value: "chronic-care", Label: "Chronic disease management"},
	{Value: "preventive", Label: "Preventive screenings"},
	{Value: "telehealth", Label: "Telehealth visit"},
}

var insuranceOptions = []Option{
	{Value: "aetna", Label: "Aetna"},
	{Value: "bcbs", Label: "Florida Blue (BCBS)"},
	{Value: "cigna", Label: "Cigna"},
	{Value: "humana", Label: "Humana"},
	{Value: "medicare", Label: "Medicare"},
	{Value: "united", Label: "UnitedHealthcare"},
	{Value: "self-pay", Label: "Self-pay"},
	{Value: "other", Label: "Other"},
}

// ContactSchema is the general enquiry form.
func ContactSchema() Schema {
	return Schema{
		Name:           ContactForm,
		Title:          "Send us a message",
		Action:         "/contact",
		SubmitLabel:    "Send message",
		SuccessMessage: "Thanks for reaching out. Our team will reply within one business day.",
		Fields: []Field{
			{Name: "name", Label: "Full name", Kind: KindText, Required: true, Autocomplete: "name", Rules: []Rule{MaxLength(120)}},
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true, Autocomplete: "email"},
			{Name: "phone", Label: "Phone", Kind: KindPhone, Autocomplete: "tel", Hint: "Optional. We only call if you ask us to."},
			{Name: "subject", Label: "Subject", Kind: KindSelect, Required: true, Options: []Option{
				{Value: "general", Label: "General question"},
				{Value: "billing", Label: "Billing"},
				{Value: "records", Label: "Medical records"},
				{Value: "feedback", Label: "Feedback"},
			}},
			{Name: "message", Label: "Message", Kind: KindTextArea, Required: true, Wide: true, Rules: []Rule{MinLength(10), MaxLength(2000)},
				Hint: "Please do not include sensitive medical details."},
		},
	}
}

// AppointmentSchema is the appointment request form. Every field but the
// insurance provider and notes is required.
func AppointmentSchema() Schema {
	return Schema{
		Name:           AppointmentForm,
		Title:          "Request an appointment",
		Action:         "/appointment",
		SubmitLabel:    "Request appointment",
		SuccessMessage: "Your request was received. We will call you to confirm a time.",
		Fields: []Field{
			{Name: "name", Label: "Full name", Kind: KindText, Required: true, Autocomplete: "name"},
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true, Autocomplete: "email"},
			{Name: "phone", Label: "Phone", Kind: KindPhone, Required: true, Autocomplete: "tel"},
			{Name: "patient_type", Label: "Patient type", Kind: KindRadio, Required: true, Options: []Option{
				{Value: "new", Label: "New patient"},
				{Value: "returning", Label: "Returning patient"},
			}},
			{Name: "service", Label: "Service", Kind: KindSelect, Required: true, Options: serviceOptions, Placeholder: "Choose a service"},
			{Name: "insurance", Label: "Insurance provider", Kind: KindSelect, Options: insuranceOptions, Placeholder: "Choose a provider"},
			{Name: "preferred_date", Label: "Preferred date", Kind: KindDate, Required: true, Rules: []Rule{Pattern(`^\d{4}-\d{2}-\d{2}$`)}},
			{Name: "preferred_time", Label: "Preferred time", Kind: KindSelect, Required: true, Placeholder: "Choose a time", Options: []Option{
				{Value: "morning", Label: "Morning (8am-12pm)"},
				{Value: "afternoon", Label: "Afternoon (12pm-4pm)"},
				{Value: "evening", Label: "Late afternoon (4pm-6pm)"},
			}},
			{Name: "message", Label: "Reason for visit", Kind: KindTextArea, Wide: true, Rules: []Rule{MaxLength(1000)}},
		},
	}
}

// ExampleSchema exercises every control kind on the component demo page.
func ExampleSchema() Schema {
	return Schema{
		Name:           ExampleForm,
		Title:          "Form example",
		Action:         "/form-example",
		SubmitLabel:    "Submit",
		SuccessMessage: "The example form was submitted.",
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: KindText, Required: true},
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
			{Name: "phone", Label: "Phone", Kind: KindPhone},
			{Name: "topic", Label: "Topic", Kind: KindSelect, Required: true, Placeholder: "Choose a topic", Options: []Option{
				{Value: "design", Label: "Design"},
				{Value: "accessibility", Label: "Accessibility"},
				{Value: "legacy", Label: "Legacy option", Disabled: true},
			}},
			{Name: "contact_method", Label: "Preferred contact", Kind: KindRadio, Options: []Option{
				{Value: "email", Label: "Email"},
				{Value: "phone", Label: "Phone"},
			}},
			{Name: "comments", Label: "Comments", Kind: KindTextArea, Wide: true},
			{Name: "terms", Label: "I agree to the terms", Kind: KindCheckbox, Required: true, Wide: true},
		},
	}
}

var (
	schemasMu sync.RWMutex
	schemas   = map[string]func() Schema{
		ContactForm:     ContactSchema,
		AppointmentForm: AppointmentSchema,
		ExampleForm:     ExampleSchema,
	}
)

// Lookup returns a fresh copy of the named schema.
func Lookup(name string) (Schema, error) {
	schemasMu.RLock()
	build, ok := schemas[strings.ToLower(strings.TrimSpace(name))]
	schemasMu.RUnlock()
	if !ok {
		return Schema{}, fmt.Errorf("forms: %w: %q", ErrUnknownForm, name)
	}
	return build(), nil
}

// Register adds or replaces a schema constructor.
func Register(name string, build func() Schema) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || build == nil {
		return fmt.Errorf("forms: schema name and constructor are required")
	}
	schemasMu.Lock()
	defer schemasMu.Unlock()
	schemas[name] = build
	return nil
}

// SchemaNames lists the registered form names.
func SchemaNames() []string {
	schemasMu.RLock()
	defer schemasMu.RUnlock()
	out := make([]string, 0, len(schemas))
	for name := range schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
