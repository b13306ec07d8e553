// Package forms declares the site's form schemas, validates submitted values,
// and drives each submission through a small state machine backed by a
// pluggable Backend.
//
// A typical request builds a Machine for the schema, copies the posted values
// in with SetValue, calls Submit, and renders the resulting State with a
// Renderer:
//
//	machine := forms.NewMachine(forms.AppointmentSchema(), forms.WithBackend(backend))
//	defer machine.Close()
//	for name, value := range posted {
//		machine.SetValue(name, value)
//	}
//	result, err := machine.Submit(ctx)
package forms
