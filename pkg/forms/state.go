package forms

import (
	"errors"
	"maps"
)

var (
	ErrUnknownForm = errors.New("unknown form")
	// ErrBusy is returned when Submit is called while a submission is in
	// flight.
	ErrBusy = errors.New("forms: submission already in progress")
	// ErrClosed is returned by a Machine after Close.
	ErrClosed = errors.New("forms: machine closed")
)

// Status is the lifecycle position of a form.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

// State is a form's values, errors and status.
type State struct {
	Values    map[string]string `json:"values"`
	Errors    map[string]string `json:"errors,omitempty"`
	FormError string            `json:"formError,omitempty"`
	Status    Status            `json:"status"`
	Reference string            `json:"reference,omitempty"`
}

// NewState returns an empty idle state.
func NewState() State {
	return State{
		Values: make(map[string]string),
		Errors: make(map[string]string),
		Status: StatusIdle,
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.Values = maps.Clone(s.Values)
	out.Errors = maps.Clone(s.Errors)
	if out.Values == nil {
		out.Values = make(map[string]string)
	}
	if out.Errors == nil {
		out.Errors = make(map[string]string)
	}
	return out
}

// Valid reports whether the state carries no errors.
func (s State) Valid() bool {
	return len(s.Errors) == 0 && s.FormError == ""
}

// Transition records a status change.
type Transition struct {
	Form string
	From Status
	To   Status
}
