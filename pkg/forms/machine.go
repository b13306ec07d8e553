package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultResetDelay is how long a successful form shows its success state
// before returning to an empty idle state.
const DefaultResetDelay = 4 * time.Second

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithBackend sets the submission backend. The default is a SimulatedBackend.
func WithBackend(backend Backend) MachineOption {
	return func(m *Machine) {
		if backend != nil {
			m.backend = backend
		}
	}
}

// WithResetDelay sets the delay before a successful form resets.
func WithResetDelay(d time.Duration) MachineOption {
	return func(m *Machine) {
		if d > 0 {
			m.resetDelay = d
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(clock Clock) MachineOption {
	return func(m *Machine) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithMessages sets how validation issues become messages, typically a
// translator bound to the request locale.
func WithMessages(fn MessageFunc) MachineOption {
	return func(m *Machine) {
		if fn != nil {
			m.messages = fn
		}
	}
}

// WithFormErrors sets the form-level copy for failed and timed out
// submissions.
func WithFormErrors(failed, timeout string) MachineOption {
	return func(m *Machine) {
		if failed != "" {
			m.failedMessage = failed
		}
		if timeout != "" {
			m.timeoutMessage = timeout
		}
	}
}

// OnTransition registers an observer called after every status change,
// outside the machine's lock.
func OnTransition(fn func(Transition)) MachineOption {
	return func(m *Machine) {
		if fn != nil {
			m.observers = append(m.observers, fn)
		}
	}
}

// WithMachineLogger sets the logger.
func WithMachineLogger(logger *zap.Logger) MachineOption {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Machine drives one form through
// idle -> validating -> (idle with errors | submitting -> success -> idle),
// with failed as the landing state for backend failures and timeouts.
type Machine struct {
	schema Schema

	mu         sync.Mutex
	state      State
	resetTimer Timer
	closed     bool

	backend        Backend
	resetDelay     time.Duration
	clock          Clock
	messages       MessageFunc
	failedMessage  string
	timeoutMessage string
	observers      []func(Transition)
	logger         *zap.Logger
}

// NewMachine returns an idle machine for schema.
func NewMachine(schema Schema, opts ...MachineOption) *Machine {
	m := &Machine{
		schema:         schema,
		state:          NewState(),
		backend:        NewSimulatedBackend(DefaultSubmitDelay),
		resetDelay:     DefaultResetDelay,
		clock:          SystemClock,
		messages:       DefaultMessage,
		failedMessage:  "We could not send your request. Please try again or call us.",
		timeoutMessage: "The request took too long. Please try again.",
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Schema returns the machine's schema.
func (m *Machine) Schema() Schema {
	return m.schema
}

// State returns a snapshot of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// SetValue records an edit and clears that field's error. Unknown fields are
// ignored. Edits are refused while a submission is in flight.
func (m *Machine) SetValue(name, value string) bool {
	if _, ok := m.schema.Field(name); !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.state.Status == StatusSubmitting || m.state.Status == StatusValidating {
		return false
	}
	m.state.Values[name] = value
	delete(m.state.Errors, name)
	return true
}

// SetValues applies SetValue for every entry.
func (m *Machine) SetValues(values map[string]string) {
	for name, value := range values {
		m.SetValue(name, value)
	}
}

// Submit validates the current values and, when they pass, hands them to the
// backend. Invalid values return the machine to idle with errors without ever
// entering submitting. A backend RejectedError naming known fields does the
// same after submitting. The returned State is a snapshot taken when Submit
// finishes.
func (m *Machine) Submit(ctx context.Context) (State, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var pending []Transition
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return State{}, ErrClosed
	}
	switch m.state.Status {
	case StatusSubmitting, StatusValidating:
		m.mu.Unlock()
		return State{}, ErrBusy
	case StatusSuccess:
		m.stopResetLocked()
	}

	pending = append(pending, m.moveLocked(StatusValidating))
	m.state.FormError = ""
	m.state.Errors = m.schema.validate(m.state.Values, m.messages)
	if len(m.state.Errors) > 0 {
		pending = append(pending, m.moveLocked(StatusIdle))
		snapshot := m.state.Clone()
		m.mu.Unlock()
		m.emit(pending)
		return snapshot, nil
	}

	sub := Submission{
		Form:        m.schema.Name,
		Reference:   uuid.NewString(),
		SubmittedAt: m.clock.Now().UTC(),
		Values:      trimValues(m.state.Values),
	}
	pending = append(pending, m.moveLocked(StatusSubmitting))
	m.mu.Unlock()
	m.emit(pending)
	pending = pending[:0]

	outcome, err := m.backend.Submit(ctx, sub)

	m.mu.Lock()
	var rejected *RejectedError
	if outcome != OutcomeSuccess && errors.As(err, &rejected) {
		mapping := MapErrors(m.schema, rejected.Errors)
		mapping.Apply(&m.state)
		if len(mapping.Fields) > 0 {
			pending = append(pending, m.moveLocked(StatusIdle))
			m.logger.Info("form submission rejected",
				zap.String("form", sub.Form),
				zap.String("reference", sub.Reference),
				zap.Int("fields", len(mapping.Fields)),
			)
			snapshot := m.state.Clone()
			m.mu.Unlock()
			m.emit(pending)
			return snapshot, nil
		}
	}
	switch outcome {
	case OutcomeSuccess:
		if err != nil {
			outcome = OutcomeFailure
			break
		}
		m.state.Reference = sub.Reference
		pending = append(pending, m.moveLocked(StatusSuccess))
		if !m.closed {
			m.resetTimer = m.clock.AfterFunc(m.resetDelay, m.reset)
		}
	}
	if outcome != OutcomeSuccess {
		if m.state.FormError == "" {
			m.state.FormError = m.failedMessage
			if outcome == OutcomeTimeout {
				m.state.FormError = m.timeoutMessage
			}
		}
		pending = append(pending, m.moveLocked(StatusFailed))
		m.logger.Warn("form submission failed",
			zap.String("form", sub.Form),
			zap.String("reference", sub.Reference),
			zap.Stringer("outcome", outcome),
			zap.Error(err),
		)
	} else {
		m.logger.Info("form submitted", zap.String("form", sub.Form), zap.String("reference", sub.Reference))
	}
	snapshot := m.state.Clone()
	m.mu.Unlock()
	m.emit(pending)

	if outcome != OutcomeSuccess && err == nil {
		err = fmt.Errorf("forms: submission %s", outcome)
	}
	if outcome != OutcomeSuccess {
		return snapshot, &SubmitError{Outcome: outcome, Err: err}
	}
	return snapshot, nil
}

// SubmitError wraps a backend failure with its outcome.
type SubmitError struct {
	Outcome Outcome
	Err     error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("forms: submit %s: %v", e.Outcome, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// Close cancels a pending reset. The machine rejects further submissions.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.stopResetLocked()
}

func (m *Machine) reset() {
	m.mu.Lock()
	if m.state.Status != StatusSuccess {
		m.mu.Unlock()
		return
	}
	m.resetTimer = nil
	t := m.moveLocked(StatusIdle)
	m.state.Values = make(map[string]string)
	m.state.Errors = make(map[string]string)
	m.state.FormError = ""
	m.state.Reference = ""
	m.mu.Unlock()
	m.emit([]Transition{t})
}

func (m *Machine) stopResetLocked() {
	if m.resetTimer != nil {
		m.resetTimer.Stop()
		m.resetTimer = nil
	}
}

func (m *Machine) moveLocked(to Status) Transition {
	t := Transition{Form: m.schema.Name, From: m.state.Status, To: to}
	m.state.Status = to
	return t
}

func (m *Machine) emit(transitions []Transition) {
	for _, t := range transitions {
		for _, observer := range m.observers {
			observer(t)
		}
	}
}

func trimValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for name, value := range values {
		out[name] = strings.TrimSpace(value)
	}
	return out
}
