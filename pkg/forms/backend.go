package forms

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Outcome is the verdict of a submission backend.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Submission is what a backend receives for a valid form.
type Submission struct {
	Form        string            `json:"form"`
	Reference   string            `json:"reference"`
	SubmittedAt time.Time         `json:"submittedAt"`
	Values      map[string]string `json:"values"`
}

// Backend delivers submissions. Implementations return OutcomeSuccess with a
// nil error, or OutcomeFailure/OutcomeTimeout with the cause.
type Backend interface {
	Submit(ctx context.Context, sub Submission) (Outcome, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, sub Submission) (Outcome, error)

func (f BackendFunc) Submit(ctx context.Context, sub Submission) (Outcome, error) {
	return f(ctx, sub)
}

// DefaultSubmitDelay is the simulated backend's artificial latency.
const DefaultSubmitDelay = 1200 * time.Millisecond

// SimulatedBackend accepts every submission after a fixed delay. It performs
// no I/O.
type SimulatedBackend struct {
	Delay time.Duration
}

// NewSimulatedBackend returns a backend with the given delay; zero or negative
// selects DefaultSubmitDelay.
func NewSimulatedBackend(delay time.Duration) *SimulatedBackend {
	if delay <= 0 {
		delay = DefaultSubmitDelay
	}
	return &SimulatedBackend{Delay: delay}
}

func (b *SimulatedBackend) Submit(ctx context.Context, _ Submission) (Outcome, error) {
	timer := time.NewTimer(b.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return OutcomeSuccess, nil
	case <-ctx.Done():
		return OutcomeTimeout, fmt.Errorf("forms: simulated submit: %w", ctx.Err())
	}
}

// outcomeFromContext classifies err against ctx: an expired or cancelled
// context is a timeout, anything else a failure.
func outcomeFromContext(ctx context.Context, err error) Outcome {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return OutcomeTimeout
	}
	return OutcomeFailure
}
