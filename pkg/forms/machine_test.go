package forms

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeTimer struct {
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &fakeTimer{at: c.now.Add(d), fn: f}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired && !timer.at.After(c.now) {
			timer.fired = true
			due = append(due, timer)
		}
	}
	c.mu.Unlock()
	for _, timer := range due {
		timer.fn()
	}
}

type transitionLog struct {
	mu   sync.Mutex
	seen []Status
}

func (l *transitionLog) record(t Transition) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen = append(l.seen, t.To)
}

func (l *transitionLog) statuses() []Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Status(nil), l.seen...)
}

func succeed(context.Context, Submission) (Outcome, error) {
	return OutcomeSuccess, nil
}

func validContact() map[string]string {
	return map[string]string{
		"name":    "Ana Pérez",
		"email":   "ana@example.com",
		"phone":   "(305) 555-1234",
		"subject": "general",
		"message": "Do you accept new patients this month?",
	}
}

func TestInvalidSubmitNeverEntersSubmitting(t *testing.T) {
	log := &transitionLog{}
	called := false
	m := NewMachine(ContactSchema(),
		WithBackend(BackendFunc(func(context.Context, Submission) (Outcome, error) {
			called = true
			return OutcomeSuccess, nil
		})),
		OnTransition(log.record),
	)
	m.SetValue("email", "foo@")

	state, err := m.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if called {
		t.Fatalf("backend called for invalid values")
	}
	if diff := cmp.Diff([]Status{StatusValidating, StatusIdle}, log.statuses()); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
	if state.Status != StatusIdle || state.Errors["email"] != "Enter a valid email address" {
		t.Fatalf("unexpected state: %+v", state)
	}
	if state.Errors["name"] != "Full name is required" {
		t.Fatalf("name error: %q", state.Errors["name"])
	}

	if !m.SetValue("email", "ana@example.com") {
		t.Fatalf("edit refused")
	}
	if _, ok := m.State().Errors["email"]; ok {
		t.Fatalf("editing a field should clear its error")
	}
}

func TestSuccessfulSubmitResetsAfterDelay(t *testing.T) {
	clock := newFakeClock()
	log := &transitionLog{}
	var received Submission
	m := NewMachine(ContactSchema(),
		WithClock(clock),
		WithBackend(BackendFunc(func(_ context.Context, sub Submission) (Outcome, error) {
			received = sub
			return OutcomeSuccess, nil
		})),
		OnTransition(log.record),
	)
	values := validContact()
	values["name"] = "  Ana Pérez  "
	m.SetValues(values)

	state, err := m.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if state.Status != StatusSuccess || state.Reference == "" {
		t.Fatalf("unexpected state: %+v", state)
	}
	if received.Reference != state.Reference || received.Form != ContactForm {
		t.Fatalf("submission mismatch: %+v", received)
	}
	if received.Values["name"] != "Ana Pérez" {
		t.Fatalf("values should be trimmed: %q", received.Values["name"])
	}
	if !received.SubmittedAt.Equal(clock.Now()) {
		t.Fatalf("submitted at: %v", received.SubmittedAt)
	}

	clock.Advance(DefaultResetDelay - time.Millisecond)
	if got := m.State().Status; got != StatusSuccess {
		t.Fatalf("reset too early: %s", got)
	}
	clock.Advance(time.Millisecond)

	after := m.State()
	if after.Status != StatusIdle || len(after.Values) != 0 || after.Reference != "" {
		t.Fatalf("expected empty idle state, got %+v", after)
	}
	want := []Status{StatusValidating, StatusSubmitting, StatusSuccess, StatusIdle}
	if diff := cmp.Diff(want, log.statuses()); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitFailureAndTimeout(t *testing.T) {
	boom := errors.New("upstream down")
	cases := []struct {
		name      string
		outcome   Outcome
		err       error
		wantError string
	}{
		{name: "failure", outcome: OutcomeFailure, err: boom, wantError: "failed copy"},
		{name: "timeout", outcome: OutcomeTimeout, err: context.DeadlineExceeded, wantError: "timeout copy"},
		{name: "success with error", outcome: OutcomeSuccess, err: boom, wantError: "failed copy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine(ContactSchema(),
				WithClock(newFakeClock()),
				WithFormErrors("failed copy", "timeout copy"),
				WithBackend(BackendFunc(func(context.Context, Submission) (Outcome, error) {
					return tc.outcome, tc.err
				})),
			)
			m.SetValues(validContact())

			state, err := m.Submit(context.Background())
			var submitErr *SubmitError
			if !errors.As(err, &submitErr) {
				t.Fatalf("expected SubmitError, got %v", err)
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("cause not wrapped: %v", err)
			}
			if state.Status != StatusFailed || state.FormError != tc.wantError {
				t.Fatalf("unexpected state: %+v", state)
			}
			if state.Values["email"] != "ana@example.com" {
				t.Fatalf("values should survive a failure")
			}

			m.SetValue("message", "Trying again after the failure.")
			if got := m.State().Status; got != StatusFailed {
				t.Fatalf("editing should not change status, got %s", got)
			}
		})
	}
}

func TestRejectedSubmitReturnsToIdleWithFieldErrors(t *testing.T) {
	log := &transitionLog{}
	m := NewMachine(ContactSchema(),
		WithClock(newFakeClock()),
		WithBackend(BackendFunc(func(context.Context, Submission) (Outcome, error) {
			return OutcomeFailure, &RejectedError{Errors: map[string][]string{
				"/body/email": {"Email already registered"},
				"form":        {"Check the highlighted fields."},
			}}
		})),
		OnTransition(log.record),
	)
	m.SetValues(validContact())

	state, err := m.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff([]Status{StatusValidating, StatusSubmitting, StatusIdle}, log.statuses()); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
	if state.Errors["email"] != "Email already registered" {
		t.Fatalf("email error: %+v", state.Errors)
	}
	if state.FormError != "Check the highlighted fields." {
		t.Fatalf("form error: %q", state.FormError)
	}
	if state.Values["email"] != "ana@example.com" {
		t.Fatalf("values should survive a rejection")
	}
}

func TestRejectedSubmitWithoutKnownFieldsFails(t *testing.T) {
	m := NewMachine(ContactSchema(),
		WithClock(newFakeClock()),
		WithFormErrors("failed copy", "timeout copy"),
		WithBackend(BackendFunc(func(context.Context, Submission) (Outcome, error) {
			return OutcomeFailure, &RejectedError{Errors: map[string][]string{
				"/body/captcha": {"Captcha expired"},
			}}
		})),
	)
	m.SetValues(validContact())

	state, err := m.Submit(context.Background())
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected the rejection to be returned, got %v", err)
	}
	if state.Status != StatusFailed || state.FormError != "Captcha expired" {
		t.Fatalf("unexpected state: %+v", state)
	}
	if len(state.Errors) != 0 {
		t.Fatalf("no field errors expected: %+v", state.Errors)
	}
}

func TestSubmitWhileSubmittingIsBusy(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	m := NewMachine(ContactSchema(),
		WithClock(newFakeClock()),
		WithBackend(BackendFunc(func(context.Context, Submission) (Outcome, error) {
			close(entered)
			<-release
			return OutcomeSuccess, nil
		})),
	)
	m.SetValues(validContact())

	done := make(chan error, 1)
	go func() {
		_, err := m.Submit(context.Background())
		done <- err
	}()
	<-entered

	if _, err := m.Submit(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if m.SetValue("name", "Someone else") {
		t.Fatalf("edits should be refused while submitting")
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
}

func TestResubmitFromSuccessCancelsReset(t *testing.T) {
	clock := newFakeClock()
	m := NewMachine(ContactSchema(), WithClock(clock), WithBackend(BackendFunc(succeed)))
	m.SetValues(validContact())

	if _, err := m.Submit(context.Background()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	clock.Advance(2 * time.Second)
	if _, err := m.Submit(context.Background()); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	clock.Advance(2 * time.Second)
	if got := m.State().Status; got != StatusSuccess {
		t.Fatalf("stale reset fired: %s", got)
	}
	clock.Advance(2 * time.Second)
	if got := m.State().Status; got != StatusIdle {
		t.Fatalf("expected reset, got %s", got)
	}
}

func TestCloseStopsResetAndRejectsSubmit(t *testing.T) {
	clock := newFakeClock()
	m := NewMachine(ContactSchema(), WithClock(clock), WithBackend(BackendFunc(succeed)))
	m.SetValues(validContact())
	if _, err := m.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	m.Close()
	clock.Advance(DefaultResetDelay)
	if got := m.State().Status; got != StatusSuccess {
		t.Fatalf("closed machine should not reset, got %s", got)
	}
	if _, err := m.Submit(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestSimulatedBackendHonoursContext(t *testing.T) {
	backend := NewSimulatedBackend(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	outcome, err := backend.Submit(ctx, Submission{})
	if outcome != OutcomeTimeout || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected timeout, got %s %v", outcome, err)
	}

	outcome, err = NewSimulatedBackend(time.Millisecond).Submit(context.Background(), Submission{})
	if outcome != OutcomeSuccess || err != nil {
		t.Fatalf("expected success, got %s %v", outcome, err)
	}
	if NewSimulatedBackend(0).Delay != DefaultSubmitDelay {
		t.Fatalf("zero delay should select the default")
	}
}
