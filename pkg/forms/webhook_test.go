package forms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestWebhookRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		if got := r.Header.Get("X-Site"); got != "medsite" {
			t.Errorf("header: %q", got)
		}
		var sub Submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			t.Errorf("decode: %v", err)
		}
		if sub.Form != ContactForm || sub.Values["email"] != "ana@example.com" {
			t.Errorf("unexpected payload: %+v", sub)
		}
		if n == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	backend, err := NewWebhookBackend(server.URL, WithRetryDelay(time.Millisecond), WithHeader("X-Site", "medsite"))
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	outcome, err := backend.Submit(context.Background(), Submission{
		Form:   ContactForm,
		Values: map[string]string{"email": "ana@example.com"},
	})
	if err != nil || outcome != OutcomeSuccess {
		t.Fatalf("expected success, got %s %v", outcome, err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestWebhookDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer server.Close()

	backend, err := NewWebhookBackend(server.URL, WithRetryDelay(time.Millisecond), WithAttempts(5))
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	outcome, err := backend.Submit(context.Background(), Submission{Form: ContactForm})
	if outcome != OutcomeFailure || err == nil {
		t.Fatalf("expected failure, got %s %v", outcome, err)
	}
	var status *statusError
	if !errors.As(err, &status) || status.code != http.StatusBadRequest {
		t.Fatalf("expected 400 status error, got %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}

func TestWebhookRejectionCarriesFieldErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":{"/body/email":["Email already registered"]}}`))
	}))
	defer server.Close()

	backend, err := NewWebhookBackend(server.URL, WithRetryDelay(time.Millisecond), WithAttempts(5))
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	outcome, err := backend.Submit(context.Background(), Submission{Form: ContactForm})
	if outcome != OutcomeFailure {
		t.Fatalf("expected failure, got %s", outcome)
	}
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected a rejection, got %v", err)
	}
	if got := rejected.Errors["/body/email"]; len(got) != 1 || got[0] != "Email already registered" {
		t.Fatalf("unexpected errors: %v", rejected.Errors)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("rejections must not be retried, got %d attempts", got)
	}

	mapping := MapErrors(ContactSchema(), rejected.Errors)
	if got := mapping.Fields["email"]; len(got) != 1 || got[0] != "Email already registered" {
		t.Fatalf("expected email field error, got %+v", mapping)
	}
}

func TestWebhookUnprocessableWithoutErrorsIsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unprocessable", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	backend, err := NewWebhookBackend(server.URL, WithRetryDelay(time.Millisecond))
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	_, err = backend.Submit(context.Background(), Submission{Form: ContactForm})
	var status *statusError
	if !errors.As(err, &status) || status.code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 status error, got %v", err)
	}
}

func TestWebhookTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	backend, err := NewWebhookBackend(server.URL, WithRetryDelay(time.Millisecond))
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	outcome, err := backend.Submit(ctx, Submission{Form: ContactForm})
	if outcome != OutcomeTimeout || err == nil {
		t.Fatalf("expected timeout, got %s %v", outcome, err)
	}
}

func TestWebhookRequiresURL(t *testing.T) {
	if _, err := NewWebhookBackend("  "); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
