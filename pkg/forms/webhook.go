package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

// WebhookOption configures a WebhookBackend.
type WebhookOption func(*WebhookBackend)

// WithHTTPClient sets the client used for deliveries.
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(b *WebhookBackend) {
		if client != nil {
			b.client = client
		}
	}
}

// WithAttempts bounds the number of delivery attempts.
func WithAttempts(n uint) WebhookOption {
	return func(b *WebhookBackend) {
		if n > 0 {
			b.attempts = n
		}
	}
}

// WithRetryDelay sets the base delay between attempts.
func WithRetryDelay(d time.Duration) WebhookOption {
	return func(b *WebhookBackend) {
		if d >= 0 {
			b.delay = d
		}
	}
}

// WithHeader adds a header to every delivery.
func WithHeader(name, value string) WebhookOption {
	return func(b *WebhookBackend) {
		b.headers.Set(name, value)
	}
}

// WithWebhookLogger sets the logger for retries and failures.
func WithWebhookLogger(logger *zap.Logger) WebhookOption {
	return func(b *WebhookBackend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WebhookBackend POSTs submissions as JSON. Network errors and 5xx/429
// responses are retried; other non-2xx responses fail immediately. A 422 whose
// body carries {"errors": {path: [messages]}} becomes a *RejectedError.
type WebhookBackend struct {
	url      string
	client   *http.Client
	attempts uint
	delay    time.Duration
	headers  http.Header
	logger   *zap.Logger
}

// NewWebhookBackend builds a backend delivering to url.
func NewWebhookBackend(url string, opts ...WebhookOption) (*WebhookBackend, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("forms: webhook url is required")
	}
	b := &WebhookBackend{
		url:      url,
		client:   &http.Client{Timeout: 10 * time.Second},
		attempts: 3,
		delay:    500 * time.Millisecond,
		headers:  make(http.Header),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("webhook responded %d", e.code)
	}
	return fmt.Sprintf("webhook responded %d: %s", e.code, e.body)
}

func (b *WebhookBackend) Submit(ctx context.Context, sub Submission) (Outcome, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return OutcomeFailure, fmt.Errorf("forms: encode submission: %w", err)
	}

	err = retry.Do(
		func() error {
			return b.deliver(ctx, payload)
		},
		retry.Context(ctx),
		retry.Attempts(b.attempts),
		retry.Delay(b.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			b.logger.Warn("webhook delivery retry",
				zap.String("form", sub.Form),
				zap.String("reference", sub.Reference),
				zap.Uint("attempt", attempt+1),
				zap.Error(err),
			)
		}),
	)
	if err == nil {
		return OutcomeSuccess, nil
	}

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		b.logger.Info("webhook rejected submission",
			zap.String("form", sub.Form),
			zap.String("reference", sub.Reference),
			zap.Int("fields", len(rejected.Errors)),
		)
		return OutcomeFailure, fmt.Errorf("forms: webhook: %w", err)
	}

	outcome := outcomeFromContext(ctx, err)
	b.logger.Error("webhook delivery failed",
		zap.String("form", sub.Form),
		zap.String("reference", sub.Reference),
		zap.Stringer("outcome", outcome),
		zap.Error(err),
	)
	return outcome, fmt.Errorf("forms: webhook: %w", err)
}

func (b *WebhookBackend) deliver(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(payload))
	if err != nil {
		return retry.Unrecoverable(err)
	}
	req.Header.Set("Content-Type", "application/json")
	for name, values := range b.headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	resp, err := b.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return retry.Unrecoverable(ctx.Err())
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if resp.StatusCode == http.StatusUnprocessableEntity {
		var payload struct {
			Errors map[string][]string `json:"errors"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload); err == nil && len(payload.Errors) > 0 {
			return retry.Unrecoverable(&RejectedError{Errors: payload.Errors})
		}
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	statusErr := &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return statusErr
	}
	return retry.Unrecoverable(statusErr)
}
