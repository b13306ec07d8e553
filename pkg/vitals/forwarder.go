package vitals

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

var (
	// ErrQueueFull is returned by Record when the forwarder is saturated. The
	// batch is dropped.
	ErrQueueFull = errors.New("vitals: forward queue full")
	// ErrClosed is returned by Record after Close.
	ErrClosed = errors.New("vitals: forwarder closed")
)

// ForwarderOption configures a Forwarder.
type ForwarderOption func(*Forwarder)

func WithForwarderClient(client *http.Client) ForwarderOption {
	return func(f *Forwarder) {
		if client != nil {
			f.client = client
		}
	}
}

func WithForwarderAttempts(n uint) ForwarderOption {
	return func(f *Forwarder) {
		if n > 0 {
			f.attempts = n
		}
	}
}

func WithForwarderDelay(d time.Duration) ForwarderOption {
	return func(f *Forwarder) {
		if d > 0 {
			f.delay = d
		}
	}
}

func WithQueueSize(n int) ForwarderOption {
	return func(f *Forwarder) {
		if n > 0 {
			f.queueSize = n
		}
	}
}

func WithForwarderLogger(logger *zap.Logger) ForwarderOption {
	return func(f *Forwarder) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Forwarder relays metrics to an analytics endpoint from a background worker
// so beacons return immediately. Deliveries are retried with backoff; a batch
// that still fails is logged and dropped.
type Forwarder struct {
	endpoint  string
	client    *http.Client
	attempts  uint
	delay     time.Duration
	queueSize int
	logger    *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan []Metric
	wg     conc.WaitGroup
}

// NewForwarder starts a forwarder posting to endpoint.
func NewForwarder(endpoint string, opts ...ForwarderOption) (*Forwarder, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("vitals: analytics endpoint is required")
	}
	f := &Forwarder{
		endpoint:  endpoint,
		client:    &http.Client{Timeout: 5 * time.Second},
		attempts:  3,
		delay:     250 * time.Millisecond,
		queueSize: 256,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.queue = make(chan []Metric, f.queueSize)
	f.wg.Go(f.run)
	return f, nil
}

// Record enqueues metrics without blocking.
func (f *Forwarder) Record(_ context.Context, metrics []Metric) error {
	if len(metrics) == 0 {
		return nil
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return ErrClosed
	}
	select {
	case f.queue <- append([]Metric(nil), metrics...):
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting metrics and waits for queued batches to be sent.
func (f *Forwarder) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	close(f.queue)
	f.mu.Unlock()
	f.wg.Wait()
}

func (f *Forwarder) run() {
	for batch := range f.queue {
		if err := f.send(context.Background(), batch); err != nil {
			f.logger.Warn("vitals forward failed", zap.String("endpoint", f.endpoint), zap.Int("metrics", len(batch)), zap.Error(err))
		}
	}
}

func (f *Forwarder) send(ctx context.Context, batch []Metric) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("vitals: encode batch: %w", err)
	}
	return retry.Do(
		func() error {
			return f.post(ctx, payload)
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			f.logger.Debug("vitals forward retry", zap.Uint("attempt", attempt+1), zap.Error(err))
		}),
	)
}

func (f *Forwarder) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(payload))
	if err != nil {
		return retry.Unrecoverable(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("vitals: analytics responded %d", resp.StatusCode)
	default:
		return retry.Unrecoverable(fmt.Errorf("vitals: analytics responded %d", resp.StatusCode))
	}
}
