package vitals

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// SameOriginGuard rejects beacons whose Origin header names another host.
// Requests without an Origin header are allowed.
func SameOriginGuard(host string) GuardFunc {
	host = strings.ToLower(strings.TrimSpace(host))
	return func(r *http.Request) error {
		origin := r.Header.Get("Origin")
		if origin == "" || host == "" {
			return nil
		}
		parsed, err := url.Parse(origin)
		if err != nil || !strings.EqualFold(parsed.Host, host) {
			return StatusError{Code: http.StatusForbidden, Err: fmt.Errorf("vitals: origin %q not allowed", origin)}
		}
		return nil
	}
}

// Handler builds the beacon handler with default options plus overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the beacon handler from a pre-built Options value.
// It accepts a single metric or an array, as JSON posted with fetch or
// navigator.sendBeacon (which sends text/plain), and answers 204.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeError(w, err, http.StatusForbidden)
				return
			}
		}

		metrics, err := decodeMetrics(http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes), opts.MaxMetrics)
		if err != nil {
			opts.Logger.Debug("vitals beacon rejected", zap.Error(err))
			writeError(w, err, http.StatusBadRequest)
			return
		}

		if err := opts.Sink.Record(r.Context(), metrics); err != nil {
			opts.Logger.Warn("vitals sink failed", zap.Int("metrics", len(metrics)), zap.Error(err))
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func decodeMetrics(body io.Reader, limit int) ([]Metric, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, StatusError{Code: http.StatusRequestEntityTooLarge, Err: err}
		}
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("vitals: empty beacon")
	}

	var batch []Metric
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &batch); err != nil {
			return nil, fmt.Errorf("vitals: decode beacon: %w", err)
		}
	} else {
		var single Metric
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("vitals: decode beacon: %w", err)
		}
		batch = []Metric{single}
	}
	if len(batch) == 0 {
		return nil, errors.New("vitals: empty beacon")
	}
	if len(batch) > limit {
		return nil, StatusError{Code: http.StatusRequestEntityTooLarge, Err: fmt.Errorf("vitals: %d metrics exceeds limit %d", len(batch), limit)}
	}

	out := make([]Metric, 0, len(batch))
	for _, m := range batch {
		normalized, err := Normalize(m)
		if err != nil {
			return nil, err
		}
		out = append(out, normalized)
	}
	return out, nil
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}
