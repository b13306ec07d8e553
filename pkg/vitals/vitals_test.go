package vitals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type recordingSink struct {
	mu      sync.Mutex
	batches [][]Metric
	err     error
}

func (s *recordingSink) Record(_ context.Context, metrics []Metric) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, metrics)
	return s.err
}

func TestRate(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		want  Rating
	}{
		{name: "LCP", value: 2500, want: RatingGood},
		{name: "lcp", value: 3000, want: RatingNeedsImprovement},
		{name: "LCP", value: 4001, want: RatingPoor},
		{name: "CLS", value: 0.05, want: RatingGood},
		{name: "CLS", value: 0.3, want: RatingPoor},
		{name: "INP", value: 350, want: RatingNeedsImprovement},
		{name: "XYZ", value: 1, want: ""},
	}
	for _, tc := range cases {
		if got := Rate(tc.name, tc.value); got != tc.want {
			t.Errorf("Rate(%s, %v) = %q, want %q", tc.name, tc.value, got, tc.want)
		}
	}
}

func TestHandlerAcceptsSingleAndBatch(t *testing.T) {
	sink := &recordingSink{}
	h := Handler(WithSink(sink))

	req := httptest.NewRequest(http.MethodPost, "/api/vitals", strings.NewReader(`{"name":"lcp","value":1800,"rating":"poor","page":"/about"}`))
	req.Header.Set("Content-Type", "text/plain;charset=UTF-8")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/vitals", strings.NewReader(`[{"name":"CLS","value":0.2},{"name":"TTFB","value":100}]`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	want := [][]Metric{
		{{Name: "LCP", Value: 1800, Rating: RatingGood, Page: "/about"}},
		{{Name: "CLS", Value: 0.2, Rating: RatingNeedsImprovement}, {Name: "TTFB", Value: 100, Rating: RatingGood}},
	}
	if diff := cmp.Diff(want, sink.batches); diff != "" {
		t.Fatalf("batches mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlerRejects(t *testing.T) {
	cases := []struct {
		name   string
		method string
		body   string
		origin string
		opts   []OptionFn
		want   int
	}{
		{name: "wrong method", method: http.MethodGet, want: http.StatusMethodNotAllowed},
		{name: "empty body", method: http.MethodPost, body: " ", want: http.StatusBadRequest},
		{name: "bad json", method: http.MethodPost, body: "{", want: http.StatusBadRequest},
		{name: "unknown metric", method: http.MethodPost, body: `{"name":"FOO","value":1}`, want: http.StatusBadRequest},
		{name: "negative value", method: http.MethodPost, body: `{"name":"LCP","value":-1}`, want: http.StatusBadRequest},
		{name: "too large", method: http.MethodPost, body: `{"name":"LCP","value":1,"id":"` + strings.Repeat("x", 64) + `"}`, opts: []OptionFn{WithMaxBodyBytes(32)}, want: http.StatusRequestEntityTooLarge},
		{name: "too many", method: http.MethodPost, body: `[{"name":"LCP","value":1},{"name":"LCP","value":2}]`, opts: []OptionFn{WithMaxMetrics(1)}, want: http.StatusRequestEntityTooLarge},
		{name: "foreign origin", method: http.MethodPost, body: `{"name":"LCP","value":1}`, origin: "https://evil.example", opts: []OptionFn{WithGuard(SameOriginGuard("clinic.example"))}, want: http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := &recordingSink{}
			h := Handler(append([]OptionFn{WithSink(sink)}, tc.opts...)...)
			req := httptest.NewRequest(tc.method, "/api/vitals", strings.NewReader(tc.body))
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if len(sink.batches) != 0 {
				t.Fatalf("rejected beacon reached the sink")
			}
		})
	}
}

func TestHandlerSwallowsSinkErrors(t *testing.T) {
	h := Handler(WithSink(&recordingSink{err: errors.New("down")}))
	req := httptest.NewRequest(http.MethodPost, "/api/vitals", strings.NewReader(`{"name":"FCP","value":1}`))
	req.Header.Set("Origin", "https://clinic.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("sink failures should not reach the visitor, got %d", rec.Code)
	}
}

func TestMountPathJoinsBasePath(t *testing.T) {
	if got := MountPath("/"); got != "/api/vitals" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("site/", WithRoutePath("beacon")); got != "/site/beacon" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, pattern, strings.NewReader(`{"name":"INP","value":10}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if _, err := RegisterRoutes(nil, ""); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}

func TestForwarderRetriesAndDrainsOnClose(t *testing.T) {
	var hits atomic.Int32
	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		var batch []Metric
		if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
			t.Errorf("decode: %v", err)
		}
		received.Add(int32(len(batch)))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f, err := NewForwarder(server.URL, WithForwarderDelay(time.Millisecond))
	if err != nil {
		t.Fatalf("new forwarder: %v", err)
	}
	if err := f.Record(context.Background(), []Metric{{Name: "LCP", Value: 1}, {Name: "CLS", Value: 0}}); err != nil {
		t.Fatalf("record: %v", err)
	}
	f.Close()

	if got := received.Load(); got != 2 {
		t.Fatalf("expected 2 forwarded metrics, got %d", got)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected a retry, got %d requests", got)
	}
	if err := f.Record(context.Background(), []Metric{{Name: "LCP"}}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	f.Close()
}

func TestForwarderDropsWhenQueueFull(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()

	f, err := NewForwarder(server.URL, WithQueueSize(1))
	if err != nil {
		t.Fatalf("new forwarder: %v", err)
	}
	batch := []Metric{{Name: "LCP", Value: 1}}
	var full bool
	for i := 0; i < 5; i++ {
		if err := f.Record(context.Background(), batch); errors.Is(err, ErrQueueFull) {
			full = true
			break
		}
	}
	close(release)
	f.Close()
	if !full {
		t.Fatalf("expected the queue to fill up")
	}
}

func TestNewForwarderRequiresEndpoint(t *testing.T) {
	if _, err := NewForwarder(""); err == nil {
		t.Fatalf("expected error")
	}
}
