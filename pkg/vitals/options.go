package vitals

import (
	"net/http"

	"go.uber.org/zap"
)

// GuardFunc may reject a beacon before it is read.
type GuardFunc func(r *http.Request) error

// Options configures the beacon handler.
type Options struct {
	RoutePath    string
	MaxBodyBytes int64
	MaxMetrics   int
	Guard        GuardFunc
	Sink         Sink
	Logger       *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/api/vitals",
		MaxBodyBytes: 16 << 10,
		MaxMetrics:   20,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/vitals"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 16 << 10
	}
	if opts.MaxMetrics <= 0 {
		opts.MaxMetrics = 20
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Sink == nil {
		opts.Sink = LogSink{Logger: opts.Logger}
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		o.MaxBodyBytes = n
	}
}

func WithMaxMetrics(n int) OptionFn {
	return func(o *Options) {
		o.MaxMetrics = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

// WithSink sets where accepted metrics go.
func WithSink(sink Sink) OptionFn {
	return func(o *Options) {
		o.Sink = sink
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}
