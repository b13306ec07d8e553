package vitals

import (
	"context"

	"go.uber.org/zap"
)

// Sink receives accepted metrics.
type Sink interface {
	Record(ctx context.Context, metrics []Metric) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, metrics []Metric) error

func (f SinkFunc) Record(ctx context.Context, metrics []Metric) error {
	return f(ctx, metrics)
}

// LogSink logs each metric. It is the default when no analytics endpoint is
// configured.
type LogSink struct {
	Logger *zap.Logger
}

func (s LogSink) Record(_ context.Context, metrics []Metric) error {
	logger := s.Logger
	if logger == nil {
		return nil
	}
	for _, m := range metrics {
		logger.Info("web vital",
			zap.String("name", m.Name),
			zap.Float64("value", m.Value),
			zap.String("rating", string(m.Rating)),
			zap.String("page", m.Page),
		)
	}
	return nil
}
