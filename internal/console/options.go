package console

import (
	"github.com/yndnr/quill/internal/telemetry/logger"
	"github.com/yndnr/quill/internal/telemetry/metric"
)

type options struct {
	logger  logger.Logger
	metrics *metric.Registry
}

func defaultOptions() options {
	return options{
		logger: logger.Default(),
	}
}

// Option configures a Builder or Selector.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics records console metrics in m.
func WithMetrics(m *metric.Registry) Option {
	return func(o *options) {
		o.metrics = m
	}
}
