package broker

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// routerOptions holds a Router's configuration, built up by Option values
// the same way the teacher's clientOptions is built up by its functional
// options - a private struct, public With* constructors, sensible
// zero-behavior defaults applied in New.
type routerOptions struct {
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Router at construction time.
type Option func(*routerOptions)

// WithLogger sets the structured logger a Router uses for subscribe,
// publish, and validation-rejection events. The default discards
// everything, mirroring the teacher's nil-safe logging default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *routerOptions) {
		o.logger = logger
	}
}

// WithMetrics attaches a *Metrics a Router reports its subscription-trie
// and retained-trie node counts, and publish routing outcomes, through. The default
// is nil, under which all reporting is a no-op.
func WithMetrics(m *Metrics) Option {
	return func(o *routerOptions) {
		o.metrics = m
	}
}

// WithPrometheusRegistry is a convenience over WithMetrics: it builds a
// Metrics registered against reg and attaches it.
func WithPrometheusRegistry(reg prometheus.Registerer) Option {
	return func(o *routerOptions) {
		o.metrics = NewMetrics(reg)
	}
}

func defaultRouterOptions() routerOptions {
	return routerOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
