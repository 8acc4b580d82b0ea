package postgresengine

import (
	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithTablePrefix prefixes the flow, flow_run and task_run table names, e.g. "orchestration_".
func WithTablePrefix(prefix string) Option {
	return func(s *Store) error {
		if prefix == "" {
			return ErrEmptyTablePrefix
		}

		s.tablePrefix = prefix

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: id counts and durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause query failures.
func WithLogger(logger runfilter.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// It receives the same messages as the Logger, together with the query context for trace correlation.
func WithContextualLogger(logger runfilter.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives query durations, the number of returned ids and database errors.
func WithMetrics(collector runfilter.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// Every QueryIDs call is wrapped in a span.
func WithTracing(collector runfilter.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
