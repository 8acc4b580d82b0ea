// Package oteladapters provides OpenTelemetry implementations of the runfilter observability interfaces.
//
// Plug them into a query layer to export query spans, metrics and trace-correlated logs:
//
//	store, _ := postgresengine.NewStoreFromPGXPool(
//		db,
//		postgresengine.WithTracing(oteladapters.NewTracingCollector(otel.Tracer("runfilter"))),
//		postgresengine.WithMetrics(oteladapters.NewMetricsCollector(otel.Meter("runfilter"))),
//		postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("runfilter")),
//	)
//
// The package lives in its own module so that the core module does not depend on OpenTelemetry.
package oteladapters
