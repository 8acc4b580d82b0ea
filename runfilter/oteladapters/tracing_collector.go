package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter"
)

const (
	statusSuccess     = "success"
	statusError       = "error"
	statusCanceled    = "canceled"
	attrUnknownStatus = "status"
)

// TracingCollector implements runfilter.TracingCollector with an OpenTelemetry tracer.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a collector that starts its spans with the given tracer.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan starts a span carrying attrs and returns the context holding it.
func (t *TracingCollector) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, runfilter.SpanContext) {

	spanCtx, span := t.tracer.Start(ctx, name, trace.WithAttributes(toAttributes(attrs)...))

	return spanCtx, &SpanContext{span: span}
}

// FinishSpan adds the final attributes, sets the status and ends the span.
// Spans not started by a TracingCollector are ignored.
func (t *TracingCollector) FinishSpan(spanCtx runfilter.SpanContext, status string, attrs map[string]string) {
	otelSpan, ok := spanCtx.(*SpanContext)
	if !ok {
		return
	}

	otelSpan.span.SetAttributes(toAttributes(attrs)...)
	otelSpan.SetStatus(status)
	otelSpan.span.End()
}

var _ runfilter.TracingCollector = (*TracingCollector)(nil)

// SpanContext implements runfilter.SpanContext for an OpenTelemetry span.
type SpanContext struct {
	span trace.Span
}

// SetStatus maps "success" to codes.Ok and "error" or "canceled" to codes.Error.
// Any other status is recorded as a span attribute.
func (s *SpanContext) SetStatus(status string) {
	switch status {
	case statusSuccess:
		s.span.SetStatus(codes.Ok, "")
	case statusError:
		s.span.SetStatus(codes.Error, "query failed")
	case statusCanceled:
		s.span.SetStatus(codes.Error, "query canceled")
	default:
		s.span.SetAttributes(attribute.String(attrUnknownStatus, status))
	}
}

// AddAttribute sets a string attribute on the span.
func (s *SpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

var _ runfilter.SpanContext = (*SpanContext)(nil)
