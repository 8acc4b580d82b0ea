package postgresengine

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter"
)

const (
	metricQueryDuration    = "runfilter_query_duration_seconds"
	metricIDsQueried       = "runfilter_ids_queried"
	metricDatabaseErrors   = "runfilter_database_errors_total"
	spanNameQueryIDs       = "runfilter.query_ids"
	spanAttrOperation      = "operation"
	spanAttrEntity         = "entity"
	spanAttrIDCount        = "id_count"
	spanAttrDurationMS     = "duration_ms"
	spanAttrErrorType      = "error_type"
	metricLabelStatus      = "status"
	operationQueryIDs      = "query_ids"
	statusSuccess          = "success"
	statusError            = "error"
	errorTypeBuildQuery    = "build_query"
	errorTypeDatabaseQuery = "database_query"
	errorTypeRowScan       = "row_scan"
)

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (s *Store) logQueryWithDuration(
	ctx context.Context,
	sqlQuery string,
	action string,
	duration time.Duration,
) {

	args := []any{logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery}

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical failures at warn level if a logger is configured.
func (s *Store) logWarn(ctx context.Context, message string, err error) {
	if s.logger != nil {
		s.logger.Warn(message, logAttrError, err.Error())
	}

	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, logAttrError, err.Error())
	}
}

// logError logs error information at the error level if a logger is configured.
func (s *Store) logError(
	ctx context.Context,
	message string,
	err error,
	args ...any,
) {

	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s *Store) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// === Metrics Observer Pattern ===

// queryMetricsObserver encapsulates the metrics collection for QueryIDs.
type queryMetricsObserver struct {
	s      *Store
	ctx    context.Context
	entity string
}

func (s *Store) startQueryMetrics(ctx context.Context, entity string) *queryMetricsObserver {
	return &queryMetricsObserver{s: s, ctx: ctx, entity: entity}
}

func (qmo *queryMetricsObserver) labels(status string) map[string]string {
	return map[string]string{
		spanAttrOperation: operationQueryIDs,
		spanAttrEntity:    qmo.entity,
		metricLabelStatus: status,
	}
}

// recordSuccess records the duration and the number of returned ids.
func (qmo *queryMetricsObserver) recordSuccess(idCount int, duration time.Duration) {
	collector := qmo.s.metricsCollector
	if collector == nil {
		return
	}

	labels := qmo.labels(statusSuccess)

	if contextual, ok := collector.(runfilter.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(qmo.ctx, metricQueryDuration, duration, labels)
		contextual.RecordValueContext(qmo.ctx, metricIDsQueried, float64(idCount), labels)

		return
	}

	collector.RecordDuration(metricQueryDuration, duration, labels)
	collector.RecordValue(metricIDsQueried, float64(idCount), labels)
}

// recordError records the duration and increments the error counter.
func (qmo *queryMetricsObserver) recordError(errorType string, duration time.Duration) {
	collector := qmo.s.metricsCollector
	if collector == nil {
		return
	}

	labels := qmo.labels(statusError)
	errorLabels := qmo.labels(statusError)
	errorLabels[spanAttrErrorType] = errorType

	if contextual, ok := collector.(runfilter.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(qmo.ctx, metricQueryDuration, duration, labels)
		contextual.IncrementCounterContext(qmo.ctx, metricDatabaseErrors, errorLabels)

		return
	}

	collector.RecordDuration(metricQueryDuration, duration, labels)
	collector.IncrementCounter(metricDatabaseErrors, errorLabels)
}

// === Tracing Observer Pattern ===

// queryTracingObserver encapsulates tracing span lifecycle management for QueryIDs.
type queryTracingObserver struct {
	s    *Store
	span runfilter.SpanContext
}

func (s *Store) startQueryTracing(ctx context.Context, entity string) (*queryTracingObserver, context.Context) {
	observer := &queryTracingObserver{s: s}

	if s.tracingCollector == nil {
		return observer, ctx
	}

	newCtx, span := s.tracingCollector.StartSpan(ctx, spanNameQueryIDs, map[string]string{
		spanAttrOperation: operationQueryIDs,
		spanAttrEntity:    entity,
	})
	observer.span = span

	return observer, newCtx
}

// finishSuccess completes the span with the number of returned ids.
func (qto *queryTracingObserver) finishSuccess(idCount int, duration time.Duration) {
	if qto.span == nil {
		return
	}

	qto.span.SetStatus(statusSuccess)
	qto.span.AddAttribute(spanAttrDurationMS, formatDuration(duration))

	qto.s.tracingCollector.FinishSpan(qto.span, statusSuccess, map[string]string{
		spanAttrIDCount: strconv.Itoa(idCount),
	})
}

// finishError completes the span with error details.
func (qto *queryTracingObserver) finishError(errorType string, duration time.Duration) {
	if qto.span == nil {
		return
	}

	qto.span.SetStatus(statusError)
	qto.span.AddAttribute(spanAttrErrorType, errorType)

	if duration > 0 {
		qto.span.AddAttribute(spanAttrDurationMS, formatDuration(duration))
	}

	qto.s.tracingCollector.FinishSpan(qto.span, statusError, map[string]string{spanAttrErrorType: errorType})
}

func formatDuration(duration time.Duration) string {
	return fmt.Sprintf("%.2f", float64(duration.Nanoseconds())/1e6)
}
