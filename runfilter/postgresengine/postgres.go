package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter"
	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter/postgresengine/internal/adapters"
)

const (
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgIterateRowsFailed      = "failed to iterate database rows"
	logMsgQueryCompleted         = "query completed"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "runfilter operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrEntity                = "entity"
	logAttrIDCount               = "id_count"
	logAttrDurationMS            = "duration_ms"
	logActionQueryIDs            = "query_ids"
)

// Store queries the ids of flows, flow runs and task runs matching a run filter.
type Store struct {
	db               adapters.DBAdapter
	tablePrefix      string
	logger           runfilter.Logger
	contextualLogger runfilter.ContextualLogger
	metricsCollector runfilter.MetricsCollector
	tracingCollector runfilter.TracingCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options)
}

// NewStoreFromPGXPoolWithReplica creates a new Store that sends its queries to a read replica.
func NewStoreFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil || replica == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options)
}

func newStore(db adapters.DBAdapter, options []Option) (Store, error) {
	s := Store{db: db}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// BuildSelectQuery renders the SQL that QueryIDs runs for the filter and page.
func (s Store) BuildSelectQuery(filter runfilter.EntityFilter, page runfilter.Pagination) (string, error) {
	return RenderSelectIDs(filter, page, s.tablePrefix)
}

// QueryIDs returns the ids of all records matching the filter, ordered by id and restricted to the page.
func (s Store) QueryIDs(
	ctx context.Context,
	filter runfilter.EntityFilter,
	page runfilter.Pagination,
) ([]uuid.UUID, error) {

	entity := string(filter.Entity())
	tracer, ctx := s.startQueryTracing(ctx, entity)
	metrics := s.startQueryMetrics(ctx, entity)

	sqlQuery, buildQueryErr := s.BuildSelectQuery(filter, page)
	if buildQueryErr != nil {
		s.logError(ctx, logMsgBuildSelectQueryFailed, buildQueryErr, logAttrEntity, entity)
		metrics.recordError(errorTypeBuildQuery, 0)
		tracer.finishError(errorTypeBuildQuery, 0)

		return nil, buildQueryErr
	}

	rows, duration, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		metrics.recordError(errorTypeDatabaseQuery, duration)
		tracer.finishError(errorTypeDatabaseQuery, duration)

		return nil, queryErr
	}
	defer s.closeRows(ctx, rows)

	ids, scanErr := s.processQueryResults(ctx, rows)
	if scanErr != nil {
		metrics.recordError(errorTypeRowScan, duration)
		tracer.finishError(errorTypeRowScan, duration)

		return nil, scanErr
	}

	s.logOperation(
		ctx,
		logMsgQueryCompleted,
		logAttrEntity, entity,
		logAttrIDCount, len(ids),
		logAttrDurationMS, s.toMilliseconds(duration))

	metrics.recordSuccess(len(ids), duration)
	tracer.finishSuccess(len(ids), duration)

	return ids, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (s Store) executeQuery(ctx context.Context, sqlQuery string) (
	adapters.DBRows,
	time.Duration,
	error,
) {

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, logActionQueryIDs, duration)

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)

		return nil, duration, errors.Join(ErrQueryingIDsFailed, queryErr)
	}

	return rows, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (s Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

// processQueryResults scans the id column of every row.
func (s Store) processQueryResults(ctx context.Context, rows adapters.DBRows) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)

	var rawID string
	for rows.Next() {
		if rowScanErr := rows.Scan(&rawID); rowScanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, rowScanErr)

			return nil, errors.Join(ErrScanningDBRowFailed, rowScanErr)
		}

		id, parseErr := uuid.Parse(rawID)
		if parseErr != nil {
			s.logError(ctx, logMsgScanRowFailed, parseErr)

			return nil, errors.Join(ErrScanningDBRowFailed, parseErr)
		}

		ids = append(ids, id)
	}

	if iterateErr := rows.Err(); iterateErr != nil {
		s.logError(ctx, logMsgIterateRowsFailed, iterateErr)

		return nil, errors.Join(ErrScanningDBRowFailed, iterateErr)
	}

	return ids, nil
}
