package postgresengine

import (
	"errors"

	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter"
)

// ErrUnknownEntity is returned when a filter targets an entity without a table binding.
var ErrUnknownEntity = runfilter.ErrUnknownEntity

// ErrUnknownField is returned when a predicate references a field without a column binding.
var ErrUnknownField = errors.New("field has no column binding")

// ErrUnsupportedPredicate is returned when a predicate cannot be rendered for the kind of its column.
var ErrUnsupportedPredicate = errors.New("predicate is not supported for column")

// ErrBuildingQueryFailed is returned when goqu fails to build the select statement.
var ErrBuildingQueryFailed = errors.New("building query failed")

// ErrQueryingIDsFailed is returned when the database query fails.
var ErrQueryingIDsFailed = errors.New("querying ids failed")

// ErrScanningDBRowFailed is returned when a result row cannot be scanned into an id.
var ErrScanningDBRowFailed = errors.New("scanning db row failed")

// ErrNilDatabaseConnection is returned when a Store is created with a nil database connection.
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")

// ErrEmptyTablePrefix is returned when WithTablePrefix is called with an empty prefix.
var ErrEmptyTablePrefix = errors.New("table prefix must not be empty")
