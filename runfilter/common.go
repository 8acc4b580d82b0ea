package runfilter

import (
	"errors"
	"fmt"
)

var ErrMissingOperator = errors.New("filter must have at least one operator with arguments")
var ErrConflictingOperators = errors.New("filter operators must not be supplied together")
var ErrInvalidRange = errors.New("filter before_ must not be earlier than after_")
var ErrUnsupportedOperator = errors.New("filter operator is not supported by this field")
var ErrInvalidStateType = errors.New("unknown state type")
var ErrOutOfRange = errors.New("pagination bound out of range")
var ErrInvalidPaginationOption = errors.New("invalid pagination option")
var ErrDecodingFilterFailed = errors.New("decoding filter payload failed")
var ErrUnknownEntity = errors.New("unknown entity")

// ConflictError reports two mutually exclusive operators that were both supplied for a field.
// It matches ErrConflictingOperators with errors.Is.
type ConflictError struct {
	Field Field
	Pair  OperatorPair
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s and %s on field %q", ErrConflictingOperators, e.Pair.First, e.Pair.Second, e.Field)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflictingOperators
}

// fieldError attaches the offending field name to a validation error.
func fieldError(field Field, err error) error {
	return fmt.Errorf("%w: field %q", err, field)
}

// entityError attaches the entity whose composite filter failed to build.
func entityError(entity Entity, err error) error {
	return fmt.Errorf("%s filter: %w", entity, err)
}
