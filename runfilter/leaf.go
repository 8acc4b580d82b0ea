package runfilter

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

/***** Operator payloads *****/

// A payload attribute is absent when it is nil. An empty, non-nil set is present:
// any_=[] matches nothing and not_any_=[] excludes nothing.

// IDOperators is the payload for identifier fields (ids and nullable foreign keys).
type IDOperators struct {
	Any    []uuid.UUID `json:"any_"`
	NotAny []uuid.UUID `json:"not_any_"`
	IsNull *bool       `json:"is_null_"`
}

func (o IDOperators) supplied() OperatorSet {
	return presentIf(o.Any != nil, OperatorAny) |
		presentIf(o.NotAny != nil, OperatorNotAny) |
		presentIf(o.IsNull != nil, OperatorIsNull)
}

// StringOperators is the payload for name and tag fields.
type StringOperators struct {
	Any    []string `json:"any_"`
	NotAny []string `json:"not_any_"`
	All    []string `json:"all_"`
	IsNull *bool    `json:"is_null_"`
}

func (o StringOperators) supplied() OperatorSet {
	return presentIf(o.Any != nil, OperatorAny) |
		presentIf(o.NotAny != nil, OperatorNotAny) |
		presentIf(o.All != nil, OperatorAll) |
		presentIf(o.IsNull != nil, OperatorIsNull)
}

// StateTypeOperators is the payload for state type fields.
type StateTypeOperators struct {
	Any    []StateType `json:"any_"`
	NotAny []StateType `json:"not_any_"`
}

func (o StateTypeOperators) supplied() OperatorSet {
	return presentIf(o.Any != nil, OperatorAny) |
		presentIf(o.NotAny != nil, OperatorNotAny)
}

// TimeOperators is the payload for timestamp fields. Both bounds are inclusive.
type TimeOperators struct {
	Before *time.Time `json:"before_"`
	After  *time.Time `json:"after_"`
}

func (o TimeOperators) supplied() OperatorSet {
	return presentIf(o.Before != nil, OperatorBefore) |
		presentIf(o.After != nil, OperatorAfter)
}

func presentIf(present bool, o Operator) OperatorSet {
	if present {
		return OperatorSet(o)
	}

	return 0
}

/***** LeafFilter *****/

// leafOperation is the operator family a leaf compiles to, chosen once at construction.
type leafOperation uint8

const (
	compileIn leafOperation = iota + 1
	compileNotIn
	compileSuperset
	compileIsNull
	compileRange
)

// LeafFilter is a validated filter on a single field.
// It can only be built with the New...Filter constructors.
type LeafFilter struct {
	field     Field
	operation leafOperation
	values    []any
	isNull    bool
	before    time.Time
	after     time.Time
	hasBefore bool
	hasAfter  bool
}

// Field returns the filtered field.
func (l LeafFilter) Field() Field {
	return l.field
}

// Predicate compiles the leaf into its predicate fragment.
func (l LeafFilter) Predicate() Predicate {
	switch l.operation {
	case compileIn:
		return In(l.field, l.values)

	case compileNotIn:
		return NotIn(l.field, l.values)

	case compileSuperset:
		return Superset(l.field, l.values)

	case compileIsNull:
		if l.isNull {
			return IsEmpty(l.field)
		}

		return IsNotEmpty(l.field)

	case compileRange:
		switch {
		case l.hasBefore && l.hasAfter:
			return Between(l.field, l.after, l.before)
		case l.hasBefore:
			return LE(l.field, l.before)
		default:
			return GE(l.field, l.after)
		}
	}

	panic(fmt.Sprintf("runfilter: leaf filter on field %q was not built by a constructor", l.field))
}

// selectOperation picks the operator family by a fixed precedence.
// The validation rules make the candidates mutually exclusive, so at most one branch applies.
func selectOperation(supplied OperatorSet) leafOperation {
	switch {
	case supplied.Has(OperatorAll):
		return compileSuperset
	case supplied.Has(OperatorAny):
		return compileIn
	case supplied.Has(OperatorNotAny):
		return compileNotIn
	case supplied.Has(OperatorIsNull):
		return compileIsNull
	default:
		return compileRange
	}
}

// NewIDFilter builds a leaf filter for an identifier or nullable foreign key field.
func NewIDFilter(spec FieldSpec, ops IDOperators) (LeafFilter, error) {
	if spec.Kind != LeafKindID && spec.Kind != LeafKindNullableID {
		return LeafFilter{}, kindMismatchError(spec, "id")
	}

	supplied := ops.supplied()
	if err := validateLeaf(leafState{spec: spec, supplied: supplied}); err != nil {
		return LeafFilter{}, err
	}

	leaf := LeafFilter{field: spec.Name, operation: selectOperation(supplied)}

	switch leaf.operation {
	case compileIn:
		leaf.values = sanitizeValues(ops.Any)
	case compileNotIn:
		leaf.values = sanitizeValues(ops.NotAny)
	case compileIsNull:
		leaf.isNull = *ops.IsNull
	}

	return leaf, nil
}

// NewStringFilter builds a leaf filter for a name or tag field.
func NewStringFilter(spec FieldSpec, ops StringOperators) (LeafFilter, error) {
	if spec.Kind != LeafKindName && spec.Kind != LeafKindTags {
		return LeafFilter{}, kindMismatchError(spec, "string")
	}

	supplied := ops.supplied()
	if err := validateLeaf(leafState{spec: spec, supplied: supplied}); err != nil {
		return LeafFilter{}, err
	}

	leaf := LeafFilter{field: spec.Name, operation: selectOperation(supplied)}

	switch leaf.operation {
	case compileSuperset:
		leaf.values = sanitizeValues(ops.All)
	case compileIn:
		leaf.values = sanitizeValues(ops.Any)
	case compileNotIn:
		leaf.values = sanitizeValues(ops.NotAny)
	case compileIsNull:
		leaf.isNull = *ops.IsNull
	}

	return leaf, nil
}

// NewStateTypeFilter builds a leaf filter for a state type field.
func NewStateTypeFilter(spec FieldSpec, ops StateTypeOperators) (LeafFilter, error) {
	if spec.Kind != LeafKindStateType {
		return LeafFilter{}, kindMismatchError(spec, "state type")
	}

	supplied := ops.supplied()
	if err := validateLeaf(leafState{spec: spec, supplied: supplied}); err != nil {
		return LeafFilter{}, err
	}

	for _, stateTypes := range [][]StateType{ops.Any, ops.NotAny} {
		for _, stateType := range stateTypes {
			if !stateType.IsValid() {
				return LeafFilter{}, fieldError(spec.Name, fmt.Errorf("%w: %q", ErrInvalidStateType, stateType))
			}
		}
	}

	leaf := LeafFilter{field: spec.Name, operation: selectOperation(supplied)}

	switch leaf.operation {
	case compileIn:
		leaf.values = sanitizeValues(ops.Any)
	case compileNotIn:
		leaf.values = sanitizeValues(ops.NotAny)
	}

	return leaf, nil
}

// NewTimeFilter builds a leaf filter for a timestamp field.
func NewTimeFilter(spec FieldSpec, ops TimeOperators) (LeafFilter, error) {
	if spec.Kind != LeafKindTimeRange {
		return LeafFilter{}, kindMismatchError(spec, "time")
	}

	supplied := ops.supplied()
	state := leafState{spec: spec, supplied: supplied, before: ops.Before, after: ops.After}
	if err := validateLeaf(state); err != nil {
		return LeafFilter{}, err
	}

	leaf := LeafFilter{field: spec.Name, operation: compileRange}

	if ops.Before != nil {
		leaf.before = *ops.Before
		leaf.hasBefore = true
	}

	if ops.After != nil {
		leaf.after = *ops.After
		leaf.hasAfter = true
	}

	return leaf, nil
}

func kindMismatchError(spec FieldSpec, payload string) error {
	return fieldError(spec.Name, fmt.Errorf("%w: %s payload for a %s field", ErrUnsupportedOperator, payload, spec.Kind))
}

// sanitizeValues removes duplicates, keeping the first occurrence. A non-nil empty input stays non-nil.
func sanitizeValues[T comparable](values []T) []any {
	sanitized := make([]any, 0, len(values))
	seen := make(map[T]struct{}, len(values))

	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		sanitized = append(sanitized, v)
	}

	return sanitized
}
