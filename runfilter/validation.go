package runfilter

import (
	"fmt"
	"time"
)

// leafState is what the validation rules see of a leaf payload: which operators were supplied
// and, for range fields, the bounds.
type leafState struct {
	spec     FieldSpec
	supplied OperatorSet
	before   *time.Time
	after    *time.Time
}

type validationRule func(state leafState) error

// leafRules run in this order, the first violation is reported.
var leafRules = []validationRule{
	checkSupportedOperators,
	checkAtLeastOneOperator,
	checkExclusive(PairAllIsNull),
	checkExclusive(PairAnyIsNull),
	checkExclusive(PairAnyNotAny),
	checkRangeOrdering,
}

func validateLeaf(state leafState) error {
	for _, rule := range leafRules {
		if err := rule(state); err != nil {
			return err
		}
	}

	return nil
}

// checkSupportedOperators rejects operators outside the field's capability set.
func checkSupportedOperators(state leafState) error {
	if unsupported := state.supplied.Without(state.spec.Operators); !unsupported.IsEmpty() {
		return fieldError(state.spec.Name, fmt.Errorf("%w: %s", ErrUnsupportedOperator, unsupported))
	}

	return nil
}

func checkAtLeastOneOperator(state leafState) error {
	if state.supplied.IsEmpty() {
		return fieldError(state.spec.Name, ErrMissingOperator)
	}

	return nil
}

// checkExclusive triggers on presence, the supplied values do not matter.
func checkExclusive(pair OperatorPair) validationRule {
	return func(state leafState) error {
		if state.supplied.Has(pair.First) && state.supplied.Has(pair.Second) {
			return &ConflictError{Field: state.spec.Name, Pair: pair}
		}

		return nil
	}
}

// checkRangeOrdering allows before_ == after_.
func checkRangeOrdering(state leafState) error {
	if state.before != nil && state.after != nil && state.before.Before(*state.after) {
		return fieldError(state.spec.Name, ErrInvalidRange)
	}

	return nil
}
