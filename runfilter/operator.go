package runfilter

import (
	"strings"
)

// Operator names one operator attribute of a leaf filter.
type Operator uint8

const (
	OperatorAny Operator = 1 << iota
	OperatorNotAny
	OperatorAll
	OperatorIsNull
	OperatorBefore
	OperatorAfter
)

// allOperators is the declared order used for rendering and iteration.
var allOperators = []Operator{OperatorAny, OperatorNotAny, OperatorAll, OperatorIsNull, OperatorBefore, OperatorAfter}

// String returns the payload key of the operator, e.g. "any_".
func (o Operator) String() string {
	switch o {
	case OperatorAny:
		return "any_"
	case OperatorNotAny:
		return "not_any_"
	case OperatorAll:
		return "all_"
	case OperatorIsNull:
		return "is_null_"
	case OperatorBefore:
		return "before_"
	case OperatorAfter:
		return "after_"
	default:
		return "unknown"
	}
}

// OperatorSet is a set of operators, used both for the operators a field supports
// and for the operators a payload actually supplied.
type OperatorSet uint8

// Operators builds an OperatorSet.
func Operators(operators ...Operator) OperatorSet {
	var set OperatorSet
	for _, o := range operators {
		set |= OperatorSet(o)
	}

	return set
}

// Has reports whether o is in the set.
func (s OperatorSet) Has(o Operator) bool {
	return s&OperatorSet(o) != 0
}

// IsEmpty reports whether no operator is in the set.
func (s OperatorSet) IsEmpty() bool {
	return s == 0
}

// Without returns the operators of s that are not in other.
func (s OperatorSet) Without(other OperatorSet) OperatorSet {
	return s &^ other
}

// List returns the operators in declared order.
func (s OperatorSet) List() []Operator {
	list := make([]Operator, 0, len(allOperators))
	for _, o := range allOperators {
		if s.Has(o) {
			list = append(list, o)
		}
	}

	return list
}

func (s OperatorSet) String() string {
	names := make([]string, 0, len(allOperators))
	for _, o := range s.List() {
		names = append(names, o.String())
	}

	return "{" + strings.Join(names, ",") + "}"
}

// OperatorPair is an ordered pair of mutually exclusive operators.
type OperatorPair struct {
	First  Operator
	Second Operator
}

var (
	PairAllIsNull = OperatorPair{First: OperatorAll, Second: OperatorIsNull}
	PairAnyIsNull = OperatorPair{First: OperatorAny, Second: OperatorIsNull}
	PairAnyNotAny = OperatorPair{First: OperatorAny, Second: OperatorNotAny}
)

// exclusivePairs is checked in this order, the first pair present wins.
var exclusivePairs = []OperatorPair{PairAllIsNull, PairAnyIsNull, PairAnyNotAny}
