package runfilter

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// PredicateKind tags the node type of a Predicate.
type PredicateKind uint8

const (
	KindAnd PredicateKind = iota
	KindIn
	KindNotIn
	KindEquals
	KindNotEquals
	KindLE
	KindGE
	KindBetween
	KindSuperset
	KindIsEmpty
	KindIsNotEmpty
)

func (k PredicateKind) String() string {
	switch k {
	case KindAnd:
		return "AND"
	case KindIn:
		return "IN"
	case KindNotIn:
		return "NOT_IN"
	case KindEquals:
		return "EQUALS"
	case KindNotEquals:
		return "NOT_EQUALS"
	case KindLE:
		return "LE"
	case KindGE:
		return "GE"
	case KindBetween:
		return "BETWEEN"
	case KindSuperset:
		return "SUPERSET"
	case KindIsEmpty:
		return "IS_EMPTY"
	case KindIsNotEmpty:
		return "IS_NOT_EMPTY"
	default:
		return "UNKNOWN"
	}
}

// Predicate is a backend-neutral boolean expression over record fields.
//
// Which attributes are meaningful depends on Kind:
//   - KindIn, KindNotIn, KindSuperset: Field, Values
//   - KindEquals, KindNotEquals, KindLE, KindGE: Field, Low (the compared value)
//   - KindBetween: Field, Low, High (both inclusive)
//   - KindIsEmpty, KindIsNotEmpty: Field
//   - KindAnd: Children; no children means "always true"
//
// Predicates are built with the constructor functions and never mutated afterward.
type Predicate struct {
	Kind     PredicateKind
	Field    Field
	Values   []any
	Low      any
	High     any
	Children []Predicate
}

func In(field Field, values []any) Predicate {
	return Predicate{Kind: KindIn, Field: field, Values: slices.Clone(values)}
}

func NotIn(field Field, values []any) Predicate {
	return Predicate{Kind: KindNotIn, Field: field, Values: slices.Clone(values)}
}

func Equals(field Field, value any) Predicate {
	return Predicate{Kind: KindEquals, Field: field, Low: value}
}

func NotEquals(field Field, value any) Predicate {
	return Predicate{Kind: KindNotEquals, Field: field, Low: value}
}

func LE(field Field, value any) Predicate {
	return Predicate{Kind: KindLE, Field: field, Low: value}
}

func GE(field Field, value any) Predicate {
	return Predicate{Kind: KindGE, Field: field, Low: value}
}

func Between(field Field, low, high any) Predicate {
	return Predicate{Kind: KindBetween, Field: field, Low: low, High: high}
}

func Superset(field Field, values []any) Predicate {
	return Predicate{Kind: KindSuperset, Field: field, Values: slices.Clone(values)}
}

func IsEmpty(field Field) Predicate {
	return Predicate{Kind: KindIsEmpty, Field: field}
}

func IsNotEmpty(field Field) Predicate {
	return Predicate{Kind: KindIsNotEmpty, Field: field}
}

// And combines children conjunctively. And() is the always-true predicate.
func And(children ...Predicate) Predicate {
	if len(children) == 0 {
		return Predicate{Kind: KindAnd}
	}

	return Predicate{Kind: KindAnd, Children: slices.Clone(children)}
}

// IsAlwaysTrue reports whether p is the empty conjunction.
func (p Predicate) IsAlwaysTrue() bool {
	return p.Kind == KindAnd && len(p.Children) == 0
}

// Fields returns the fields referenced by p in first-seen order, without duplicates.
func (p Predicate) Fields() []Field {
	fields := make([]Field, 0)
	p.collectFields(&fields)

	return fields
}

func (p Predicate) collectFields(fields *[]Field) {
	if p.Kind == KindAnd {
		for _, child := range p.Children {
			child.collectFields(fields)
		}

		return
	}

	if !slices.Contains(*fields, p.Field) {
		*fields = append(*fields, p.Field)
	}
}

// String renders the canonical text form, e.g. AND(IN(id,[a,b]),SUPERSET(tags,[x])).
func (p Predicate) String() string {
	var sb strings.Builder
	p.writeTo(&sb)

	return sb.String()
}

func (p Predicate) writeTo(sb *strings.Builder) {
	sb.WriteString(p.Kind.String())
	sb.WriteByte('(')

	switch p.Kind {
	case KindAnd:
		for i, child := range p.Children {
			if i > 0 {
				sb.WriteByte(',')
			}
			child.writeTo(sb)
		}

	case KindIn, KindNotIn, KindSuperset:
		sb.WriteString(string(p.Field))
		sb.WriteString(",[")
		for i, v := range p.Values {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(formatValue(v))
		}
		sb.WriteByte(']')

	case KindEquals, KindNotEquals, KindLE, KindGE:
		sb.WriteString(string(p.Field))
		sb.WriteByte(',')
		sb.WriteString(formatValue(p.Low))

	case KindBetween:
		sb.WriteString(string(p.Field))
		sb.WriteByte(',')
		sb.WriteString(formatValue(p.Low))
		sb.WriteByte(',')
		sb.WriteString(formatValue(p.High))

	case KindIsEmpty, KindIsNotEmpty:
		sb.WriteString(string(p.Field))
	}

	sb.WriteByte(')')
}

func formatValue(v any) string {
	switch value := v.(type) {
	case time.Time:
		return value.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}
