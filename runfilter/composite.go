package runfilter

import (
	"slices"
)

// EntityFilter is a validated composite filter for one entity kind.
type EntityFilter interface {
	Entity() Entity
	Predicate() Predicate
}

// leafCollector builds the leaves of a composite filter in declared field order
// and keeps the first construction error.
type leafCollector struct {
	entity Entity
	leaves []LeafFilter
	err    error
}

func newLeafCollector(entity Entity) *leafCollector {
	return &leafCollector{entity: entity, leaves: make([]LeafFilter, 0)}
}

func (c *leafCollector) add(leaf LeafFilter, err error) {
	if c.err != nil {
		return
	}

	if err != nil {
		c.err = entityError(c.entity, err)
		return
	}

	c.leaves = append(c.leaves, leaf)
}

func (c *leafCollector) result() ([]LeafFilter, error) {
	if c.err != nil {
		return nil, c.err
	}

	return slices.Clip(c.leaves), nil
}

// conjunction ANDs the leaf predicates. No leaves yields And(), which selects everything.
func conjunction(leaves []LeafFilter) Predicate {
	children := make([]Predicate, 0, len(leaves))
	for _, leaf := range leaves {
		children = append(children, leaf.Predicate())
	}

	return And(children...)
}
