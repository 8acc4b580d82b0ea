package runfilter

import (
	"slices"
)

// FlowFilterInput holds the raw operator payloads for a flow query. Nil fields are not filtered.
type FlowFilterInput struct {
	ID   *IDOperators     `json:"id"`
	Name *StringOperators `json:"name"`
	Tags *StringOperators `json:"tags"`
}

// FlowFilter selects flows matching all of its leaf filters.
type FlowFilter struct {
	leaves []LeafFilter
}

// BuildFlowFilter validates the input and builds a FlowFilter.
func BuildFlowFilter(input FlowFilterInput) (FlowFilter, error) {
	c := newLeafCollector(EntityFlow)

	if input.ID != nil {
		c.add(NewIDFilter(FlowIDField, *input.ID))
	}

	if input.Name != nil {
		c.add(NewStringFilter(FlowNameField, *input.Name))
	}

	if input.Tags != nil {
		c.add(NewStringFilter(FlowTagsField, *input.Tags))
	}

	leaves, err := c.result()
	if err != nil {
		return FlowFilter{}, err
	}

	return FlowFilter{leaves: leaves}, nil
}

func (f FlowFilter) Entity() Entity {
	return EntityFlow
}

// Leaves returns the populated leaf filters in declared field order.
func (f FlowFilter) Leaves() []LeafFilter {
	return slices.Clone(f.leaves)
}

func (f FlowFilter) Predicate() Predicate {
	return conjunction(f.leaves)
}
