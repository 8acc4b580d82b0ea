package runfilter

import (
	"slices"
)

// TaskRunFilterInput holds the raw operator payloads for a task run query. Nil fields are not filtered.
type TaskRunFilterInput struct {
	ID        *IDOperators        `json:"id"`
	Tags      *StringOperators    `json:"tags"`
	StateType *StateTypeOperators `json:"state_type"`
	StartTime *TimeOperators      `json:"start_time"`
}

// TaskRunFilter selects task runs matching all of its leaf filters.
type TaskRunFilter struct {
	leaves []LeafFilter
}

// BuildTaskRunFilter validates the input and builds a TaskRunFilter.
func BuildTaskRunFilter(input TaskRunFilterInput) (TaskRunFilter, error) {
	c := newLeafCollector(EntityTaskRun)

	if input.ID != nil {
		c.add(NewIDFilter(TaskRunIDField, *input.ID))
	}

	if input.Tags != nil {
		c.add(NewStringFilter(TaskRunTagsField, *input.Tags))
	}

	if input.StateType != nil {
		c.add(NewStateTypeFilter(TaskRunStateTypeField, *input.StateType))
	}

	if input.StartTime != nil {
		c.add(NewTimeFilter(TaskRunStartTimeField, *input.StartTime))
	}

	leaves, err := c.result()
	if err != nil {
		return TaskRunFilter{}, err
	}

	return TaskRunFilter{leaves: leaves}, nil
}

func (f TaskRunFilter) Entity() Entity {
	return EntityTaskRun
}

// Leaves returns the populated leaf filters in declared field order.
func (f TaskRunFilter) Leaves() []LeafFilter {
	return slices.Clone(f.leaves)
}

func (f TaskRunFilter) Predicate() Predicate {
	return conjunction(f.leaves)
}
