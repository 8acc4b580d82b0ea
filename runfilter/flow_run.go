package runfilter

import (
	"slices"
)

// FlowRunFilterInput holds the raw operator payloads for a flow run query. Nil fields are not filtered.
type FlowRunFilterInput struct {
	ID                     *IDOperators        `json:"id"`
	Tags                   *StringOperators    `json:"tags"`
	DeploymentID           *IDOperators        `json:"deployment_id"`
	StateType              *StateTypeOperators `json:"state_type"`
	FlowVersion            *StringOperators    `json:"flow_version"`
	StartTime              *TimeOperators      `json:"start_time"`
	ExpectedStartTime      *TimeOperators      `json:"expected_start_time"`
	NextScheduledStartTime *TimeOperators      `json:"next_scheduled_start_time"`
	ParentTaskRunID        *IDOperators        `json:"parent_task_run_id"`
}

// FlowRunFilter selects flow runs matching all of its leaf filters.
type FlowRunFilter struct {
	leaves []LeafFilter
}

// BuildFlowRunFilter validates the input and builds a FlowRunFilter.
func BuildFlowRunFilter(input FlowRunFilterInput) (FlowRunFilter, error) {
	c := newLeafCollector(EntityFlowRun)

	if input.ID != nil {
		c.add(NewIDFilter(FlowRunIDField, *input.ID))
	}

	if input.Tags != nil {
		c.add(NewStringFilter(FlowRunTagsField, *input.Tags))
	}

	if input.DeploymentID != nil {
		c.add(NewIDFilter(FlowRunDeploymentIDField, *input.DeploymentID))
	}

	if input.StateType != nil {
		c.add(NewStateTypeFilter(FlowRunStateTypeField, *input.StateType))
	}

	if input.FlowVersion != nil {
		c.add(NewStringFilter(FlowRunFlowVersionField, *input.FlowVersion))
	}

	if input.StartTime != nil {
		c.add(NewTimeFilter(FlowRunStartTimeField, *input.StartTime))
	}

	if input.ExpectedStartTime != nil {
		c.add(NewTimeFilter(FlowRunExpectedStartTimeField, *input.ExpectedStartTime))
	}

	if input.NextScheduledStartTime != nil {
		c.add(NewTimeFilter(FlowRunNextScheduledStartTimeField, *input.NextScheduledStartTime))
	}

	if input.ParentTaskRunID != nil {
		c.add(NewIDFilter(FlowRunParentTaskRunIDField, *input.ParentTaskRunID))
	}

	leaves, err := c.result()
	if err != nil {
		return FlowRunFilter{}, err
	}

	return FlowRunFilter{leaves: leaves}, nil
}

func (f FlowRunFilter) Entity() Entity {
	return EntityFlowRun
}

// Leaves returns the populated leaf filters in declared field order.
func (f FlowRunFilter) Leaves() []LeafFilter {
	return slices.Clone(f.leaves)
}

func (f FlowRunFilter) Predicate() Predicate {
	return conjunction(f.leaves)
}
