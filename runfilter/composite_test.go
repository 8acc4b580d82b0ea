package runfilter_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter"
)

func Test_CompositeFilters_WithoutLeaves_CompileToAlwaysTrue(t *testing.T) {
	flowFilter, err := runfilter.BuildFlowFilter(runfilter.FlowFilterInput{})
	require.NoError(t, err)

	flowRunFilter, err := runfilter.BuildFlowRunFilter(runfilter.FlowRunFilterInput{})
	require.NoError(t, err)

	taskRunFilter, err := runfilter.BuildTaskRunFilter(runfilter.TaskRunFilterInput{})
	require.NoError(t, err)

	for _, filter := range []runfilter.EntityFilter{flowFilter, flowRunFilter, taskRunFilter} {
		predicate := filter.Predicate()

		assert.Equal(t, runfilter.And(), predicate, filter.Entity())
		assert.True(t, predicate.IsAlwaysTrue(), filter.Entity())
		assert.Equal(t, "AND()", predicate.String(), filter.Entity())
	}
}

func Test_FlowFilter_IDAndTags(t *testing.T) {
	idA := uuid.New()
	idB := uuid.New()

	filter, err := runfilter.BuildFlowFilter(runfilter.FlowFilterInput{
		Tags: &runfilter.StringOperators{All: []string{"x"}},
		ID:   &runfilter.IDOperators{Any: []uuid.UUID{idA, idB}},
	})
	require.NoError(t, err)

	expected := runfilter.And(
		runfilter.In(runfilter.FieldID, []any{idA, idB}),
		runfilter.Superset(runfilter.FieldTags, []any{"x"}),
	)

	assert.Equal(t, runfilter.EntityFlow, filter.Entity())
	assert.Equal(t, expected, filter.Predicate())
	assert.Len(t, filter.Leaves(), 2)
}

func Test_FlowRunFilter_AllFieldsInDeclaredOrder(t *testing.T) {
	id := uuid.New()
	deploymentID := uuid.New()
	after := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	filter, err := runfilter.BuildFlowRunFilter(runfilter.FlowRunFilterInput{
		ParentTaskRunID:        &runfilter.IDOperators{IsNull: boolPtr(true)},
		NextScheduledStartTime: &runfilter.TimeOperators{After: timePtr(after)},
		ExpectedStartTime:      &runfilter.TimeOperators{Before: timePtr(before)},
		StartTime:              &runfilter.TimeOperators{Before: timePtr(before), After: timePtr(after)},
		FlowVersion:            &runfilter.StringOperators{Any: []string{"1.0"}},
		StateType:              &runfilter.StateTypeOperators{Any: []runfilter.StateType{runfilter.StateTypeCompleted}},
		DeploymentID:           &runfilter.IDOperators{Any: []uuid.UUID{deploymentID}},
		Tags:                   &runfilter.StringOperators{IsNull: boolPtr(false)},
		ID:                     &runfilter.IDOperators{NotAny: []uuid.UUID{id}},
	})
	require.NoError(t, err)

	expected := runfilter.And(
		runfilter.NotIn(runfilter.FieldID, []any{id}),
		runfilter.IsNotEmpty(runfilter.FieldTags),
		runfilter.In(runfilter.FieldDeploymentID, []any{deploymentID}),
		runfilter.In(runfilter.FieldStateType, []any{runfilter.StateTypeCompleted}),
		runfilter.In(runfilter.FieldFlowVersion, []any{"1.0"}),
		runfilter.Between(runfilter.FieldStartTime, after, before),
		runfilter.LE(runfilter.FieldExpectedStartTime, before),
		runfilter.GE(runfilter.FieldNextScheduledStartTime, after),
		runfilter.IsEmpty(runfilter.FieldParentTaskRunID),
	)

	assert.Equal(t, expected, filter.Predicate())

	expectedFields := make([]runfilter.Field, 0)
	for _, spec := range runfilter.FieldSpecs(runfilter.EntityFlowRun) {
		expectedFields = append(expectedFields, spec.Name)
	}
	assert.Equal(t, expectedFields, filter.Predicate().Fields())
}

func Test_TaskRunFilter_StateTypeAndStartTime(t *testing.T) {
	after := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	filter, err := runfilter.BuildTaskRunFilter(runfilter.TaskRunFilterInput{
		StateType: &runfilter.StateTypeOperators{Any: []runfilter.StateType{runfilter.StateTypeFailed}},
		StartTime: &runfilter.TimeOperators{After: timePtr(after)},
	})
	require.NoError(t, err)

	assert.Equal(t, runfilter.EntityTaskRun, filter.Entity())
	assert.Equal(t, "AND(IN(state_type,[FAILED]),GE(start_time,2025-06-01T12:00:00Z))", filter.Predicate().String())
}

func Test_CompositeFilters_ReportEntityAndField(t *testing.T) {
	_, err := runfilter.BuildFlowRunFilter(runfilter.FlowRunFilterInput{
		ID:   &runfilter.IDOperators{Any: []uuid.UUID{uuid.New()}},
		Tags: &runfilter.StringOperators{},
	})

	assert.ErrorIs(t, err, runfilter.ErrMissingOperator)
	assert.ErrorContains(t, err, "flow_run filter")
	assert.ErrorContains(t, err, `"tags"`)

	_, err = runfilter.BuildTaskRunFilter(runfilter.TaskRunFilterInput{
		StartTime: &runfilter.TimeOperators{
			Before: timePtr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
			After:  timePtr(time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC)),
		},
	})

	assert.ErrorIs(t, err, runfilter.ErrInvalidRange)
	assert.ErrorContains(t, err, "task_run filter")
	assert.ErrorContains(t, err, `"start_time"`)
}

func Test_CompositeFilters_FirstInvalidLeafWins(t *testing.T) {
	_, err := runfilter.BuildFlowFilter(runfilter.FlowFilterInput{
		ID:   &runfilter.IDOperators{},
		Tags: &runfilter.StringOperators{All: []string{"x"}, IsNull: boolPtr(true)},
	})

	assert.ErrorIs(t, err, runfilter.ErrMissingOperator)
	assert.NotErrorIs(t, err, runfilter.ErrConflictingOperators)
}

func Test_CompositeFilters_CompileIdempotently(t *testing.T) {
	filter, err := runfilter.BuildFlowRunFilter(runfilter.FlowRunFilterInput{
		ID:        &runfilter.IDOperators{Any: []uuid.UUID{uuid.New(), uuid.New()}},
		Tags:      &runfilter.StringOperators{All: []string{"a", "b"}},
		StartTime: &runfilter.TimeOperators{After: timePtr(time.Now())},
	})
	require.NoError(t, err)

	assert.Equal(t, filter.Predicate(), filter.Predicate())
	assert.Equal(t, filter.Predicate().String(), filter.Predicate().String())
}

func Test_CompositeFilters_ConcurrentBuildAndCompile(t *testing.T) {
	const workers = 16

	id := uuid.New()
	results := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			filter, err := runfilter.BuildFlowFilter(runfilter.FlowFilterInput{
				ID:   &runfilter.IDOperators{Any: []uuid.UUID{id}},
				Name: &runfilter.StringOperators{Any: []string{"etl"}},
			})
			if err != nil {
				return
			}

			results[i] = filter.Predicate().String()
		}(i)
	}
	wg.Wait()

	expected := "AND(IN(id,[" + id.String() + "]),IN(name,[etl]))"
	for _, result := range results {
		assert.Equal(t, expected, result)
	}
}
