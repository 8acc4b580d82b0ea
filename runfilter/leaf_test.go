package runfilter_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter"
)

func boolPtr(b bool) *bool {
	return &b
}

func timePtr(t time.Time) *time.Time {
	return &t
}

//nolint:funlen
func Test_LeafFilter_ConstructionErrors(t *testing.T) {
	someID := uuid.New()
	earlier := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	later := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		build       func() (runfilter.LeafFilter, error)
		expectedErr error
	}{
		{
			name: "id_filter_without_operators",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(runfilter.FlowIDField, runfilter.IDOperators{})
			},
			expectedErr: runfilter.ErrMissingOperator,
		},
		{
			name: "string_filter_without_operators",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStringFilter(runfilter.FlowNameField, runfilter.StringOperators{})
			},
			expectedErr: runfilter.ErrMissingOperator,
		},
		{
			name: "tags_filter_without_operators",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStringFilter(runfilter.TaskRunTagsField, runfilter.StringOperators{})
			},
			expectedErr: runfilter.ErrMissingOperator,
		},
		{
			name: "state_type_filter_without_operators",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStateTypeFilter(runfilter.FlowRunStateTypeField, runfilter.StateTypeOperators{})
			},
			expectedErr: runfilter.ErrMissingOperator,
		},
		{
			name: "time_filter_without_operators",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewTimeFilter(runfilter.FlowRunStartTimeField, runfilter.TimeOperators{})
			},
			expectedErr: runfilter.ErrMissingOperator,
		},
		{
			name: "tags_all_and_is_null_true",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStringFilter(
					runfilter.FlowTagsField,
					runfilter.StringOperators{All: []string{"x"}, IsNull: boolPtr(true)},
				)
			},
			expectedErr: runfilter.ErrConflictingOperators,
		},
		{
			name: "tags_all_and_is_null_false",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStringFilter(
					runfilter.FlowRunTagsField,
					runfilter.StringOperators{All: []string{"x"}, IsNull: boolPtr(false)},
				)
			},
			expectedErr: runfilter.ErrConflictingOperators,
		},
		{
			name: "deployment_id_any_and_is_null",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(
					runfilter.FlowRunDeploymentIDField,
					runfilter.IDOperators{Any: []uuid.UUID{someID}, IsNull: boolPtr(false)},
				)
			},
			expectedErr: runfilter.ErrConflictingOperators,
		},
		{
			name: "flow_run_id_any_and_not_any",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(
					runfilter.FlowRunIDField,
					runfilter.IDOperators{Any: []uuid.UUID{someID}, NotAny: []uuid.UUID{}},
				)
			},
			expectedErr: runfilter.ErrConflictingOperators,
		},
		{
			name: "before_earlier_than_after",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewTimeFilter(
					runfilter.TaskRunStartTimeField,
					runfilter.TimeOperators{Before: timePtr(earlier), After: timePtr(later)},
				)
			},
			expectedErr: runfilter.ErrInvalidRange,
		},
		{
			name: "not_any_on_flow_id",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(runfilter.FlowIDField, runfilter.IDOperators{NotAny: []uuid.UUID{someID}})
			},
			expectedErr: runfilter.ErrUnsupportedOperator,
		},
		{
			name: "is_null_on_flow_run_id",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(runfilter.FlowRunIDField, runfilter.IDOperators{IsNull: boolPtr(true)})
			},
			expectedErr: runfilter.ErrUnsupportedOperator,
		},
		{
			name: "any_on_tags",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStringFilter(runfilter.FlowTagsField, runfilter.StringOperators{Any: []string{"x"}})
			},
			expectedErr: runfilter.ErrUnsupportedOperator,
		},
		{
			name: "not_any_on_state_type",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStateTypeFilter(
					runfilter.TaskRunStateTypeField,
					runfilter.StateTypeOperators{NotAny: []runfilter.StateType{runfilter.StateTypeFailed}},
				)
			},
			expectedErr: runfilter.ErrUnsupportedOperator,
		},
		{
			name: "time_payload_for_id_field",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewTimeFilter(runfilter.FlowIDField, runfilter.TimeOperators{After: timePtr(earlier)})
			},
			expectedErr: runfilter.ErrUnsupportedOperator,
		},
		{
			name: "unknown_state_type",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStateTypeFilter(
					runfilter.FlowRunStateTypeField,
					runfilter.StateTypeOperators{Any: []runfilter.StateType{runfilter.StateTypeRunning, "SLEEPING"}},
				)
			},
			expectedErr: runfilter.ErrInvalidStateType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_LeafFilter_ConflictErrorIdentifiesThePair(t *testing.T) {
	tests := []struct {
		name         string
		build        func() (runfilter.LeafFilter, error)
		expectedPair runfilter.OperatorPair
	}{
		{
			name: "all_and_is_null",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStringFilter(
					runfilter.FlowTagsField,
					runfilter.StringOperators{All: []string{}, IsNull: boolPtr(true)},
				)
			},
			expectedPair: runfilter.PairAllIsNull,
		},
		{
			name: "any_and_is_null",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(
					runfilter.FlowRunParentTaskRunIDField,
					runfilter.IDOperators{Any: []uuid.UUID{}, IsNull: boolPtr(true)},
				)
			},
			expectedPair: runfilter.PairAnyIsNull,
		},
		{
			name: "any_and_not_any",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(
					runfilter.FlowRunIDField,
					runfilter.IDOperators{Any: []uuid.UUID{}, NotAny: []uuid.UUID{}},
				)
			},
			expectedPair: runfilter.PairAnyNotAny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()

			var conflictErr *runfilter.ConflictError
			require.True(t, errors.As(err, &conflictErr))
			assert.Equal(t, tt.expectedPair, conflictErr.Pair)
			assert.ErrorContains(t, err, tt.expectedPair.First.String())
			assert.ErrorContains(t, err, tt.expectedPair.Second.String())
		})
	}
}

//nolint:funlen
func Test_LeafFilter_Predicate(t *testing.T) {
	idA := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	idB := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	after := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name     string
		build    func() (runfilter.LeafFilter, error)
		expected runfilter.Predicate
	}{
		{
			name: "id_any",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(runfilter.FlowIDField, runfilter.IDOperators{Any: []uuid.UUID{idA, idB}})
			},
			expected: runfilter.In(runfilter.FieldID, []any{idA, idB}),
		},
		{
			name: "id_any_with_duplicates",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(runfilter.FlowIDField, runfilter.IDOperators{Any: []uuid.UUID{idB, idA, idB}})
			},
			expected: runfilter.In(runfilter.FieldID, []any{idB, idA}),
		},
		{
			name: "id_not_any",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(runfilter.FlowRunIDField, runfilter.IDOperators{NotAny: []uuid.UUID{idA}})
			},
			expected: runfilter.NotIn(runfilter.FieldID, []any{idA}),
		},
		{
			name: "empty_any_matches_nothing",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(runfilter.TaskRunIDField, runfilter.IDOperators{Any: []uuid.UUID{}})
			},
			expected: runfilter.In(runfilter.FieldID, []any{}),
		},
		{
			name: "name_any",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStringFilter(runfilter.FlowNameField, runfilter.StringOperators{Any: []string{"my-flow-1", "my-flow-2"}})
			},
			expected: runfilter.In(runfilter.FieldName, []any{"my-flow-1", "my-flow-2"}),
		},
		{
			name: "tags_all",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStringFilter(runfilter.FlowRunTagsField, runfilter.StringOperators{All: []string{"tag-1", "tag-2"}})
			},
			expected: runfilter.Superset(runfilter.FieldTags, []any{"tag-1", "tag-2"}),
		},
		{
			name: "tags_is_null_true",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStringFilter(runfilter.FlowTagsField, runfilter.StringOperators{IsNull: boolPtr(true)})
			},
			expected: runfilter.IsEmpty(runfilter.FieldTags),
		},
		{
			name: "tags_is_null_false",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStringFilter(runfilter.FlowTagsField, runfilter.StringOperators{IsNull: boolPtr(false)})
			},
			expected: runfilter.IsNotEmpty(runfilter.FieldTags),
		},
		{
			name: "deployment_id_is_null_true",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(runfilter.FlowRunDeploymentIDField, runfilter.IDOperators{IsNull: boolPtr(true)})
			},
			expected: runfilter.IsEmpty(runfilter.FieldDeploymentID),
		},
		{
			name: "parent_task_run_id_is_null_false",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewIDFilter(runfilter.FlowRunParentTaskRunIDField, runfilter.IDOperators{IsNull: boolPtr(false)})
			},
			expected: runfilter.IsNotEmpty(runfilter.FieldParentTaskRunID),
		},
		{
			name: "state_type_any",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewStateTypeFilter(
					runfilter.FlowRunStateTypeField,
					runfilter.StateTypeOperators{Any: []runfilter.StateType{runfilter.StateTypeRunning, runfilter.StateTypePending}},
				)
			},
			expected: runfilter.In(runfilter.FieldStateType, []any{runfilter.StateTypeRunning, runfilter.StateTypePending}),
		},
		{
			name: "before_and_after",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewTimeFilter(
					runfilter.FlowRunExpectedStartTimeField,
					runfilter.TimeOperators{Before: timePtr(before), After: timePtr(after)},
				)
			},
			expected: runfilter.Between(runfilter.FieldExpectedStartTime, after, before),
		},
		{
			name: "before_equal_to_after",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewTimeFilter(
					runfilter.FlowRunStartTimeField,
					runfilter.TimeOperators{Before: timePtr(after), After: timePtr(after)},
				)
			},
			expected: runfilter.Between(runfilter.FieldStartTime, after, after),
		},
		{
			name: "before_only",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewTimeFilter(runfilter.TaskRunStartTimeField, runfilter.TimeOperators{Before: timePtr(before)})
			},
			expected: runfilter.LE(runfilter.FieldStartTime, before),
		},
		{
			name: "after_only",
			build: func() (runfilter.LeafFilter, error) {
				return runfilter.NewTimeFilter(
					runfilter.FlowRunNextScheduledStartTimeField,
					runfilter.TimeOperators{After: timePtr(after)},
				)
			},
			expected: runfilter.GE(runfilter.FieldNextScheduledStartTime, after),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaf, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, leaf.Predicate())
		})
	}
}

func Test_LeafFilter_DoesNotShareInputSlices(t *testing.T) {
	tags := []string{"a", "b"}

	leaf, err := runfilter.NewStringFilter(runfilter.FlowTagsField, runfilter.StringOperators{All: tags})
	require.NoError(t, err)

	tags[0] = "changed"

	assert.Equal(t, "SUPERSET(tags,[a,b])", leaf.Predicate().String())
}

func Test_LeafFilter_ZeroValuePanicsOnPredicate(t *testing.T) {
	assert.Panics(t, func() {
		_ = runfilter.LeafFilter{}.Predicate()
	})
}
