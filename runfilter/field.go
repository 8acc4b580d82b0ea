package runfilter

// Entity is a queryable record kind.
type Entity string

const (
	EntityFlow    Entity = "flow"
	EntityFlowRun Entity = "flow_run"
	EntityTaskRun Entity = "task_run"
)

// Field is the name of a filterable field. The storage layer binds it to a column.
type Field string

const (
	FieldID                     Field = "id"
	FieldName                   Field = "name"
	FieldTags                   Field = "tags"
	FieldDeploymentID           Field = "deployment_id"
	FieldStateType              Field = "state_type"
	FieldFlowVersion            Field = "flow_version"
	FieldStartTime              Field = "start_time"
	FieldExpectedStartTime      Field = "expected_start_time"
	FieldNextScheduledStartTime Field = "next_scheduled_start_time"
	FieldParentTaskRunID        Field = "parent_task_run_id"
)

// LeafKind classifies leaf filters by the value family they hold.
type LeafKind uint8

const (
	LeafKindID LeafKind = iota + 1
	LeafKindNullableID
	LeafKindName
	LeafKindTags
	LeafKindStateType
	LeafKindTimeRange
)

func (k LeafKind) String() string {
	switch k {
	case LeafKindID:
		return "id"
	case LeafKindNullableID:
		return "nullable_id"
	case LeafKindName:
		return "name"
	case LeafKindTags:
		return "tags"
	case LeafKindStateType:
		return "state_type"
	case LeafKindTimeRange:
		return "time_range"
	default:
		return "unknown"
	}
}

// FieldSpec is one row of the capability table: which operators a field of an entity accepts.
type FieldSpec struct {
	Entity    Entity
	Name      Field
	Kind      LeafKind
	Operators OperatorSet
}

var (
	FlowIDField   = FieldSpec{EntityFlow, FieldID, LeafKindID, Operators(OperatorAny)}
	FlowNameField = FieldSpec{EntityFlow, FieldName, LeafKindName, Operators(OperatorAny)}
	FlowTagsField = FieldSpec{EntityFlow, FieldTags, LeafKindTags, Operators(OperatorAll, OperatorIsNull)}

	FlowRunIDField                     = FieldSpec{EntityFlowRun, FieldID, LeafKindID, Operators(OperatorAny, OperatorNotAny)}
	FlowRunTagsField                   = FieldSpec{EntityFlowRun, FieldTags, LeafKindTags, Operators(OperatorAll, OperatorIsNull)}
	FlowRunDeploymentIDField           = FieldSpec{EntityFlowRun, FieldDeploymentID, LeafKindNullableID, Operators(OperatorAny, OperatorIsNull)}
	FlowRunStateTypeField              = FieldSpec{EntityFlowRun, FieldStateType, LeafKindStateType, Operators(OperatorAny)}
	FlowRunFlowVersionField            = FieldSpec{EntityFlowRun, FieldFlowVersion, LeafKindName, Operators(OperatorAny)}
	FlowRunStartTimeField              = FieldSpec{EntityFlowRun, FieldStartTime, LeafKindTimeRange, Operators(OperatorBefore, OperatorAfter)}
	FlowRunExpectedStartTimeField      = FieldSpec{EntityFlowRun, FieldExpectedStartTime, LeafKindTimeRange, Operators(OperatorBefore, OperatorAfter)}
	FlowRunNextScheduledStartTimeField = FieldSpec{EntityFlowRun, FieldNextScheduledStartTime, LeafKindTimeRange, Operators(OperatorBefore, OperatorAfter)}
	FlowRunParentTaskRunIDField        = FieldSpec{EntityFlowRun, FieldParentTaskRunID, LeafKindNullableID, Operators(OperatorAny, OperatorIsNull)}

	TaskRunIDField        = FieldSpec{EntityTaskRun, FieldID, LeafKindID, Operators(OperatorAny)}
	TaskRunTagsField      = FieldSpec{EntityTaskRun, FieldTags, LeafKindTags, Operators(OperatorAll, OperatorIsNull)}
	TaskRunStateTypeField = FieldSpec{EntityTaskRun, FieldStateType, LeafKindStateType, Operators(OperatorAny)}
	TaskRunStartTimeField = FieldSpec{EntityTaskRun, FieldStartTime, LeafKindTimeRange, Operators(OperatorBefore, OperatorAfter)}
)

// FieldSpecs returns the filterable fields of an entity in declared order.
func FieldSpecs(entity Entity) []FieldSpec {
	switch entity {
	case EntityFlow:
		return []FieldSpec{FlowIDField, FlowNameField, FlowTagsField}
	case EntityFlowRun:
		return []FieldSpec{
			FlowRunIDField,
			FlowRunTagsField,
			FlowRunDeploymentIDField,
			FlowRunStateTypeField,
			FlowRunFlowVersionField,
			FlowRunStartTimeField,
			FlowRunExpectedStartTimeField,
			FlowRunNextScheduledStartTimeField,
			FlowRunParentTaskRunIDField,
		}
	case EntityTaskRun:
		return []FieldSpec{TaskRunIDField, TaskRunTagsField, TaskRunStateTypeField, TaskRunStartTimeField}
	default:
		return nil
	}
}
