package runfilter

// StateType is the type of state a flow run or task run is in.
type StateType string

const (
	StateTypeScheduled StateType = "SCHEDULED"
	StateTypePending   StateType = "PENDING"
	StateTypeRunning   StateType = "RUNNING"
	StateTypeCompleted StateType = "COMPLETED"
	StateTypeFailed    StateType = "FAILED"
	StateTypeCancelled StateType = "CANCELLED"
)

// StateTypes returns all known state types.
func StateTypes() []StateType {
	return []StateType{
		StateTypeScheduled,
		StateTypePending,
		StateTypeRunning,
		StateTypeCompleted,
		StateTypeFailed,
		StateTypeCancelled,
	}
}

// IsValid reports whether s is a known state type.
func (s StateType) IsValid() bool {
	switch s {
	case StateTypeScheduled, StateTypePending, StateTypeRunning, StateTypeCompleted, StateTypeFailed, StateTypeCancelled:
		return true
	default:
		return false
	}
}

func (s StateType) String() string {
	return string(s)
}
