package runfilter

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// payloadJSON rejects keys that are not fields of the entity or operators of the payload.
var payloadJSON = jsoniter.Config{
	EscapeHTML:             true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
	CaseSensitive:          true,
}.Froze()

// PaginationInput is the raw pagination payload: {"limit": 10, "offset": 20}.
type PaginationInput struct {
	Limit  *int `json:"limit"`
	Offset *int `json:"offset"`
}

func decodePayload(data []byte, target any) error {
	if err := payloadJSON.Unmarshal(data, target); err != nil {
		return errors.Join(ErrDecodingFilterFailed, err)
	}

	return nil
}

// DecodeFlowFilter decodes a flow filter payload like {"tags": {"all_": ["x"]}} and builds the filter.
func DecodeFlowFilter(data []byte) (FlowFilter, error) {
	var input FlowFilterInput
	if err := decodePayload(data, &input); err != nil {
		return FlowFilter{}, err
	}

	return BuildFlowFilter(input)
}

// DecodeFlowRunFilter decodes a flow run filter payload and builds the filter.
func DecodeFlowRunFilter(data []byte) (FlowRunFilter, error) {
	var input FlowRunFilterInput
	if err := decodePayload(data, &input); err != nil {
		return FlowRunFilter{}, err
	}

	return BuildFlowRunFilter(input)
}

// DecodeTaskRunFilter decodes a task run filter payload and builds the filter.
func DecodeTaskRunFilter(data []byte) (TaskRunFilter, error) {
	var input TaskRunFilterInput
	if err := decodePayload(data, &input); err != nil {
		return TaskRunFilter{}, err
	}

	return BuildTaskRunFilter(input)
}

// DecodeEntityFilter decodes a filter payload for the given entity.
func DecodeEntityFilter(entity Entity, data []byte) (EntityFilter, error) {
	var filter EntityFilter
	var err error

	switch entity {
	case EntityFlow:
		filter, err = DecodeFlowFilter(data)
	case EntityFlowRun:
		filter, err = DecodeFlowRunFilter(data)
	case EntityTaskRun:
		filter, err = DecodeTaskRunFilter(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}

	if err != nil {
		return nil, err
	}

	return filter, nil
}

// DecodePagination decodes a pagination payload and validates it against rules.
func DecodePagination(data []byte, rules PaginationRules) (Pagination, error) {
	var input PaginationInput
	if err := decodePayload(data, &input); err != nil {
		return Pagination{}, err
	}

	return rules.Build(input.Limit, input.Offset)
}
