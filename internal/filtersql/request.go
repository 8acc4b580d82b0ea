package filtersql

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter"
)

var requestJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
	CaseSensitive:          true,
}.Froze()

// ErrInvalidRequest is returned when the request envelope cannot be decoded.
var ErrInvalidRequest = errors.New("invalid request")

// request is the envelope read by filtersql. Filter holds the entity filter payload.
type request struct {
	Entity runfilter.Entity    `json:"entity"`
	Filter jsoniter.RawMessage `json:"filter"`
	Limit  *int                `json:"limit"`
	Offset *int                `json:"offset"`
}

type compiledRequest struct {
	filter runfilter.EntityFilter
	page   runfilter.Pagination
}

func readRequest(r io.Reader, rules runfilter.PaginationRules) (compiledRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return compiledRequest{}, fmt.Errorf("read request: %w", err)
	}

	var req request
	if err := requestJSON.Unmarshal(data, &req); err != nil {
		return compiledRequest{}, errors.Join(ErrInvalidRequest, err)
	}

	if req.Entity == "" {
		return compiledRequest{}, fmt.Errorf("%w: entity is required", ErrInvalidRequest)
	}

	payload := []byte(req.Filter)
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	filter, err := runfilter.DecodeEntityFilter(req.Entity, payload)
	if err != nil {
		return compiledRequest{}, err
	}

	page, err := rules.Build(req.Limit, req.Offset)
	if err != nil {
		return compiledRequest{}, err
	}

	return compiledRequest{filter: filter, page: page}, nil
}
