package runfilter

import (
	"fmt"
)

// DefaultLimit is both the default and the maximum page size unless configured otherwise.
const DefaultLimit = 200

// PaginationRules holds the configured bounds for limit and offset.
type PaginationRules struct {
	defaultLimit int
	maxLimit     int
}

// PaginationOption configures PaginationRules.
type PaginationOption func(*PaginationRules) error

// WithDefaultLimit sets the limit used when a request omits it.
func WithDefaultLimit(limit int) PaginationOption {
	return func(r *PaginationRules) error {
		if limit < 0 {
			return fmt.Errorf("%w: default limit %d is negative", ErrInvalidPaginationOption, limit)
		}

		r.defaultLimit = limit

		return nil
	}
}

// WithMaxLimit sets the largest limit a request may ask for.
func WithMaxLimit(limit int) PaginationOption {
	return func(r *PaginationRules) error {
		if limit < 0 {
			return fmt.Errorf("%w: max limit %d is negative", ErrInvalidPaginationOption, limit)
		}

		r.maxLimit = limit

		return nil
	}
}

// NewPaginationRules creates PaginationRules, both limits defaulting to DefaultLimit.
func NewPaginationRules(options ...PaginationOption) (PaginationRules, error) {
	rules := PaginationRules{
		defaultLimit: DefaultLimit,
		maxLimit:     DefaultLimit,
	}

	for _, option := range options {
		if err := option(&rules); err != nil {
			return PaginationRules{}, err
		}
	}

	if rules.defaultLimit > rules.maxLimit {
		return PaginationRules{}, fmt.Errorf(
			"%w: default limit %d exceeds max limit %d",
			ErrInvalidPaginationOption, rules.defaultLimit, rules.maxLimit,
		)
	}

	return rules, nil
}

func (r PaginationRules) DefaultLimit() int {
	return r.defaultLimit
}

func (r PaginationRules) MaxLimit() int {
	return r.maxLimit
}

// Build validates the requested bounds. A nil limit becomes the default limit, a nil offset becomes 0.
func (r PaginationRules) Build(limit *int, offset *int) (Pagination, error) {
	p := Pagination{limit: r.defaultLimit}

	if limit != nil {
		if *limit < 0 || *limit > r.maxLimit {
			return Pagination{}, fmt.Errorf("%w: limit %d not in [0, %d]", ErrOutOfRange, *limit, r.maxLimit)
		}

		p.limit = *limit
	}

	if offset != nil {
		if *offset < 0 {
			return Pagination{}, fmt.Errorf("%w: offset %d is negative", ErrOutOfRange, *offset)
		}

		p.offset = *offset
	}

	return p, nil
}

// BuildPagination validates limit and offset against rules built from options.
func BuildPagination(limit *int, offset *int, options ...PaginationOption) (Pagination, error) {
	rules, err := NewPaginationRules(options...)
	if err != nil {
		return Pagination{}, err
	}

	return rules.Build(limit, offset)
}

// Pagination is a validated page window.
type Pagination struct {
	limit  int
	offset int
}

func (p Pagination) Limit() int {
	return p.limit
}

func (p Pagination) Offset() int {
	return p.offset
}
