// Package runfilter builds validated filters for flow, flow run and task run queries
// and compiles them into backend-neutral predicate trees.
//
// A composite filter (FlowFilter, FlowRunFilter, TaskRunFilter) holds one optional leaf filter per
// filterable field. Each leaf supports a fixed set of operators (see FieldSpec and the
// ...Field capability variables):
//   - any_: the field matches one of the values (IN)
//   - not_any_: the field matches none of the values (NOT_IN)
//   - all_: the field's stored set contains all values (SUPERSET)
//   - is_null_: the field is empty (true) or not empty (false)
//   - before_ / after_: inclusive upper / lower bound on a timestamp
//
// Every leaf is validated when it is built:
//   - at least one operator must be supplied
//   - all_ and is_null_, any_ and is_null_, any_ and not_any_ exclude each other
//   - before_ must not be earlier than after_
//
// A composite compiles to the AND of its leaves in declared field order;
// a composite without leaves compiles to And(), which selects everything.
//
// Common usage pattern:
//
//	filter, err := runfilter.BuildFlowRunFilter(runfilter.FlowRunFilterInput{
//		ID:   &runfilter.IDOperators{Any: []uuid.UUID{a, b}},
//		Tags: &runfilter.StringOperators{All: []string{"nightly"}},
//	})
//	if err != nil {
//		// malformed input, report as bad request
//	}
//
//	predicate := filter.Predicate() // AND(IN(id,[a,b]),SUPERSET(tags,[nightly]))
//
//	page, err := runfilter.BuildPagination(&limit, nil)
//
// Nothing in this package blocks or holds resources; all values are immutable after construction.
package runfilter
