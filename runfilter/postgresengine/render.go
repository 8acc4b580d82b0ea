package postgresengine

import (
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter"
)

const (
	dialectPostgres    = "postgres"
	sqlTrue            = "TRUE"
	sqlFalse           = "FALSE"
	sqlJsonbContains   = "(? @> ?::jsonb)"
	sqlJsonbIsEmpty    = "(? = '[]'::jsonb)"
	sqlJsonbIsNotEmpty = "(? != '[]'::jsonb)"
)

var jsonbJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// RenderCondition renders a predicate compiled from a filter on the given entity as a goqu expression.
// The expression can be used as a WHERE condition of any goqu query on the entity's table.
func RenderCondition(entity runfilter.Entity, predicate runfilter.Predicate) (exp.Expression, error) {
	schema, err := schemaFor(entity)
	if err != nil {
		return nil, err
	}

	return schema.render(predicate)
}

// RenderSelectIDs renders the statement that selects the ids of all rows matching filter, ordered by id
// and restricted to the page.
func RenderSelectIDs(filter runfilter.EntityFilter, page runfilter.Pagination, tablePrefix string) (string, error) {
	schema, err := schemaFor(filter.Entity())
	if err != nil {
		return "", err
	}

	condition, err := schema.render(filter.Predicate())
	if err != nil {
		return "", err
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(tablePrefix + schema.table).
		Select(goqu.C(colID)).
		Where(condition).
		Order(goqu.C(colID).Asc())

	// goqu treats LIMIT 0 as "no limit"
	if page.Limit() == 0 {
		selectStmt = selectStmt.Where(goqu.L(sqlFalse))
	} else {
		selectStmt = selectStmt.Limit(uint(page.Limit()))
	}

	if page.Offset() > 0 {
		selectStmt = selectStmt.Offset(uint(page.Offset()))
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s tableSchema) render(predicate runfilter.Predicate) (exp.Expression, error) {
	if predicate.Kind == runfilter.KindAnd {
		return s.renderAnd(predicate.Children)
	}

	col, err := s.column(predicate.Field)
	if err != nil {
		return nil, err
	}

	ident := goqu.C(col.name)

	switch predicate.Kind {
	case runfilter.KindIn:
		if len(predicate.Values) == 0 {
			return goqu.L(sqlFalse), nil
		}

		return ident.In(bindValues(predicate.Values)...), nil

	case runfilter.KindNotIn:
		if len(predicate.Values) == 0 {
			return goqu.L(sqlTrue), nil
		}

		return ident.NotIn(bindValues(predicate.Values)...), nil

	case runfilter.KindEquals:
		return ident.Eq(bindValue(predicate.Low)), nil

	case runfilter.KindNotEquals:
		return ident.Neq(bindValue(predicate.Low)), nil

	case runfilter.KindLE:
		return ident.Lte(bindValue(predicate.Low)), nil

	case runfilter.KindGE:
		return ident.Gte(bindValue(predicate.Low)), nil

	case runfilter.KindBetween:
		return ident.Between(goqu.Range(bindValue(predicate.Low), bindValue(predicate.High))), nil

	case runfilter.KindSuperset:
		if col.kind != jsonbArrayColumn {
			return nil, fmt.Errorf("%w: %s on %s.%s", ErrUnsupportedPredicate, predicate.Kind, s.table, col.name)
		}

		array, marshalErr := jsonbJSON.Marshal(bindValues(predicate.Values))
		if marshalErr != nil {
			return nil, errors.Join(ErrBuildingQueryFailed, marshalErr)
		}

		return goqu.L(sqlJsonbContains, ident, string(array)), nil

	case runfilter.KindIsEmpty:
		if col.kind == jsonbArrayColumn {
			return goqu.L(sqlJsonbIsEmpty, ident), nil
		}

		return ident.IsNull(), nil

	case runfilter.KindIsNotEmpty:
		if col.kind == jsonbArrayColumn {
			return goqu.L(sqlJsonbIsNotEmpty, ident), nil
		}

		return ident.IsNotNull(), nil

	default:
		return nil, fmt.Errorf("%w: %s on %s.%s", ErrUnsupportedPredicate, predicate.Kind, s.table, col.name)
	}
}

func (s tableSchema) renderAnd(children []runfilter.Predicate) (exp.Expression, error) {
	if len(children) == 0 {
		return goqu.L(sqlTrue), nil
	}

	expressions := make([]exp.Expression, 0, len(children))
	for _, child := range children {
		expression, err := s.render(child)
		if err != nil {
			return nil, err
		}

		expressions = append(expressions, expression)
	}

	return goqu.And(expressions...), nil
}

func bindValues(values []any) []any {
	bound := make([]any, 0, len(values))
	for _, value := range values {
		bound = append(bound, bindValue(value))
	}

	return bound
}

// bindValue converts typed filter values into values goqu renders as plain literals.
func bindValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.UTC()
	case uuid.UUID:
		return v.String()
	case runfilter.StateType:
		return string(v)
	default:
		return v
	}
}
