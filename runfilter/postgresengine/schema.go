package postgresengine

import (
	"fmt"

	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter"
)

type columnKind uint8

const (
	scalarColumn columnKind = iota + 1
	jsonbArrayColumn
)

type column struct {
	name string
	kind columnKind
}

type tableSchema struct {
	table   string
	columns map[runfilter.Field]column
}

const (
	tableFlow    = "flow"
	tableFlowRun = "flow_run"
	tableTaskRun = "task_run"
	colID        = "id"
)

func scalar(field runfilter.Field) column {
	return column{name: string(field), kind: scalarColumn}
}

func jsonbArray(field runfilter.Field) column {
	return column{name: string(field), kind: jsonbArrayColumn}
}

var schemas = map[runfilter.Entity]tableSchema{
	runfilter.EntityFlow: {
		table: tableFlow,
		columns: map[runfilter.Field]column{
			runfilter.FieldID:   scalar(runfilter.FieldID),
			runfilter.FieldName: scalar(runfilter.FieldName),
			runfilter.FieldTags: jsonbArray(runfilter.FieldTags),
		},
	},
	runfilter.EntityFlowRun: {
		table: tableFlowRun,
		columns: map[runfilter.Field]column{
			runfilter.FieldID:                     scalar(runfilter.FieldID),
			runfilter.FieldTags:                   jsonbArray(runfilter.FieldTags),
			runfilter.FieldDeploymentID:           scalar(runfilter.FieldDeploymentID),
			runfilter.FieldStateType:              scalar(runfilter.FieldStateType),
			runfilter.FieldFlowVersion:            scalar(runfilter.FieldFlowVersion),
			runfilter.FieldStartTime:              scalar(runfilter.FieldStartTime),
			runfilter.FieldExpectedStartTime:      scalar(runfilter.FieldExpectedStartTime),
			runfilter.FieldNextScheduledStartTime: scalar(runfilter.FieldNextScheduledStartTime),
			runfilter.FieldParentTaskRunID:        scalar(runfilter.FieldParentTaskRunID),
		},
	},
	runfilter.EntityTaskRun: {
		table: tableTaskRun,
		columns: map[runfilter.Field]column{
			runfilter.FieldID:        scalar(runfilter.FieldID),
			runfilter.FieldTags:      jsonbArray(runfilter.FieldTags),
			runfilter.FieldStateType: scalar(runfilter.FieldStateType),
			runfilter.FieldStartTime: scalar(runfilter.FieldStartTime),
		},
	},
}

func schemaFor(entity runfilter.Entity) (tableSchema, error) {
	schema, ok := schemas[entity]
	if !ok {
		return tableSchema{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}

	return schema, nil
}

func (s tableSchema) column(field runfilter.Field) (column, error) {
	col, ok := s.columns[field]
	if !ok {
		return column{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, s.table, field)
	}

	return col, nil
}

// TableName returns the table an entity is stored in, including the optional prefix.
func TableName(entity runfilter.Entity, tablePrefix string) (string, error) {
	schema, err := schemaFor(entity)
	if err != nil {
		return "", err
	}

	return tablePrefix + schema.table, nil
}
