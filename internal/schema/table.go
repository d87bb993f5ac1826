// Package schema describes the tables GORM derives from the registered
// models, as used by `sitecms schema`.
package schema

import (
	"fmt"
	"sort"
	"sync"

	GORMSchema "gorm.io/gorm/schema"
)

// Table represents a gorm model
type Table struct {
	*GORMSchema.Schema
	Model   string
	Columns []*Column
}

func (t *Table) TableName() string {
	return t.Table
}

func (t *Table) TableColumns() []*Column {
	return t.Columns
}

// PrimaryKeys lists the database names of the primary key columns.
func (t *Table) PrimaryKeys() []string {
	keys := make([]string, 0, len(t.PrimaryFields))
	for _, f := range t.PrimaryFields {
		keys = append(keys, f.DBName)
	}
	return keys
}

func CreateTableFromModel(model interface{}) (*Table, error) {
	return createTable(model, &sync.Map{})
}

func createTable(model interface{}, cache *sync.Map) (*Table, error) {
	modelSchema, err := GORMSchema.Parse(model, cache, GORMSchema.NamingStrategy{})
	if err != nil {
		return nil, err
	}

	columns := make([]*Column, 0, len(modelSchema.Fields))
	for _, field := range modelSchema.Fields {
		// relations and ignored fields have no column
		if field.DBName == "" {
			continue
		}
		columns = append(columns, &Column{Field: field})
	}

	return &Table{Schema: modelSchema, Model: modelSchema.Name, Columns: columns}, nil
}

// Describe parses every model in registry and returns the tables sorted by
// table name.
func Describe(registry map[string]any) ([]*Table, error) {
	cache := &sync.Map{}
	tables := make([]*Table, 0, len(registry))
	for name, model := range registry {
		t, err := createTable(model, cache)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %s: %w", name, err)
		}
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Table < tables[j].Table })
	return tables, nil
}
