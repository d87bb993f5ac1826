package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uhudbuilders/sitecms/internal/models"
)

func columnByName(t *testing.T, table *Table, name string) *Column {
	t.Helper()
	for _, c := range table.TableColumns() {
		if c.ColumnName() == name {
			return c
		}
	}
	t.Fatalf("column %s not found in %s", name, table.TableName())
	return nil
}

func TestCreateTableFromModel(t *testing.T) {
	table, err := CreateTableFromModel(&models.Project{})
	require.NoError(t, err)

	assert.Equal(t, "projects", table.TableName())
	assert.Equal(t, "Project", table.Model)
	assert.Equal(t, []string{"id"}, table.PrimaryKeys())

	id := columnByName(t, table, "id")
	assert.Equal(t, "pk", id.Attributes())
	assert.False(t, id.Nullable())

	order := columnByName(t, table, "sort_order")
	assert.Equal(t, "int", order.Type())
	assert.Contains(t, order.Attributes(), "not null")
	assert.Contains(t, order.Attributes(), "default 0")

	assert.True(t, columnByName(t, table, "logo_url").Nullable())
	assert.Equal(t, "text", columnByName(t, table, "building_amenities").Type())

	for _, c := range table.TableColumns() {
		assert.NotEqual(t, "units", c.ColumnName())
	}
}

func TestDescribe(t *testing.T) {
	tables, err := Describe(models.ModelTypeRegistry)
	require.NoError(t, err)

	names := make([]string, 0, len(tables))
	for _, tbl := range tables {
		names = append(names, tbl.TableName())
	}
	assert.Equal(t, []string{
		"admin_users", "gallery_items", "messages", "project_units", "projects", "site_settings",
	}, names)

	admins := tables[0]
	assert.Contains(t, columnByName(t, admins, "email").Attributes(), "not null")
}

func TestDescribe_InvalidModel(t *testing.T) {
	_, err := Describe(map[string]any{"Broken": 42})
	assert.Error(t, err)
}
