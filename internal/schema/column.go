package schema

import (
	"strings"

	GORMSchema "gorm.io/gorm/schema"
)

// Column represents a gorm field
type Column struct {
	*GORMSchema.Field
}

// Type is the GORM data type, or the struct tag type when the field maps to a
// custom column type.
func (c *Column) Type() string {
	if c.DataType != "" {
		return string(c.DataType)
	}
	if t, ok := c.TagSettings["TYPE"]; ok {
		return strings.ToLower(t)
	}
	return c.FieldType.String()
}

func (c *Column) ColumnName() string {
	return c.DBName
}

func (c *Column) Nullable() bool {
	return !c.NotNull && !c.PrimaryKey
}

// Attributes is a short human readable summary such as "pk, not null".
func (c *Column) Attributes() string {
	var attrs []string
	if c.PrimaryKey {
		attrs = append(attrs, "pk")
	}
	if c.NotNull {
		attrs = append(attrs, "not null")
	}
	if c.Unique {
		attrs = append(attrs, "unique")
	}
	if _, ok := c.TagSettings["INDEX"]; ok {
		attrs = append(attrs, "index")
	}
	if c.HasDefaultValue && c.DefaultValue != "" {
		attrs = append(attrs, "default "+c.DefaultValue)
	}
	return strings.Join(attrs, ", ")
}
