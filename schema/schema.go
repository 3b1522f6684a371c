package schema

// ============================================================================
// SCHEMA — Describes the columns of a dataset and what they can pivot on
// ============================================================================
// Auto-discovered from a RecordView or CSV bytes. Suggest() turns the
// discovered roles into engine.Specs ready for engine.Execute.
// ============================================================================

import (
	"github.com/spektr-org/crosstab/engine"
)

// Role classifies what a column can be used for.
type Role string

const (
	RoleKey      Role = "key"      // group identifier: never null, integer or *_id
	RoleCategory Role = "category" // low-cardinality text, nulls allowed
	RoleRecords  Role = "records"  // JSON lists of objects
	RoleOther    Role = "other"    // free text, high cardinality
)

// Field types observed inside JSON records.
const (
	FieldInteger = "integer"
	FieldString  = "string"
	FieldOther   = "other"
)

// Config describes the complete shape of a dataset.
type Config struct {
	Name         string       `json:"name" yaml:"name" toml:"name"`
	Rows         int          `json:"rows" yaml:"rows" toml:"rows"`
	Columns      []ColumnMeta `json:"columns" yaml:"columns" toml:"columns"`
	DiscoveredAt string       `json:"discoveredAt,omitempty" yaml:"discoveredAt,omitempty" toml:"discoveredAt"`
}

// ColumnMeta describes one column.
type ColumnMeta struct {
	Key          string      `json:"key" yaml:"key" toml:"key"`
	DisplayName  string      `json:"displayName" yaml:"displayName" toml:"displayName"`
	Role         Role        `json:"role" yaml:"role" toml:"role"`
	NullCount    int         `json:"nullCount" yaml:"nullCount" toml:"nullCount"`
	Cardinality  int         `json:"cardinality" yaml:"cardinality" toml:"cardinality"`
	SampleValues []string    `json:"sampleValues,omitempty" yaml:"sampleValues,omitempty" toml:"sampleValues"`
	RecordFields []FieldMeta `json:"recordFields,omitempty" yaml:"recordFields,omitempty" toml:"recordFields"`
}

// FieldMeta describes a field seen in the objects of a records column.
type FieldMeta struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Type        string `json:"type" yaml:"type" toml:"type"` // "integer", "string", "other"
	Occurrences int    `json:"occurrences" yaml:"occurrences" toml:"occurrences"`
}

// Column looks up a column by key.
func (c Config) Column(key string) (ColumnMeta, bool) {
	for _, col := range c.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return ColumnMeta{}, false
}

// KeysByRole returns the keys of every column with the given role, in column order.
func (c Config) KeysByRole(role Role) []string {
	var keys []string
	for _, col := range c.Columns {
		if col.Role == role {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

// Suggest proposes one personas spec per category column and one
// relationships spec per records column that has an integer and a string
// field, all grouped by the first key column. No key column, no suggestions.
func (c Config) Suggest() []engine.Spec {
	keys := c.KeysByRole(RoleKey)
	if len(keys) == 0 {
		return nil
	}
	groupKey := keys[0]

	var specs []engine.Spec
	for _, col := range c.Columns {
		switch col.Role {
		case RoleCategory:
			specs = append(specs, engine.NormalizeSpec(engine.Spec{
				Kind:     engine.KindPersonas,
				GroupKey: groupKey,
				Column:   col.Key,
			}))
		case RoleRecords:
			countField := pickField(col.RecordFields, FieldInteger, engine.DefaultCountField)
			titleField := pickField(col.RecordFields, FieldString, engine.DefaultTitleField)
			if countField == "" || titleField == "" {
				continue
			}
			specs = append(specs, engine.NormalizeSpec(engine.Spec{
				Kind:       engine.KindRelationships,
				GroupKey:   groupKey,
				Column:     col.Key,
				CountField: countField,
				TitleField: titleField,
			}))
		}
	}
	return specs
}

// pickField prefers the conventional name, else the first field of the type.
func pickField(fields []FieldMeta, fieldType, preferred string) string {
	first := ""
	for _, f := range fields {
		if f.Type != fieldType {
			continue
		}
		if f.Name == preferred {
			return f.Name
		}
		if first == "" {
			first = f.Name
		}
	}
	return first
}
