package sample

import (
	"github.com/pkg/errors"

	"github.com/spektr-org/crosstab/engine"
)

// UserRow is one row of the demo dataset.
type UserRow struct {
	UserID        int64
	Persona       *string
	Relationships string // JSON list of {"count", "title"}
}

// Column names of the demo dataset.
const (
	ColumnUserID        = "user_id"
	ColumnPersonas      = "personas"
	ColumnRelationships = "relationships"
)

var adapter = engine.NewDomainAdapter[UserRow]().
	Int(ColumnUserID, func(r UserRow) int64 { return r.UserID }).
	Nullable(ColumnPersonas, func(r UserRow) (string, bool) {
		if r.Persona == nil {
			return "", false
		}
		return *r.Persona, true
	}).
	String(ColumnRelationships, func(r UserRow) string { return r.Relationships })

// Rows returns the four demo rows: users 1, 1, 2, 3 with personas a, b, a
// and a missing persona for user 3.
func Rows() ([]UserRow, error) {
	persona := func(s string) *string { return &s }
	spec := []struct {
		id      int64
		persona *string
		rels    []engine.Relationship
	}{
		{1, persona("a"), []engine.Relationship{{Count: 2, Title: "abc"}, {Count: 1, Title: "bcd"}}},
		{1, persona("b"), []engine.Relationship{{Count: 3, Title: "abc"}}},
		{2, persona("a"), []engine.Relationship{{Count: 1, Title: "abc"}}},
		{3, nil, []engine.Relationship{{Count: 1, Title: "def"}}},
	}

	rows := make([]UserRow, len(spec))
	for i, s := range spec {
		raw, err := engine.EncodeRelationships(s.rels)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		rows[i] = UserRow{UserID: s.id, Persona: s.persona, Relationships: raw}
	}
	return rows, nil
}

// Bind exposes typed rows as a RecordView.
func Bind(rows []UserRow) engine.RecordView {
	return adapter.Bind(rows)
}

// View returns the demo dataset as a RecordView.
func View() (engine.RecordView, error) {
	rows, err := Rows()
	if err != nil {
		return nil, err
	}
	return Bind(rows), nil
}
