package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/crosstab/engine"
)

func TestView(t *testing.T) {
	view, err := View()
	require.NoError(t, err)

	assert.Equal(t, 4, view.Len())
	assert.Equal(t, []string{ColumnUserID, ColumnPersonas, ColumnRelationships}, view.Columns())

	id, ok := view.Value(3, ColumnUserID)
	require.True(t, ok)
	assert.Equal(t, "3", id)

	_, ok = view.Value(3, ColumnPersonas)
	assert.False(t, ok)

	raw, ok := view.Value(0, ColumnRelationships)
	require.True(t, ok)
	assert.JSONEq(t, `[{"count":2,"title":"abc"},{"count":1,"title":"bcd"}]`, raw)
}

func TestDemoPersonas(t *testing.T) {
	view, err := View()
	require.NoError(t, err)

	table, err := engine.Personas(view, ColumnUserID, ColumnPersonas)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, table.Keys())
	assert.Equal(t, []string{"Unknown", "a", "b"}, table.Columns)
	for key, want := range map[string]map[string]int64{
		"1": {"Unknown": 0, "a": 1, "b": 1},
		"2": {"Unknown": 0, "a": 1, "b": 0},
		"3": {"Unknown": 1, "a": 0, "b": 0},
	} {
		row, ok := table.Row(key)
		require.True(t, ok, key)
		assert.Equal(t, want, row, key)
	}
}

func TestDemoRelationships(t *testing.T) {
	view, err := View()
	require.NoError(t, err)

	table, err := engine.Relationships(view, ColumnUserID, ColumnRelationships, "count", "title")
	require.NoError(t, err)

	assert.Equal(t, []string{"abc", "bcd", "def"}, table.Columns)
	for key, want := range map[string]map[string]int64{
		"1": {"abc": 5, "bcd": 1, "def": 0},
		"2": {"abc": 1, "bcd": 0, "def": 0},
		"3": {"abc": 0, "bcd": 0, "def": 1},
	} {
		row, ok := table.Row(key)
		require.True(t, ok, key)
		assert.Equal(t, want, row, key)
	}
	assert.Equal(t, int64(8), table.Total())
}

func TestBindDoesNotCopy(t *testing.T) {
	rows, err := Rows()
	require.NoError(t, err)

	view := Bind(rows)
	rows[0].UserID = 42
	v, _ := view.Value(0, ColumnUserID)
	assert.Equal(t, "42", v)
}
