package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTable(t *testing.T) {
	table, err := Personas(sampleView(t), "user_id", "personas")
	require.NoError(t, err)

	data := BuildTable(table, "Personas")
	assert.Equal(t, "Personas", data.Title)

	labels := make([]string, len(data.Columns))
	for i, c := range data.Columns {
		labels[i] = c.Label
	}
	assert.Equal(t, []string{"User Id", "Unknown", "a", "b", "Total"}, labels)
	assert.Equal(t, "left", data.Columns[0].Align)
	assert.Equal(t, "right", data.Columns[1].Align)

	assert.Equal(t, [][]string{
		{"1", "0", "1", "1", "2"},
		{"2", "0", "1", "0", "1"},
		{"3", "1", "0", "0", "1"},
	}, data.Rows)

	require.NotNil(t, data.Summary)
	assert.Equal(t, "Total (3 groups)", data.Summary.Label)
	assert.Equal(t, "2", data.Summary.Values["a"])
	assert.Equal(t, "4", data.Summary.Total)
	assert.Equal(t, []string{"Total (3 groups)", "1", "2", "1", "4"}, data.FooterRow())
}

func TestBuildTableEmpty(t *testing.T) {
	data := BuildTable(&Table{Index: "user_id"}, "Empty")
	assert.Empty(t, data.Columns)
	assert.Empty(t, data.Rows)
	assert.Nil(t, data.Summary)

	assert.Empty(t, BuildTable(nil, "").Rows)
}

func TestBuildTableFormatsThousands(t *testing.T) {
	table := &Table{
		Index:   "user_id",
		Columns: []string{"abc"},
		Rows:    []TableRow{{Key: "1", Values: []int64{1234567}}},
	}
	data := BuildTable(table, "")
	assert.Equal(t, []string{"1", "1,234,567", "1,234,567"}, data.Rows[0])
}

func TestRenderText(t *testing.T) {
	table, err := Relationships(sampleView(t), "user_id", "relationships", "count", "title")
	require.NoError(t, err)

	out := RenderText(BuildTable(table, "Relationships"))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 8)
	assert.Equal(t, "Relationships", lines[0])
	assert.Equal(t, []string{"User", "Id", "abc", "bcd", "def", "Total"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "5", "1", "0", "6"}, strings.Fields(lines[3]))
	assert.Len(t, lines[3], len(lines[1]), "number columns are right-aligned")
	assert.True(t, strings.HasPrefix(lines[7], "Total (3 groups)"))
}

func TestRenderTextEmpty(t *testing.T) {
	assert.Equal(t, "", RenderText(nil))
	assert.Equal(t, "T\nNo data.\n", RenderText(BuildTable(&Table{}, "T")))
}

func TestTableAccessors(t *testing.T) {
	table := &Table{
		Index:   "k",
		Columns: []string{"x", "y"},
		Rows: []TableRow{
			{Key: "1", Values: []int64{1, 2}},
			{Key: "2", Values: []int64{0, 4}},
		},
	}
	assert.Equal(t, []string{"1", "2"}, table.Keys())
	assert.Equal(t, int64(3), table.RowTotal("1"))
	assert.Equal(t, int64(0), table.RowTotal("9"))
	assert.Equal(t, int64(6), table.ColumnTotal("y"))
	assert.Equal(t, int64(0), table.ColumnTotal("z"))
	assert.Equal(t, int64(7), table.Total())

	_, ok := table.Cell("1", "z")
	assert.False(t, ok)
	_, ok = table.Cell("9", "x")
	assert.False(t, ok)
	_, ok = table.Row("9")
	assert.False(t, ok)
}

func TestSortKeysAndLabels(t *testing.T) {
	keys := []string{"b", "10", "-1", "2.5", "a", "NaN"}
	SortKeys(keys)
	assert.Equal(t, []string{"-1", "2.5", "10", "NaN", "a", "b"}, keys)

	assert.Equal(t, "User Id", LabelForColumn("user_id"))
	assert.Equal(t, "Relationships", LabelForColumn("relationships"))
	assert.Equal(t, "Émail Address", LabelForColumn("émail_address"))
	assert.Equal(t, "1,000", FormatInt(1000))
}

func TestBuildTableCategoryNamedLikeTotalColumn(t *testing.T) {
	view := NewSliceView([]Record{
		{Fields: map[string]string{"k": "1", "c": "_total"}},
		{Fields: map[string]string{"k": "1", "c": "x"}},
	}, "k", "c")
	table, err := Personas(view, "k", "c")
	require.NoError(t, err)

	data := BuildTable(table, "")
	assert.Equal(t, "1", data.Summary.Values["_total"])
	assert.Equal(t, "2", data.Summary.Total)
	assert.Equal(t, []string{"Total (1 groups)", "1", "1", "2"}, data.FooterRow())

	lines := strings.Split(strings.TrimRight(RenderText(data), "\n"), "\n")
	assert.Equal(t, []string{"Total", "(1", "groups)", "1", "1", "2"}, strings.Fields(lines[len(lines)-1]))
}

func TestFooterRowWithoutSummary(t *testing.T) {
	assert.Nil(t, (*TableData)(nil).FooterRow())
	assert.Nil(t, BuildTable(nil, "").FooterRow())
}
