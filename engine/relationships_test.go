package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationshipsSample(t *testing.T) {
	table, err := Relationships(sampleView(t), "user_id", "relationships", "count", "title")
	require.NoError(t, err)

	assert.Equal(t, "user_id", table.Index)
	assert.Equal(t, []string{"1", "2", "3"}, table.Keys())
	assert.Equal(t, []string{"abc", "bcd", "def"}, table.Columns)

	want := map[string]map[string]int64{
		"1": {"abc": 5, "bcd": 1, "def": 0},
		"2": {"abc": 1, "bcd": 0, "def": 0},
		"3": {"abc": 0, "bcd": 0, "def": 1},
	}
	for key, cells := range want {
		row, ok := table.Row(key)
		require.True(t, ok, "row %s", key)
		assert.Equal(t, cells, row, "row %s", key)
	}
}

func TestRelationshipsRowSumsMatchDecodedCounts(t *testing.T) {
	view := sampleView(t)
	table, err := Relationships(view, "user_id", "relationships", "count", "title")
	require.NoError(t, err)

	want := make(map[string]int64)
	for i := 0; i < view.Len(); i++ {
		key, _ := view.Value(i, "user_id")
		raw, _ := view.Value(i, "relationships")
		rels, err := DecodeRelationships(raw, "count", "title")
		require.NoError(t, err)
		for _, r := range rels {
			want[key] += r.Count
		}
	}
	for key, total := range want {
		assert.Equal(t, total, table.RowTotal(key), "group %s", key)
	}
}

func TestRelationshipsDuplicateTitlesSum(t *testing.T) {
	view := rawView([2]string{"1", `[{"count": 2, "title": "x"}, {"count": 5, "title": "x"}]`})
	table, err := Relationships(view, "user_id", "relationships", "count", "title")
	require.NoError(t, err)

	v, ok := table.Cell("1", "x")
	require.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func TestRelationshipsDropsEmptyAndNullCells(t *testing.T) {
	records := []Record{
		{Fields: map[string]string{"user_id": "1", "relationships": `[]`}},
		{Fields: map[string]string{"user_id": "2", "relationships": `null`}},
		{Fields: map[string]string{"user_id": "3"}},
		{Fields: map[string]string{"user_id": "4", "relationships": `[null, {"count": 1, "title": "t"}]`}},
	}
	view := NewSliceView(records, "user_id", "relationships")

	table, err := Relationships(view, "user_id", "relationships", "count", "title")
	require.NoError(t, err)

	assert.Equal(t, []string{"4"}, table.Keys())
	assert.Equal(t, []string{"t"}, table.Columns)
}

func TestRelationshipsCustomFieldNames(t *testing.T) {
	view := rawView(
		[2]string{"1", `[{"n": 4, "name": "friend"}]`},
		[2]string{"2", `[{"n": 1, "name": "friend"}, {"n": 2, "name": "peer"}]`},
	)
	table, err := Relationships(view, "user_id", "relationships", "n", "name")
	require.NoError(t, err)

	assert.Equal(t, []string{"friend", "peer"}, table.Columns)
	row, _ := table.Row("2")
	assert.Equal(t, map[string]int64{"friend": 1, "peer": 2}, row)
}

func TestRelationshipsMalformedJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"truncated", `[{"count": 1, "title": "a"}`},
		{"not json", `abc`},
		{"empty text", ``},
		{"trailing data", `[] []`},
		{"top-level object", `{"count": 1, "title": "a"}`},
		{"element not object", `[1, 2]`},
		{"fractional count", `[{"count": 1.5, "title": "a"}]`},
		{"string count", `[{"count": "1", "title": "a"}]`},
		{"numeric title", `[{"count": 1, "title": 7}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := rawView(
				[2]string{"1", `[{"count": 1, "title": "ok"}]`},
				[2]string{"2", tt.raw},
			)
			table, err := Relationships(view, "user_id", "relationships", "count", "title")
			require.Error(t, err)
			assert.Nil(t, table, "no partial table on error")

			var de *DecodeError
			require.True(t, errors.As(err, &de), "want DecodeError, got %T: %v", err, err)
			assert.Equal(t, 1, de.Row)
			assert.Equal(t, "relationships", de.Column)
		})
	}
}

func TestRelationshipsMissingField(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"no title", `[{"count": 1}]`, "title"},
		{"no count", `[{"title": "a"}]`, "count"},
		{"second element", `[{"count": 1, "title": "a"}, {"count": 2}]`, "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Relationships(rawView([2]string{"1", tt.raw}), "user_id", "relationships", "count", "title")
			require.Error(t, err)
			assert.Nil(t, table)

			var mf *MissingFieldError
			require.True(t, errors.As(err, &mf), "want MissingFieldError, got %T: %v", err, err)
			assert.Equal(t, tt.field, mf.Field)
			assert.Equal(t, 0, mf.Row)
		})
	}
}

func TestRelationshipsDecodeBeforeExtract(t *testing.T) {
	view := rawView(
		[2]string{"1", `[{"count": 1}]`},
		[2]string{"2", `[oops`},
	)
	_, err := Relationships(view, "user_id", "relationships", "count", "title")

	var de *DecodeError
	assert.True(t, errors.As(err, &de), "malformed cell must win over missing field, got %v", err)
}

func TestRelationshipsMissingColumn(t *testing.T) {
	_, err := Relationships(sampleView(t), "user_id", "links", "count", "title")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestRelationshipsIdempotent(t *testing.T) {
	view := sampleView(t)
	first, err := Relationships(view, "user_id", "relationships", "count", "title")
	require.NoError(t, err)
	second, err := Relationships(view, "user_id", "relationships", "count", "title")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRelationshipsRoundTrip(t *testing.T) {
	for _, rels := range sampleRelationships {
		raw, err := EncodeRelationships(rels)
		require.NoError(t, err)

		got, err := DecodeRelationships(raw, "count", "title")
		require.NoError(t, err)
		assert.ElementsMatch(t, rels, got)
	}
}

func TestEncodeRelationshipsNil(t *testing.T) {
	raw, err := EncodeRelationships(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestDecodeRelationshipsErrors(t *testing.T) {
	_, err := DecodeRelationships(`[{"count": 1}]`, "count", "title")
	var mf *MissingFieldError
	assert.True(t, errors.As(err, &mf))

	_, err = DecodeRelationships(`not json`, "count", "title")
	var de *DecodeError
	assert.True(t, errors.As(err, &de))
}
