package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleRelationships mirrors the four demo rows.
var sampleRelationships = [][]Relationship{
	{{Count: 2, Title: "abc"}, {Count: 1, Title: "bcd"}},
	{{Count: 3, Title: "abc"}},
	{{Count: 1, Title: "abc"}},
	{{Count: 1, Title: "def"}},
}

var sampleColumns = []string{"user_id", "personas", "relationships"}

// sampleRecords builds the demo dataset: users 1,1,2,3 with personas a,b,a,null.
func sampleRecords(t *testing.T) []Record {
	t.Helper()
	ids := []string{"1", "1", "2", "3"}
	personas := []string{"a", "b", "a", ""}

	records := make([]Record, len(ids))
	for i := range ids {
		raw, err := EncodeRelationships(sampleRelationships[i])
		require.NoError(t, err)
		fields := map[string]string{
			"user_id":       ids[i],
			"relationships": raw,
		}
		if ids[i] != "3" {
			fields["personas"] = personas[i]
		}
		records[i] = Record{Fields: fields}
	}
	return records
}

func sampleView(t *testing.T) RecordView {
	t.Helper()
	return NewSliceView(sampleRecords(t), sampleColumns...)
}

// rawView builds a view from (user_id, relationships) pairs of literal JSON.
func rawView(pairs ...[2]string) RecordView {
	records := make([]Record, len(pairs))
	for i, p := range pairs {
		records[i] = Record{Fields: map[string]string{"user_id": p[0], "relationships": p[1]}}
	}
	return NewSliceView(records, "user_id", "relationships")
}

// sourceRowCounts counts non-null group keys per group.
func sourceRowCounts(view RecordView, groupKey string) map[string]int64 {
	counts := make(map[string]int64)
	for i := 0; i < view.Len(); i++ {
		if k, ok := view.Value(i, groupKey); ok {
			counts[k]++
		}
	}
	return counts
}
