package engine

import (
	"strings"
)

// ============================================================================
// FILTERS — Column-Based Row Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL column constraints per record in one loop.
// Returns a SubView (index list into parent) — zero data copy.
// ============================================================================

// Filters define which rows to include.
// Keys are column names. Values are allowed values, compared case-insensitively.
// OR within a column, AND across columns. Empty = all. Null never matches.
type Filters struct {
	Columns map[string][]string `json:"columns"`
}

// HasFilter returns true if a specific column filter is set.
func (f Filters) HasFilter(column string) bool {
	if f.Columns == nil {
		return false
	}
	vals, ok := f.Columns[column]
	return ok && len(vals) > 0
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	for _, vals := range f.Columns {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// ApplyFilters returns a view of records matching all column filters.
// Empty filter = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool)
	for col, allowed := range filters.Columns {
		if filters.HasFilter(col) {
			sets[col] = toLowerSet(allowed)
		}
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for col, set := range sets {
			val, ok := view.Value(i, col)
			if !ok || !set[strings.ToLower(val)] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

// toLowerSet converts a string slice to a lowercase lookup set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
