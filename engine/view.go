package engine

import "sort"

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns consumer data. It reads through this interface.
//
// Implementations:
//   SliceView      — wraps []Record (ad-hoc, tests)
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
//   FrameView      — reads a gota DataFrame (see frame.go)
//   SubView        — filtered subset (indices into parent, zero-copy)
//
// Null is a first-class state: Value reports ok=false for null/absent cells.
// ============================================================================

// RecordView provides indexed, column-named access to a dataset.
type RecordView interface {
	Len() int
	Value(index int, column string) (string, bool)
	Columns() []string
}

// HasColumn reports whether the view declares the column.
func HasColumn(view RecordView, column string) bool {
	for _, c := range view.Columns() {
		if c == column {
			return true
		}
	}
	return false
}

// ============================================================================
// SLICE VIEW — wraps []Record
// ============================================================================

// SliceView wraps a []Record slice as a RecordView.
type SliceView struct {
	records []Record
	columns []string
}

// NewSliceView creates a RecordView from a []Record slice.
// When columns is empty they are derived from the records, sorted. Declare
// columns explicitly when a column may be null in every row.
func NewSliceView(records []Record, columns ...string) RecordView {
	v := &SliceView{records: records, columns: columns}
	if len(v.columns) == 0 {
		v.cacheColumns()
	}
	return v
}

func (v *SliceView) cacheColumns() {
	seen := make(map[string]bool)
	for _, r := range v.records {
		for k := range r.Fields {
			if !seen[k] {
				seen[k] = true
				v.columns = append(v.columns, k)
			}
		}
	}
	sort.Strings(v.columns)
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Value(i int, column string) (string, bool) {
	if i < 0 || i >= len(v.records) {
		return "", false
	}
	val, ok := v.records[i].Fields[column]
	return val, ok
}

func (v *SliceView) Columns() []string { return v.columns }

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Value(i int, column string) (string, bool) {
	if i < 0 || i >= len(v.indices) {
		return "", false
	}
	return v.parent.Value(v.indices[i], column)
}

func (v *SubView) Columns() []string { return v.parent.Columns() }

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[UserRow]().
//	    Int("user_id", func(r UserRow) int64 { return r.UserID }).
//	    Nullable("personas", func(r UserRow) (string, bool) { ... }).
//	    String("relationships", func(r UserRow) string { return r.Relationships })
//
//	view := adapter.Bind(rows)
//	table, _ := engine.Personas(view, "user_id", "personas")
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	order   []string
	columns map[string]func(T) (string, bool)
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		columns: make(map[string]func(T) (string, bool)),
	}
}

// Nullable registers a column accessor that may report null.
func (a *DomainAdapter[T]) Nullable(key string, fn func(T) (string, bool)) *DomainAdapter[T] {
	if _, exists := a.columns[key]; !exists {
		a.order = append(a.order, key)
	}
	a.columns[key] = fn
	return a
}

// String registers a never-null text column.
func (a *DomainAdapter[T]) String(key string, fn func(T) string) *DomainAdapter[T] {
	return a.Nullable(key, func(t T) (string, bool) { return fn(t), true })
}

// Int registers a never-null integer column.
func (a *DomainAdapter[T]) Int(key string, fn func(T) int64) *DomainAdapter[T] {
	return a.Nullable(key, func(t T) (string, bool) { return formatInt64(fn(t)), true })
}

// Bind creates a RecordView from a data slice. Zero-copy — holds reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:    data,
		columns: a.columns,
		order:   a.order,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data    []T
	columns map[string]func(T) (string, bool)
	order   []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Value(i int, column string) (string, bool) {
	if i < 0 || i >= len(v.data) {
		return "", false
	}
	if fn, ok := v.columns[column]; ok {
		return fn(v.data[i])
	}
	return "", false
}

func (v *DomainView[T]) Columns() []string { return v.order }
