package engine

// ============================================================================
// CROSSTAB ENGINE TYPES
// ============================================================================
// Record (nullable column map) → RecordView → pivot → Table → TableData.
//
// Dependency: the engine core uses only gota (FrameView), zap (debug traces)
// and go-humanize (rendering).
// ============================================================================

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row keyed by column name.
// A column missing from Fields is null for that row.
//
// Record{Fields: {"user_id": "3", "relationships": "[]"}} → personas is null.
type Record struct {
	Fields map[string]string `json:"fields"`
}

// Relationship is one decoded element of a relationships cell.
type Relationship struct {
	Count int64  `json:"count"`
	Title string `json:"title"`
}

// ============================================================================
// SPEC — What Execute should compute
// ============================================================================

// Transform kinds understood by Execute.
const (
	KindPersonas      = "personas"
	KindRelationships = "relationships"
)

// Spec defines one transformation over a dataset.
type Spec struct {
	Kind       string `json:"kind" yaml:"kind" toml:"kind"`                                       // "personas", "relationships"
	GroupKey   string `json:"groupKey" yaml:"groupKey" toml:"groupKey"`                           // Column to group by, e.g. "user_id"
	Column     string `json:"column" yaml:"column" toml:"column"`                                 // Category column or JSON column
	CountField string `json:"countField,omitempty" yaml:"countField,omitempty" toml:"countField"` // relationships only
	TitleField string `json:"titleField,omitempty" yaml:"titleField,omitempty" toml:"titleField"` // relationships only
	Title      string `json:"title,omitempty" yaml:"title,omitempty" toml:"title"`                // Table title for rendering
}

// Result is the render-ready output of Execute.
type Result struct {
	Kind      string     `json:"kind" yaml:"kind" toml:"kind"`
	Title     string     `json:"title" yaml:"title" toml:"title"`
	Table     *Table     `json:"table" yaml:"table" toml:"table"`
	TableData *TableData `json:"tableData,omitempty" yaml:"tableData,omitempty" toml:"tableData,omitempty"`
}

// ============================================================================
// TABLE — Dense pivot output
// ============================================================================

// Table is a dense two-dimensional pivot: one row per group key, one column
// per category or title, zero-filled.
type Table struct {
	Index   string     `json:"index" yaml:"index" toml:"index"`
	Columns []string   `json:"columns" yaml:"columns" toml:"columns"`
	Rows    []TableRow `json:"rows" yaml:"rows" toml:"rows"`
}

// TableRow holds the cells of one group, aligned with Table.Columns.
type TableRow struct {
	Key    string  `json:"key" yaml:"key" toml:"key"`
	Values []int64 `json:"values" yaml:"values" toml:"values"`
}

// Keys returns the group keys in row order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		keys[i] = r.Key
	}
	return keys
}

// Cell returns the value at (key, column). ok is false when either is unknown.
func (t *Table) Cell(key, column string) (int64, bool) {
	ci := t.columnIndex(column)
	if ci < 0 {
		return 0, false
	}
	for _, r := range t.Rows {
		if r.Key == key {
			return r.Values[ci], true
		}
	}
	return 0, false
}

// Row returns a column → value map for one group.
func (t *Table) Row(key string) (map[string]int64, bool) {
	for _, r := range t.Rows {
		if r.Key != key {
			continue
		}
		m := make(map[string]int64, len(t.Columns))
		for i, c := range t.Columns {
			m[c] = r.Values[i]
		}
		return m, true
	}
	return nil, false
}

// RowTotal sums all cells of one group. Unknown keys total 0.
func (t *Table) RowTotal(key string) int64 {
	for _, r := range t.Rows {
		if r.Key == key {
			return sumValues(r.Values)
		}
	}
	return 0
}

// ColumnTotal sums one column across all groups.
func (t *Table) ColumnTotal(column string) int64 {
	ci := t.columnIndex(column)
	if ci < 0 {
		return 0
	}
	var total int64
	for _, r := range t.Rows {
		total += r.Values[ci]
	}
	return total
}

// Total sums every cell.
func (t *Table) Total() int64 {
	var total int64
	for _, r := range t.Rows {
		total += sumValues(r.Values)
	}
	return total
}

func (t *Table) columnIndex(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

func sumValues(values []int64) int64 {
	var total int64
	for _, v := range values {
		total += v
	}
	return total
}

// ============================================================================
// TABLE DATA — Render model
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title" yaml:"title" toml:"title"`
	Columns []Column   `json:"columns" yaml:"columns" toml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows" toml:"rows"`
	Summary *Summary   `json:"summary,omitempty" yaml:"summary,omitempty" toml:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Label string `json:"label" yaml:"label" toml:"label"`
	Type  string `json:"type" yaml:"type" toml:"type"`    // "text", "number"
	Align string `json:"align" yaml:"align" toml:"align"` // "left", "right"
}

// Summary provides totals for a table. Values holds per-column totals keyed
// by pivot column; the grand total is kept apart in Total.
type Summary struct {
	Label  string            `json:"label" yaml:"label" toml:"label"`
	Values map[string]string `json:"values" yaml:"values" toml:"values"`
	Total  string            `json:"total" yaml:"total" toml:"total"`
}

// FooterRow returns the summary line aligned with Columns: the label, one
// total per pivot column and the grand total under the trailing Total
// column. Nil when there is no summary.
func (d *TableData) FooterRow() []string {
	if d == nil || d.Summary == nil || len(d.Columns) == 0 {
		return nil
	}
	footer := make([]string, len(d.Columns))
	footer[0] = d.Summary.Label
	last := len(d.Columns) - 1
	for i := 1; i < len(d.Columns); i++ {
		if i == last && d.Columns[i].Key == totalKey {
			footer[i] = d.Summary.Total
			continue
		}
		footer[i] = d.Summary.Values[d.Columns[i].Key]
	}
	return footer
}
