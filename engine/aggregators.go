package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// ============================================================================
// AGGREGATORS — Pivot accumulation, key ordering and formatting
// ============================================================================
// A pivot maps (row key, column key) → running sum. Materialize turns it into
// a dense Table with every combination present and absence filled with 0.
// ============================================================================

type pivot struct {
	cells   map[string]map[string]int64
	columns map[string]bool
}

func newPivot() *pivot {
	return &pivot{
		cells:   make(map[string]map[string]int64),
		columns: make(map[string]bool),
	}
}

// add accumulates v into (row, column). Repeated pairs sum, never overwrite.
func (p *pivot) add(row, column string, v int64) {
	r, ok := p.cells[row]
	if !ok {
		r = make(map[string]int64)
		p.cells[row] = r
	}
	r[column] += v
	p.columns[column] = true
}

// materialize builds the dense table: rows in natural key order, columns in
// byte order.
func (p *pivot) materialize(index string) *Table {
	rows := make([]string, 0, len(p.cells))
	for k := range p.cells {
		rows = append(rows, k)
	}
	SortKeys(rows)

	columns := make([]string, 0, len(p.columns))
	for c := range p.columns {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	t := &Table{
		Index:   index,
		Columns: columns,
		Rows:    make([]TableRow, 0, len(rows)),
	}
	for _, key := range rows {
		values := make([]int64, len(columns))
		for i, c := range columns {
			values[i] = p.cells[key][c]
		}
		t.Rows = append(t.Rows, TableRow{Key: key, Values: values})
	}
	return t
}

// ============================================================================
// KEY ORDERING
// ============================================================================

// SortKeys sorts group keys in natural ascending order: numeric keys first,
// compared by value, then the rest in byte order.
func SortKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool { return compareKeys(keys[i], keys[j]) < 0 })
}

func compareKeys(a, b string) int {
	fa, aNum := parseNumber(a)
	fb, bNum := parseNumber(b)
	switch {
	case aNum && bNum:
		if fa != fb {
			if fa < fb {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	case aNum:
		return -1
	case bNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int64) string {
	return humanize.Comma(n)
}

func formatInt64(n int64) string {
	return strconv.FormatInt(n, 10)
}

// LabelForColumn returns a display label for a column key: "user_id" → "User Id".
func LabelForColumn(column string) string {
	parts := strings.FieldsFunc(column, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, p := range parts {
		parts[i] = upperFirst(p)
	}
	return strings.Join(parts, " ")
}

// upperFirst upper-cases the first rune of s.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
