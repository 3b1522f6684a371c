package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from a pivot Table
// ============================================================================
// Layout: group-key column, one number column per pivot column, row total.
// The summary carries per-column totals.
// ============================================================================

// totalKey is the column key of the trailing row-total column.
const totalKey = "_total"

// BuildTable produces a TableData from a Table and a title.
func BuildTable(t *Table, title string) *TableData {
	if t == nil || len(t.Rows) == 0 {
		return &TableData{
			Title:   title,
			Columns: []Column{},
			Rows:    [][]string{},
		}
	}

	columns := make([]Column, 0, len(t.Columns)+2)
	columns = append(columns, Column{
		Key:   t.Index,
		Label: LabelForColumn(t.Index),
		Type:  "text",
		Align: "left",
	})
	for _, c := range t.Columns {
		columns = append(columns, Column{
			Key:   c,
			Label: c,
			Type:  "number",
			Align: "right",
		})
	}
	columns = append(columns, Column{
		Key:   totalKey,
		Label: "Total",
		Type:  "number",
		Align: "right",
	})

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, 0, len(columns))
		row = append(row, r.Key)
		for _, v := range r.Values {
			row = append(row, FormatInt(v))
		}
		row = append(row, FormatInt(sumValues(r.Values)))
		rows = append(rows, row)
	}

	totals := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		totals[c] = FormatInt(t.ColumnTotal(c))
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label:  fmt.Sprintf("Total (%d groups)", len(t.Rows)),
			Values: totals,
			Total:  FormatInt(t.Total()),
		},
	}
}
