package engine

import (
	"strings"
	"unicode/utf8"
)

// ============================================================================
// TEXT BUILDER — Renders TableData as an aligned plain-text grid
// ============================================================================

// RenderText renders a table as aligned text: title, header, rule, rows and
// a totals line when a summary is present.
func RenderText(data *TableData) string {
	if data == nil {
		return ""
	}

	var b strings.Builder
	if data.Title != "" {
		b.WriteString(data.Title)
		b.WriteString("\n")
	}
	if len(data.Columns) == 0 {
		b.WriteString("No data.\n")
		return b.String()
	}

	header := make([]string, len(data.Columns))
	for i, c := range data.Columns {
		header[i] = c.Label
	}

	footer := data.FooterRow()

	widths := make([]int, len(data.Columns))
	measure := func(cells []string) {
		for i := range widths {
			if i < len(cells) {
				if w := utf8.RuneCountInString(cells[i]); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	measure(header)
	for _, r := range data.Rows {
		measure(r)
	}
	measure(footer)

	writeLine := func(cells []string) {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = pad(cell, w, data.Columns[i].Align == "right")
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		b.WriteString("\n")
	}

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}

	writeLine(header)
	b.WriteString(strings.Join(rule, "  "))
	b.WriteString("\n")
	for _, r := range data.Rows {
		writeLine(r)
	}
	if footer != nil {
		b.WriteString(strings.Join(rule, "  "))
		b.WriteString("\n")
		writeLine(footer)
	}
	return b.String()
}

func pad(s string, width int, right bool) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}
