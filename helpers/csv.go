package helpers

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"

	"github.com/spektr-org/crosstab/engine"
)

// ============================================================================
// CSV HELPER — CSV bytes ⇄ engine views and tables
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, S3, Sheets).
// This helper loads the raw bytes into a gota DataFrame and exposes it as a
// RecordView. Every column is kept as text; the engine decides meaning.
// ============================================================================

// NullValues are the cell texts read as null. Empty cells are null too.
var NullValues = []string{"", "NA", "NaN", "null"}

// ParseCSV parses CSV bytes (header row required) into a RecordView.
// Column names are snake_cased: "User ID" → "user_id".
func ParseCSV(data []byte) (engine.RecordView, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty CSV input")
	}

	header, hasRows, err := readHeader(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV header")
	}
	if !hasRows {
		return engine.NewSliceView(nil, snakeNames(header)...), nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(NullValues),
	)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "failed to read CSV")
	}

	if err := df.SetNames(snakeNames(df.Names())...); err != nil {
		return nil, errors.Wrap(err, "failed to rename columns")
	}

	view, err := engine.NewFrameView(df)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build view")
	}
	return view, nil
}

// WriteCSV writes rendered table data as CSV: header labels, rows, then the
// totals line when a summary is present.
func WriteCSV(w io.Writer, data *engine.TableData) error {
	cw := csv.NewWriter(w)

	if data == nil || len(data.Columns) == 0 {
		if err := cw.Write([]string{"Result", "No data"}); err != nil {
			return errors.Wrap(err, "failed to write CSV")
		}
		cw.Flush()
		return errors.Wrap(cw.Error(), "failed to flush CSV")
	}

	headers := make([]string, len(data.Columns))
	for i, c := range data.Columns {
		headers[i] = c.Label
	}
	if err := cw.Write(headers); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	for _, row := range data.Rows {
		if err := cw.Write(unformat(row)); err != nil {
			return errors.Wrap(err, "failed to write CSV row")
		}
	}
	if footer := data.FooterRow(); footer != nil {
		if err := cw.Write(unformat(footer)); err != nil {
			return errors.Wrap(err, "failed to write CSV summary")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush CSV")
}

// unformat strips thousands separators so spreadsheets read numbers.
func unformat(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		if i > 0 {
			cell = strings.ReplaceAll(cell, ",", "")
		}
		out[i] = cell
	}
	return out
}

// readHeader reads the header record and reports whether any data record
// follows it.
func readHeader(data []byte) ([]string, bool, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, false, err
	}
	if _, err := r.Read(); err == io.EOF {
		return header, false, nil
	}
	return header, true, nil
}

func snakeNames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = toSnakeCase(strings.TrimSpace(n))
	}
	return out
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
