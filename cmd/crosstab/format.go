package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/crosstab/engine"
	"github.com/spektr-org/crosstab/helpers"
)

// ============================================================================
// OUTPUT FORMATS
// ============================================================================
//   text      aligned grid with totals (default)
//   json      compact JSON
//   pretty    indented JSON
//   yaml      YAML document
//   toml      TOML document
//   csv       table as CSV (ready for Sheets/Excel)
// ============================================================================

// writeResult renders one transform result in format.
func writeResult(w io.Writer, format string, result *engine.Result) error {
	switch format {
	case "text":
		_, err := io.WriteString(w, engine.RenderText(result.TableData))
		return err
	case "csv":
		return helpers.WriteCSV(w, result.TableData)
	default:
		return writeStructured(w, format, result)
	}
}

// resultSet wraps several results so structured formats emit one document.
type resultSet struct {
	Results []*engine.Result `json:"results" yaml:"results" toml:"results"`
}

// writeResults renders several results. Text tables are separated by a blank
// line and CSV tables follow each other; the serialization formats encode a
// single resultSet document.
func writeResults(w io.Writer, format string, results []*engine.Result) error {
	switch format {
	case "text", "csv":
		for i, result := range results {
			if i > 0 && format == "text" {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if err := writeResult(w, format, result); err != nil {
				return err
			}
		}
		return nil
	default:
		return writeStructured(w, format, &resultSet{Results: results})
	}
}

// writeDescription renders a discovered schema with its suggestions.
func writeDescription(w io.Writer, format string, d *description) error {
	switch format {
	case "text":
		_, err := io.WriteString(w, describeText(d))
		return err
	case "csv":
		return describeCSV(w, d)
	default:
		return writeStructured(w, format, d)
	}
}

// writeStructured handles the serialization formats shared by every payload.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json", "pretty":
		enc := json.NewEncoder(w)
		if format == "pretty" {
			enc.SetIndent("", "  ")
		}
		return errors.Wrap(enc.Encode(v), "failed to encode JSON")
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "failed to encode YAML")
		}
		return errors.Wrap(enc.Close(), "failed to encode YAML")
	case "toml":
		return errors.Wrap(toml.NewEncoder(w).Encode(v), "failed to encode TOML")
	default:
		return errors.Errorf("unsupported format: %s", format)
	}
}

func describeText(d *description) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s (%s rows)\n", d.Schema.Name, engine.FormatInt(int64(d.Schema.Rows))))
	b.WriteString(strings.Repeat("=", 60) + "\n")
	for _, col := range d.Schema.Columns {
		b.WriteString(fmt.Sprintf("  %-20s %-9s nulls=%d distinct=%d", col.Key, col.Role, col.NullCount, col.Cardinality))
		if len(col.RecordFields) > 0 {
			fields := make([]string, len(col.RecordFields))
			for i, f := range col.RecordFields {
				fields[i] = f.Name + ":" + f.Type
			}
			b.WriteString("  fields: " + strings.Join(fields, ", "))
		} else if len(col.SampleValues) > 0 {
			b.WriteString("  e.g. " + strings.Join(col.SampleValues, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nSuggested transforms:\n")
	if len(d.Suggestions) == 0 {
		b.WriteString("  (none: no key column found)\n")
	}
	for _, s := range d.Suggestions {
		b.WriteString(fmt.Sprintf("  crosstab %s --group-key %s %s\n", s.Kind, s.GroupKey, columnFlags(s)))
	}
	return b.String()
}

func columnFlags(s engine.Spec) string {
	if s.Kind == engine.KindRelationships {
		return fmt.Sprintf("--json-column %s --count-field %s --title-field %s", s.Column, s.CountField, s.TitleField)
	}
	return "--column " + s.Column
}

func describeCSV(w io.Writer, d *description) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"column", "role", "nulls", "distinct", "samples"}); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	for _, col := range d.Schema.Columns {
		samples := col.SampleValues
		if len(col.RecordFields) > 0 {
			samples = make([]string, len(col.RecordFields))
			for i, f := range col.RecordFields {
				samples[i] = f.Name
			}
		}
		row := []string{
			col.Key,
			string(col.Role),
			strconv.Itoa(col.NullCount),
			strconv.Itoa(col.Cardinality),
			strings.Join(samples, "|"),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "failed to write CSV row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush CSV")
}
