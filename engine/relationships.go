package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ============================================================================
// RELATIONSHIPS — decode → explode → extract → aggregate
// ============================================================================
// Every cell is decoded before any element is extracted, so a malformed cell
// anywhere in the column fails the call with a DecodeError.
// ============================================================================

var errTrailingData = errors.New("unexpected data after top-level value")

// decodedRow is one source row after step 1.
type decodedRow struct {
	index    int
	key      string
	hasKey   bool
	elements []any
}

// Relationships explodes the JSON lists in jsonColumn and pivots them into a
// per-group sum table: one row per group key, one column per title, cells sum
// the counts of every (group, title) element, 0 where a title never occurs.
//
// Null cells, JSON null, empty lists and null elements contribute nothing.
// A group whose rows contribute nothing is absent from the table.
func Relationships(view RecordView, groupKey, jsonColumn, countField, titleField string, opts ...Option) (*Table, error) {
	cfg := applyOptions(opts)

	if err := requireColumns(view, groupKey, jsonColumn); err != nil {
		return nil, err
	}

	filtered := ApplyFilters(view, cfg.Filters)

	// 1. Decode
	rows := make([]decodedRow, 0, filtered.Len())
	for i := 0; i < filtered.Len(); i++ {
		raw, ok := filtered.Value(i, jsonColumn)
		if !ok {
			continue
		}
		elements, err := decodeCell(raw)
		if err != nil {
			return nil, &DecodeError{Row: i, Column: jsonColumn, Err: err}
		}
		key, hasKey := filtered.Value(i, groupKey)
		rows = append(rows, decodedRow{index: i, key: key, hasKey: hasKey, elements: elements})
	}

	// 2. Explode + 3. Extract + 4. Aggregate
	p := newPivot()
	var exploded, skipped int
	for _, r := range rows {
		for j, elem := range r.elements {
			if elem == nil {
				continue
			}
			rel, err := extractRelationship(elem, countField, titleField)
			if err != nil {
				return nil, rowError(err, r.index, j, jsonColumn)
			}
			exploded++
			if !r.hasKey {
				skipped++
				continue
			}
			p.add(r.key, rel.Title, rel.Count)
		}
	}

	table := p.materialize(groupKey)

	cfg.Logger.Debug("relationships pivoted",
		zap.String("group_key", groupKey),
		zap.String("column", jsonColumn),
		zap.Int("rows", filtered.Len()),
		zap.Int("exploded", exploded),
		zap.Int("skipped_null_keys", skipped),
		zap.Int("groups", len(table.Rows)),
		zap.Int("titles", len(table.Columns)))

	return table, nil
}

// DecodeRelationships decodes one JSON cell into relationships, reading the
// count and title from the named fields. Null elements are dropped.
func DecodeRelationships(raw, countField, titleField string) ([]Relationship, error) {
	elements, err := decodeCell(raw)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	out := make([]Relationship, 0, len(elements))
	for j, elem := range elements {
		if elem == nil {
			continue
		}
		rel, err := extractRelationship(elem, countField, titleField)
		if err != nil {
			return nil, rowError(err, 0, j, "")
		}
		out = append(out, rel)
	}
	return out, nil
}

// EncodeRelationships serializes relationships as a JSON list of
// {"count": n, "title": s} objects.
func EncodeRelationships(rels []Relationship) (string, error) {
	if rels == nil {
		rels = []Relationship{}
	}
	b, err := json.Marshal(rels)
	if err != nil {
		return "", fmt.Errorf("encode relationships: %w", err)
	}
	return string(b), nil
}

// ============================================================================
// INTERNAL HELPERS
// ============================================================================

// decodeCell parses raw as a JSON list. JSON null yields no elements.
func decodeCell(raw string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}

	switch val := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return val, nil
	default:
		return nil, fmt.Errorf("expected a JSON list, got %s", jsonKind(v))
	}
}

// missingField is the extract-stage failure before row context is attached.
type missingField struct{ field string }

func (m missingField) Error() string { return fmt.Sprintf("missing field %q", m.field) }

func extractRelationship(elem any, countField, titleField string) (Relationship, error) {
	obj, ok := elem.(map[string]any)
	if !ok {
		return Relationship{}, fmt.Errorf("expected a JSON object, got %s", jsonKind(elem))
	}

	rawTitle, ok := obj[titleField]
	if !ok {
		return Relationship{}, missingField{field: titleField}
	}
	rawCount, ok := obj[countField]
	if !ok {
		return Relationship{}, missingField{field: countField}
	}

	title, ok := rawTitle.(string)
	if !ok {
		return Relationship{}, fmt.Errorf("field %q: expected a string, got %s", titleField, jsonKind(rawTitle))
	}
	num, ok := rawCount.(json.Number)
	if !ok {
		return Relationship{}, fmt.Errorf("field %q: expected an integer, got %s", countField, jsonKind(rawCount))
	}
	count, err := num.Int64()
	if err != nil {
		return Relationship{}, fmt.Errorf("field %q: expected an integer, got %s", countField, num.String())
	}

	return Relationship{Count: count, Title: title}, nil
}

// rowError attaches row context to an extract-stage failure.
func rowError(err error, row, element int, column string) error {
	var mf missingField
	if errors.As(err, &mf) {
		return &MissingFieldError{Row: row, Element: element, Field: mf.field}
	}
	return &DecodeError{Row: row, Column: column, Err: fmt.Errorf("element %d: %w", element, err)}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
