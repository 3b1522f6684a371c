package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ============================================================================
// EXECUTOR — Dispatcher
// ============================================================================
// Entry point: Execute(spec, view, opts...)
//
// Pipeline:
//   1. Normalize the Spec (defaults, kind casing)
//   2. Dispatch to Personas or Relationships
//   3. Build the render model
//   4. Return Result
//
// Either the whole table is produced or an error is returned; there is no
// partial result.
// ============================================================================

// Default field names read from relationship elements.
const (
	DefaultCountField = "count"
	DefaultTitleField = "title"
)

// Execute runs a Spec against a RecordView and returns a render-ready Result.
func Execute(spec Spec, view RecordView, opts ...Option) (*Result, error) {
	spec = NormalizeSpec(spec)
	cfg := applyOptions(opts)

	cfg.Logger.Debug("executing spec",
		zap.String("kind", spec.Kind),
		zap.String("group_key", spec.GroupKey),
		zap.String("column", spec.Column),
		zap.Int("rows", view.Len()))

	var (
		table *Table
		err   error
	)
	switch spec.Kind {
	case KindPersonas:
		table, err = Personas(view, spec.GroupKey, spec.Column, opts...)
	case KindRelationships:
		table, err = Relationships(view, spec.GroupKey, spec.Column, spec.CountField, spec.TitleField, opts...)
	default:
		return nil, fmt.Errorf("unsupported kind %q", spec.Kind)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:      spec.Kind,
		Title:     spec.Title,
		Table:     table,
		TableData: BuildTable(table, spec.Title),
	}, nil
}

// NormalizeSpec fills defaults: lowercase kind, count/title field names for
// relationships, and a title derived from the column.
func NormalizeSpec(spec Spec) Spec {
	spec.Kind = strings.ToLower(strings.TrimSpace(spec.Kind))

	if spec.Kind == KindRelationships {
		if spec.CountField == "" {
			spec.CountField = DefaultCountField
		}
		if spec.TitleField == "" {
			spec.TitleField = DefaultTitleField
		}
	}

	if spec.Title == "" && spec.Column != "" {
		spec.Title = fmt.Sprintf("%s by %s", LabelForColumn(spec.Column), LabelForColumn(spec.GroupKey))
	}

	return spec
}
