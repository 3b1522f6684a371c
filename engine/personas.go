package engine

import (
	"go.uber.org/zap"
)

// Personas cross-tabulates groupKey against category: one row per distinct
// group key, one column per distinct category, cells count matching rows.
//
// Null categories are counted under the unknown label ("Unknown" unless
// WithUnknownLabel says otherwise); empty strings are a category of their own.
// Imputation happens on read, so the view is never modified. Rows with a null
// group key are skipped.
func Personas(view RecordView, groupKey, category string, opts ...Option) (*Table, error) {
	cfg := applyOptions(opts)

	if err := requireColumns(view, groupKey, category); err != nil {
		return nil, err
	}

	filtered := ApplyFilters(view, cfg.Filters)

	p := newPivot()
	var imputed, skipped int
	for i := 0; i < filtered.Len(); i++ {
		key, ok := filtered.Value(i, groupKey)
		if !ok {
			skipped++
			continue
		}
		val, ok := filtered.Value(i, category)
		if !ok {
			val = cfg.UnknownLabel
			imputed++
		}
		p.add(key, val, 1)
	}

	table := p.materialize(groupKey)

	cfg.Logger.Debug("personas cross-tabulated",
		zap.String("group_key", groupKey),
		zap.String("category", category),
		zap.Int("rows", filtered.Len()),
		zap.Int("imputed", imputed),
		zap.Int("skipped_null_keys", skipped),
		zap.Int("groups", len(table.Rows)),
		zap.Int("columns", len(table.Columns)))

	return table, nil
}
