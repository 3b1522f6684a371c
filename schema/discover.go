package schema

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/spektr-org/crosstab/engine"
	"github.com/spektr-org/crosstab/helpers"
)

// ============================================================================
// AUTO-DISCOVERY — Heuristic Column Classification
// ============================================================================
// Inspects a RecordView and generates a schema.Config automatically.
//
// Classification pipeline per column (non-null values only):
//   1. Every value a JSON list      → records (object fields collected)
//   2. No nulls and integer or *_id → key
//   3. Cardinality within limit     → category
//   4. Otherwise                    → other
// An entirely null column is a category: it pivots to a single "Unknown".
// ============================================================================

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	SampleSize             int    // Max rows to inspect (negative = all). Default: 1000
	MaxSamples             int    // Sample values kept per column. Default: 5
	MaxCategoryCardinality int    // Above this a text column is "other". Default: 50
	Name                   string // Dataset name
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		SampleSize:             1000,
		MaxSamples:             5,
		MaxCategoryCardinality: 50,
		Name:                   "dataset",
	}
}

// DiscoverFromCSV loads CSV bytes through helpers.ParseCSV and discovers them.
func DiscoverFromCSV(data []byte, opts ...DiscoverOptions) (*Config, error) {
	view, err := helpers.ParseCSV(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load CSV for discovery")
	}
	return Discover(view, opts...), nil
}

// Discover classifies every column of view.
func Discover(view engine.RecordView, opts ...DiscoverOptions) *Config {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = mergeOptions(opt, opts[0])
	}

	n := view.Len()
	if opt.SampleSize > 0 && n > opt.SampleSize {
		n = opt.SampleSize
	}

	cfg := &Config{
		Name:         opt.Name,
		Rows:         view.Len(),
		Columns:      make([]ColumnMeta, 0, len(view.Columns())),
		DiscoveredAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, key := range view.Columns() {
		cfg.Columns = append(cfg.Columns, analyzeColumn(view, key, n, opt))
	}
	return cfg
}

func mergeOptions(base, o DiscoverOptions) DiscoverOptions {
	if o.SampleSize != 0 {
		base.SampleSize = o.SampleSize
	}
	if o.MaxSamples > 0 {
		base.MaxSamples = o.MaxSamples
	}
	if o.MaxCategoryCardinality > 0 {
		base.MaxCategoryCardinality = o.MaxCategoryCardinality
	}
	if o.Name != "" {
		base.Name = o.Name
	}
	return base
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

func analyzeColumn(view engine.RecordView, key string, n int, opt DiscoverOptions) ColumnMeta {
	unique := make(map[string]bool)
	var values []string
	nulls := 0
	for i := 0; i < n; i++ {
		v, ok := view.Value(i, key)
		if !ok {
			nulls++
			continue
		}
		values = append(values, v)
		unique[v] = true
	}

	col := ColumnMeta{
		Key:         key,
		DisplayName: toDisplayName(key),
		NullCount:   nulls,
		Cardinality: len(unique),
	}

	if fields, ok := detectRecords(values); ok {
		col.Role = RoleRecords
		col.RecordFields = fields
		return col
	}

	col.SampleValues = collectSamples(unique, opt.MaxSamples)
	switch {
	case len(values) == 0:
		col.Role = RoleCategory
	case nulls == 0 && (looksLikeID(key) || allIntegers(values)):
		col.Role = RoleKey
	case len(unique) <= opt.MaxCategoryCardinality:
		col.Role = RoleCategory
	default:
		col.Role = RoleOther
	}
	return col
}

// detectRecords reports whether every value is a JSON list (or null) of
// objects, and collects the object fields with their observed types.
func detectRecords(values []string) ([]FieldMeta, bool) {
	if len(values) == 0 {
		return nil, false
	}

	types := make(map[string]string)
	counts := make(map[string]int)
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if !strings.HasPrefix(trimmed, "[") && trimmed != "null" {
			return nil, false
		}

		dec := json.NewDecoder(strings.NewReader(trimmed))
		dec.UseNumber()
		var elems []map[string]any
		if err := dec.Decode(&elems); err != nil {
			return nil, false
		}
		for _, obj := range elems {
			for name, raw := range obj {
				counts[name]++
				t := fieldType(raw)
				if prev, seen := types[name]; seen && prev != t {
					t = FieldOther
				}
				types[name] = t
			}
		}
	}

	fields := make([]FieldMeta, 0, len(types))
	for name, t := range types {
		fields = append(fields, FieldMeta{Name: name, Type: t, Occurrences: counts[name]})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields, true
}

func fieldType(v any) string {
	switch val := v.(type) {
	case string:
		return FieldString
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return FieldInteger
		}
	}
	return FieldOther
}

func looksLikeID(key string) bool {
	k := strings.ToLower(key)
	return k == "id" || strings.HasSuffix(k, "_id")
}

func allIntegers(values []string) bool {
	for _, v := range values {
		if _, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err != nil {
			return false
		}
	}
	return true
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// toDisplayName cleans a header for human display.
// "user_id" → "User Id", "personas" → "Personas"
func toDisplayName(s string) string {
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// collectSamples picks up to maxSamples representative values.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}

	// Sort for deterministic output
	sort.Strings(samples)

	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
