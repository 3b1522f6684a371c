package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/crosstab/engine"
	"github.com/spektr-org/crosstab/helpers"
)

// ============================================================================
// TRANSFORM COMMANDS — personas / relationships over a CSV file
// ============================================================================

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "Count category occurrences per group",
	Example: `  crosstab personas --file users.csv
  crosstab personas --file users.csv --group-key account_id --column segment --format csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, engine.KindPersonas)
	},
}

var relationshipsCmd = &cobra.Command{
	Use:   "relationships",
	Short: "Sum counts per title from a column of JSON lists",
	Example: `  crosstab relationships --file users.csv
  crosstab relationships --file users.csv --json-column links --count-field weight --title-field name`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, engine.KindRelationships)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{personasCmd, relationshipsCmd} {
		f := cmd.Flags()
		f.String("file", "", "Path to CSV data file (required)")
		f.String("group-key", "user_id", "Column to group by")
		f.String("title", "", "Table title (default: derived from the columns)")
		f.StringArray("filter", nil, "Keep rows where column matches: column=v1,v2 (repeatable)")
	}
	personasCmd.Flags().String("column", "personas", "Category column")
	relationshipsCmd.Flags().String("json-column", "relationships", "Column of JSON lists")
	relationshipsCmd.Flags().String("count-field", "count", "Integer field read from each element")
	relationshipsCmd.Flags().String("title-field", "title", "String field read from each element")
}

func runTransform(cmd *cobra.Command, kind string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.logger.Sync() //nolint:errcheck

	path, _ := cmd.Flags().GetString("file")
	data, err := readInput(path)
	if err != nil {
		return err
	}
	view, err := helpers.ParseCSV(data)
	if err != nil {
		return err
	}

	rawFilters, _ := cmd.Flags().GetStringArray("filter")
	filters, err := parseFilters(rawFilters)
	if err != nil {
		return err
	}

	spec := specFor(kind, s)
	s.logger.Info("running transform",
		zap.String("kind", spec.Kind),
		zap.String("file", path),
		zap.Int("rows", view.Len()))

	result, err := engine.Execute(spec, view,
		engine.WithUnknownLabel(s.cfg.UnknownLabel),
		engine.WithFilters(filters),
		engine.WithLogger(s.logger),
	)
	if err != nil {
		return errors.Wrapf(err, "%s failed", kind)
	}

	w, closeOut, err := output(cmd)
	if err != nil {
		return err
	}
	if err := writeResult(w, s.cfg.Format, result); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

// specFor builds the engine Spec for kind from resolved configuration.
func specFor(kind string, s *session) engine.Spec {
	spec := engine.Spec{
		Kind:     kind,
		GroupKey: s.cfg.Columns.GroupKey,
		Title:    s.cfg.Title,
	}
	switch kind {
	case engine.KindPersonas:
		spec.Column = s.cfg.Columns.Persona
	case engine.KindRelationships:
		spec.Column = s.cfg.Columns.Relationships
		spec.CountField = s.cfg.Fields.Count
		spec.TitleField = s.cfg.Fields.Title
	}
	return engine.NormalizeSpec(spec)
}

// parseFilters turns "column=v1,v2" arguments into engine filters.
func parseFilters(args []string) (engine.Filters, error) {
	filters := engine.Filters{Columns: make(map[string][]string)}
	for _, arg := range args {
		column, values, ok := strings.Cut(arg, "=")
		column = strings.TrimSpace(column)
		if !ok || column == "" {
			return engine.Filters{}, errors.Errorf("invalid filter %q: want column=value[,value]", arg)
		}
		for _, v := range strings.Split(values, ",") {
			filters.Columns[column] = append(filters.Columns[column], strings.TrimSpace(v))
		}
	}
	return filters, nil
}
