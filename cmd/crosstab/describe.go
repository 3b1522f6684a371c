package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/crosstab/engine"
	"github.com/spektr-org/crosstab/schema"
)

// description is what describe prints: the discovered schema plus the
// transforms it suggests.
type description struct {
	Schema      *schema.Config `json:"schema" yaml:"schema" toml:"schema"`
	Suggestions []engine.Spec  `json:"suggestions" yaml:"suggestions" toml:"suggestions"`
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Classify the columns of a CSV and suggest transforms",
	Example: `  crosstab describe --file users.csv --format yaml
  crosstab describe --file users.csv --max-categories 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		opts := schema.DefaultDiscoverOptions()
		opts.Name = path
		opts.SampleSize, _ = cmd.Flags().GetInt("sample-size")
		opts.MaxCategoryCardinality, _ = cmd.Flags().GetInt("max-categories")

		cfg, err := schema.DiscoverFromCSV(data, opts)
		if err != nil {
			return err
		}
		suggestions := cfg.Suggest()
		s.logger.Info("schema discovered",
			zap.String("file", path),
			zap.Int("columns", len(cfg.Columns)),
			zap.Int("suggestions", len(suggestions)))

		w, closeOut, err := output(cmd)
		if err != nil {
			return err
		}
		if err := writeDescription(w, s.cfg.Format, &description{Schema: cfg, Suggestions: suggestions}); err != nil {
			closeOut()
			return err
		}
		return closeOut()
	},
}

func init() {
	f := describeCmd.Flags()
	f.String("file", "", "Path to CSV data file (required)")
	f.Int("sample-size", 1000, "Rows inspected per column (-1 = all)")
	f.Int("max-categories", 50, "Distinct values above which a text column is not a category")
}
