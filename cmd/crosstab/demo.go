package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/crosstab/engine"
	"github.com/spektr-org/crosstab/internal/sample"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run both transforms on the built-in four-row dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.logger.Sync() //nolint:errcheck

		view, err := sample.View()
		if err != nil {
			return err
		}

		specs := []engine.Spec{
			{Kind: engine.KindPersonas, GroupKey: sample.ColumnUserID, Column: sample.ColumnPersonas},
			{Kind: engine.KindRelationships, GroupKey: sample.ColumnUserID, Column: sample.ColumnRelationships},
		}
		results := make([]*engine.Result, 0, len(specs))
		for _, spec := range specs {
			result, err := engine.Execute(spec, view,
				engine.WithUnknownLabel(s.cfg.UnknownLabel),
				engine.WithLogger(s.logger))
			if err != nil {
				return err
			}
			s.logger.Debug("demo transform done", zap.String("kind", result.Kind))
			results = append(results, result)
		}

		w, closeOut, err := output(cmd)
		if err != nil {
			return err
		}
		if err := writeResults(w, s.cfg.Format, results); err != nil {
			closeOut()
			return err
		}
		return closeOut()
	},
}
