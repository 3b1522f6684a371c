package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/crosstab/internal/config"
)

const version = "0.3.0"

var (
	// configPath is the --config flag value
	configPath string
	// outPath is the --out flag value
	outPath string
)

var rootCmd = &cobra.Command{
	Use:   "crosstab",
	Short: "Crosstab - pivot categorical and JSON-list columns per group",
	Long: `Crosstab turns a table with one row per event into one row per group.

  personas        count category occurrences per group (nulls as "Unknown")
  relationships   sum counts per title from a column of JSON lists
  describe        classify the columns of a CSV and suggest transforms
  demo            run both transforms on the built-in four-row dataset`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("crosstab {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (yaml, toml or json)")
	pf.StringVar(&outPath, "out", "", "Write output to file instead of stdout")
	pf.String("format", "text", "Output format: text, json, pretty, yaml, toml, csv")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("log-format", "console", "Log format: console, json")
	pf.String("unknown-label", "Unknown", "Category that null values are counted under")

	rootCmd.AddCommand(personasCmd, relationshipsCmd, describeCmd, demoCmd)
}

// session carries what every subcommand needs after flag parsing.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
}

// newSession resolves configuration for cmd and builds the logger.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration resolved",
		zap.String("format", cfg.Format),
		zap.String("config", configPath))
	return &session{cfg: cfg, logger: logger}, nil
}

// output opens the destination writer: --out when set, else the command's stdout.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outPath == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create output file")
	}
	return f, f.Close, nil
}

// readInput reads the --file argument.
func readInput(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("--file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	return data, nil
}
