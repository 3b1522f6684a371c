package engine

import "go.uber.org/zap"

// ============================================================================
// ENGINE OPTIONS — Functional options for Personas/Relationships/Execute
// ============================================================================

// DefaultUnknownLabel is the category that null values are counted under.
const DefaultUnknownLabel = "Unknown"

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	UnknownLabel string
	Filters      Filters
	Logger       *zap.Logger
}

// WithUnknownLabel overrides the sentinel category used for null values.
// An empty label keeps the default.
func WithUnknownLabel(label string) Option {
	return func(c *config) {
		if label != "" {
			c.UnknownLabel = label
		}
	}
}

// WithFilters restricts the source rows before pivoting.
func WithFilters(f Filters) Option {
	return func(c *config) {
		c.Filters = f
	}
}

// WithLogger sets the logger for debug traces. The engine is silent by default.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		UnknownLabel: DefaultUnknownLabel,
		Logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
