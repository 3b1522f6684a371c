package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: CROSSTAB_FORMAT, CROSSTAB_COLUMNS_GROUP_KEY, ...
const EnvPrefix = "CROSSTAB"

// Config is the CLI configuration. Precedence: flag > env > file > default.
type Config struct {
	Format       string        `mapstructure:"format"`
	Title        string        `mapstructure:"title"`
	Columns      ColumnsConfig `mapstructure:"columns"`
	Fields       FieldsConfig  `mapstructure:"fields"`
	UnknownLabel string        `mapstructure:"unknown_label"`
	Log          LogConfig     `mapstructure:"log"`
}

// ColumnsConfig names the input columns.
type ColumnsConfig struct {
	GroupKey      string `mapstructure:"group_key"`
	Persona       string `mapstructure:"persona"`
	Relationships string `mapstructure:"relationships"`
}

// FieldsConfig names the fields read from each relationship object.
type FieldsConfig struct {
	Count string `mapstructure:"count"`
	Title string `mapstructure:"title"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Format: "text",
		Columns: ColumnsConfig{
			GroupKey:      "user_id",
			Persona:       "personas",
			Relationships: "relationships",
		},
		Fields: FieldsConfig{
			Count: "count",
			Title: "title",
		},
		UnknownLabel: "Unknown",
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "pretty", "yaml", "toml", "csv"}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"format":        "format",
	"title":         "title",
	"group-key":     "columns.group_key",
	"column":        "columns.persona",
	"json-column":   "columns.relationships",
	"count-field":   "fields.count",
	"title-field":   "fields.title",
	"unknown-label": "unknown_label",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

// Load resolves the configuration. path may be empty; a named file that does
// not exist is an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("format", def.Format)
	v.SetDefault("title", def.Title)
	v.SetDefault("columns.group_key", def.Columns.GroupKey)
	v.SetDefault("columns.persona", def.Columns.Persona)
	v.SetDefault("columns.relationships", def.Columns.Relationships)
	v.SetDefault("fields.count", def.Fields.Count)
	v.SetDefault("fields.title", def.Fields.Title)
	v.SetDefault("unknown_label", def.UnknownLabel)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "failed to bind flag --%s", name)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if !isFormat(c.Format) {
		return &ConfigError{Field: "format", Message: "unsupported format " + c.Format}
	}
	if c.Columns.GroupKey == "" {
		return &ConfigError{Field: "columns.group_key", Message: "must not be empty"}
	}
	if c.Fields.Count == "" || c.Fields.Title == "" {
		return &ConfigError{Field: "fields", Message: "count and title must not be empty"}
	}
	return nil
}

func isFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
