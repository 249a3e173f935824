// Package config loads application configuration from a YAML file with
// environment variable overrides. Column names and the header signature are
// configuration, not literals baked into the pipeline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. LOSSVAL_LOGGING_LEVEL.
const EnvPrefix = "LOSSVAL"

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Columns ColumnConfig  `yaml:"columns" envconfig:"COLUMNS"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ColumnConfig names the columns and the header signature the ingestion
// layer looks for. The defaults match the loss validation export format.
type ColumnConfig struct {
	// GroupKey is the categorical column rows are grouped by.
	GroupKey string `yaml:"group_key" envconfig:"GROUP_KEY"`
	// Value is the numeric column that is cleaned and aggregated.
	Value string `yaml:"value" envconfig:"VALUE"`
	// HeaderPrefix marks the real header line inside a delimited text
	// source that may carry a metadata preamble.
	HeaderPrefix string `yaml:"header_prefix" envconfig:"HEADER_PREFIX"`
	// SheetCellPrefix marks the header row inside a workbook sheet by its
	// first cell.
	SheetCellPrefix string `yaml:"sheet_cell_prefix" envconfig:"SHEET_CELL_PREFIX"`
}

// ReportConfig contains report generation configuration
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	Title     string `yaml:"title" envconfig:"TITLE"`
	// Workers bounds parallel processing of independent input files.
	Workers int `yaml:"workers" envconfig:"WORKERS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/lossval.log",
		},
		Columns: ColumnConfig{
			GroupKey:        "Measurement",
			Value:           "Percentage Loss",
			HeaderPrefix:    "Time,Metric,Value,Measurement",
			SheetCellPrefix: "Time",
		},
		Report: ReportConfig{
			OutputDir: "reports",
			Title:     "Data Processing Report",
			Workers:   1,
		},
	}
}

// Load loads configuration from the config file (if present) with
// environment variables taking precedence.
func Load() (*Config, error) {
	return LoadFromFile(getConfigFilePath())
}

// LoadFromFile starts from the defaults, overlays the given YAML file if it
// exists, then applies environment overrides. Precedence: env > file >
// defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// RequiredColumns returns the columns the detected header must declare.
func (c *ColumnConfig) RequiredColumns() []string {
	return []string{c.GroupKey, c.Value}
}

// validate checks configuration invariants
func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}

	if c.Columns.GroupKey == "" {
		return fmt.Errorf("columns.group_key must not be empty")
	}
	if c.Columns.Value == "" {
		return fmt.Errorf("columns.value must not be empty")
	}
	if c.Columns.HeaderPrefix == "" {
		return fmt.Errorf("columns.header_prefix must not be empty")
	}
	if c.Report.Workers < 0 {
		return fmt.Errorf("report.workers must not be negative")
	}
	return nil
}

// getConfigFilePath returns the config file location: next to the
// executable, falling back to the working directory.
func getConfigFilePath() string {
	const name = "lossval.yaml"
	if exe, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(exe), name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return name
}
