package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_Defaults(t *testing.T) {
	// No file, no env: struct defaults apply.
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "Measurement", cfg.Columns.GroupKey)
	assert.Equal(t, "Percentage Loss", cfg.Columns.Value)
	assert.Equal(t, "Time,Metric,Value,Measurement", cfg.Columns.HeaderPrefix)
	assert.Equal(t, "Time", cfg.Columns.SheetCellPrefix)
	assert.Equal(t, "reports", cfg.Report.OutputDir)
	assert.Equal(t, 1, cfg.Report.Workers)
}

func TestLoadFromFile_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lossval.yaml")
	content := `
logging:
  level: debug
  output: both
columns:
  group_key: Sensor
  value: Loss %
report:
  output_dir: out
  workers: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "Sensor", cfg.Columns.GroupKey)
	assert.Equal(t, "Loss %", cfg.Columns.Value)
	// Unset file fields still pick up defaults.
	assert.Equal(t, "Time,Metric,Value,Measurement", cfg.Columns.HeaderPrefix)
	assert.Equal(t, "out", cfg.Report.OutputDir)
	assert.Equal(t, 4, cfg.Report.Workers)
}

func TestLoadFromFile_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lossval.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644))

	t.Setenv("LOSSVAL_LOGGING_LEVEL", "error")
	t.Setenv("LOSSVAL_COLUMNS_GROUP_KEY", "Channel")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "Channel", cfg.Columns.GroupKey)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad level", content: "logging:\n  level: verbose\n"},
		{name: "bad output", content: "logging:\n  output: syslog\n"},
		{name: "negative workers", content: "report:\n  workers: -2\n"},
		{name: "malformed yaml", content: "logging: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lossval.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadFromFile(path)
			assert.Error(t, err)
		})
	}
}

func TestRequiredColumns(t *testing.T) {
	c := ColumnConfig{GroupKey: "Measurement", Value: "Percentage Loss"}
	assert.Equal(t, []string{"Measurement", "Percentage Loss"}, c.RequiredColumns())
}
