package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.001, cfg.Solver.Tolerance)
	assert.Equal(t, 1000, cfg.Solver.MaxIterations)
	assert.Equal(t, 1, cfg.Batch.Workers)

	// DMO report layout
	assert.Equal(t, 0, cfg.Layout.ISIN)
	assert.Equal(t, 1, cfg.Layout.Desc)
	assert.Equal(t, 2, cfg.Layout.CleanPrice)
	assert.Equal(t, 3, cfg.Layout.DirtyPrice)
	assert.Equal(t, 7, cfg.Layout.MaturityDate)
	assert.Equal(t, -1, cfg.Layout.Ticker)

	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GILT_SOLVER_TOLERANCE", "0.0001")
	t.Setenv("GILT_BATCH_WORKERS", "8")
	t.Setenv("GILT_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.0001, cfg.Solver.Tolerance)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "solver:\n  tolerance: 0.01\n  max_iterations: 50\nlogging:\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.Solver.Tolerance)
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Untouched sections keep their defaults
	assert.Equal(t, 1, cfg.Batch.Workers)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("GILT_SOLVER_TOLERANCE", "-1")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("GILT_LOGGING_LEVEL", "loud")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoggerLevels(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.NotNil(t, cfg.Logger())
}
