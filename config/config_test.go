package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// No config file anywhere near the temp working directory.
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sarima", cfg.Model.Backend)
	assert.Equal(t, 12, cfg.Model.SeasonalPeriod)
	assert.Equal(t, 5, cfg.Model.MaxOrder)
	assert.Equal(t, "aic", cfg.Model.Criterion)
	assert.Equal(t, 0.85, cfg.Model.Threshold)
	assert.Equal(t, 2, cfg.Forecast.YearsFuture)
	assert.Equal(t, 0.95, cfg.Forecast.Confidence)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "housecast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  path: prices.csv
model:
  max_order: 3
  criterion: bic
forecast:
  years_future: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prices.csv", cfg.Data.Path)
	assert.Equal(t, 3, cfg.Model.MaxOrder)
	assert.Equal(t, "bic", cfg.Model.Criterion)
	assert.Equal(t, 5, cfg.Forecast.YearsFuture)
	// Untouched fields keep their defaults.
	assert.Equal(t, 0.85, cfg.Model.Threshold)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOUSECAST_MODEL_MAX_ORDER", "2")
	t.Setenv("HOUSECAST_FORECAST_YEARS_FUTURE", "4")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Model.MaxOrder)
	assert.Equal(t, 4, cfg.Forecast.YearsFuture)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "housecast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model:
  threshold: 1.5
`), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "threshold")
}

func TestLoadRejectsUnknownCriterion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "housecast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model:
  criterion: hqic
`), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "criterion")
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}
