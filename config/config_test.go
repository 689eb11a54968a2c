package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/h2grid/core/model"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `storage:
  battery_capacity_mwh: 5
  battery_initial_soc_mwh: 2.5
  fuel_cell_max_mw: 1.2
  hydrogen_initial_soc_mwh: 12
  hydrogen_capacity_mwh: 20
  hydrogen_limit: clamp
summary:
  required_mwh: 30
policy:
  combined_surplus_label: true
metrics:
  prometheus_addr: ":9200"
  sinks:
    - type: "nop"
logging:
  level: debug
batch:
  workers: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"battery_capacity", cfg.Storage.BatteryCapacityMWh, 5.0},
		{"battery_initial", cfg.Storage.BatteryInitialSoCMWh, 2.5},
		{"fuel_cell", cfg.Storage.FuelCellMaxMW, 1.2},
		{"hydrogen_initial", cfg.Storage.HydrogenInitialSoCMWh, 12.0},
		{"hydrogen_capacity", cfg.Storage.HydrogenCapacityMWh, 20.0},
		{"hydrogen_limit", cfg.Storage.HydrogenLimit, model.HydrogenClamp},
		{"required", cfg.Summary.RequiredMWh, 30.0},
		{"marginal_ratio default", cfg.Summary.MarginalRatio, 0.8},
		{"combined label", cfg.Policy.CombinedSurplusLabel, true},
		{"prometheus_addr", cfg.Metrics.PrometheusAddr, ":9200"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"log level", cfg.Logging.Level, "debug"},
		{"workers", cfg.Batch.Workers, 2},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
	assert.Len(t, cfg.Options(), 3)
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	path := writeFile(t, "config.json", `{"summary": {"marginal_ratio": 0.75}}`)
	t.Setenv("K_STORAGE__BATTERY_CAPACITY_MWH", "8")
	t.Setenv("K_BATCH__WORKERS", "3")
	t.Setenv("K_POLICY__COMBINED_SURPLUS_LABEL", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Storage.BatteryCapacityMWh)
	assert.Equal(t, 3.0, cfg.Storage.BatteryInitialSoCMWh)
	assert.Equal(t, 1.5, cfg.Storage.FuelCellMaxMW)
	assert.Equal(t, 3, cfg.Batch.Workers)
	assert.Equal(t, 36.0, cfg.Summary.RequiredMWh)
	assert.Equal(t, 0.75, cfg.Summary.MarginalRatio)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":9100", cfg.Metrics.PrometheusAddr)
	assert.True(t, cfg.Policy.CombinedSurplusLabel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "storage:\n  fuel_cell_max_mw: 2\nbatch:\n  workers: 2\n")
	t.Setenv("K_STORAGE__FUEL_CELL_MAX_MW", "0.5")
	t.Setenv("K_SUMMARY__REQUIRED_MWH", "40")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Storage.FuelCellMaxMW)
	assert.Equal(t, 40.0, cfg.Summary.RequiredMWh)
	assert.Equal(t, 2, cfg.Batch.Workers)
}

func TestLoad_Precision(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", "summary:\n  precision: 1\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Summary.Precision)
	assert.Equal(t, int32(1), *cfg.Summary.Precision)
	assert.Len(t, cfg.Options(), 3)

	cfg, err = Load(writeFile(t, "default.yaml", "summary:\n  required_mwh: 30\n"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Summary.Precision)
	assert.Len(t, cfg.Options(), 2)

	_, err = Load(writeFile(t, "bad.yaml", "summary:\n  precision: -1\n"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeFile(t, "config.toml", ""))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "storage:\n  battery_initial_soc_mwh: 9\n"))
	assert.ErrorIs(t, err, model.ErrInvalidConfig)

	_, err = Load(writeFile(t, "ratio.yaml", "summary:\n  marginal_ratio: 1.5\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "log.yaml", "logging:\n  level: loud\n"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, model.DefaultStorageConfig(), cfg.Storage)
	assert.Equal(t, 4, cfg.Batch.Workers)
}
