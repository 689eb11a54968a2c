package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeries_Samples(t *testing.T) {
	s := Series{PV: []float64{1, 2}, Wind: []float64{0.5, 0}, Load: []float64{1, 1}}
	got, err := s.Samples()
	require.NoError(t, err)
	assert.Equal(t, []HourlySample{
		{Hour: 0, PVMW: 1, WindMW: 0.5, LoadMW: 1},
		{Hour: 1, PVMW: 2, WindMW: 0, LoadMW: 1},
	}, got)
	assert.Equal(t, 1.5, got[0].Generation())

	s.Load = s.Load[:1]
	_, err = s.Samples()
	assert.ErrorIs(t, err, ErrInvalidInputShape)
}

func TestStorageConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StorageConfig)
		field  string
	}{
		{"default is valid", func(*StorageConfig) {}, ""},
		{"zero capacity", func(c *StorageConfig) { c.BatteryCapacityMWh = 0 }, "battery_capacity_mwh"},
		{"soc above capacity", func(c *StorageConfig) { c.BatteryInitialSoCMWh = 6.5 }, "battery_initial_soc_mwh"},
		{"negative soc", func(c *StorageConfig) { c.BatteryInitialSoCMWh = -1 }, "battery_initial_soc_mwh"},
		{"zero fuel cell", func(c *StorageConfig) { c.FuelCellMaxMW = 0 }, "fuel_cell_max_mw"},
		{"negative hydrogen", func(c *StorageConfig) { c.HydrogenInitialSoCMWh = -2 }, "hydrogen_initial_soc_mwh"},
		{"negative tank", func(c *StorageConfig) { c.HydrogenCapacityMWh = -1 }, "hydrogen_capacity_mwh"},
		{"unknown policy", func(c *StorageConfig) { c.HydrogenLimit = "spill" }, "hydrogen_limit"},
		{"hydrogen above tank", func(c *StorageConfig) { c.HydrogenCapacityMWh = 5 }, "hydrogen_initial_soc_mwh"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultStorageConfig()
			tc.mutate(&c)
			err := c.Validate()
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestStorageConfig_Limit(t *testing.T) {
	assert.Equal(t, HydrogenUnbounded, StorageConfig{}.Limit())
	assert.Equal(t, HydrogenClamp, StorageConfig{HydrogenLimit: HydrogenClamp}.Limit())
	assert.False(t, StorageConfig{}.Bounded())
}

func TestAction_JSON(t *testing.T) {
	b, err := json.Marshal(DispatchRecord{Hour: 4, Action: ActionBatteryFuelCell})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"action":"battery + fuel-cell backup"`)

	var rec DispatchRecord
	require.NoError(t, json.Unmarshal(b, &rec))
	assert.Equal(t, ActionBatteryFuelCell, rec.Action)

	var a Action
	assert.Error(t, a.UnmarshalText([]byte("idle")))
	assert.Equal(t, "unknown", Action(99).String())
}

func TestSufficiency_String(t *testing.T) {
	assert.Equal(t, "sufficient", Sufficient.String())
	assert.Equal(t, "marginal", Marginal.String())
	assert.Equal(t, "insufficient", Insufficient.String())
	b, err := json.Marshal(DaySummary{Status: Marginal})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"status":"marginal"`)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Kind: ErrNegativeValue, Field: "pv_mw", Hour: 3, Value: -1}
	assert.Equal(t, "negative value: pv_mw at hour 3: -1", err.Error())
}
