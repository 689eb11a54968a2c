package microgrid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/h2grid/core/model"
)

func pilotStorage() model.StorageConfig {
	return model.StorageConfig{
		BatteryCapacityMWh:    6,
		BatteryInitialSoCMWh:  3,
		FuelCellMaxMW:         1.5,
		HydrogenInitialSoCMWh: 10,
	}
}

func constantSamples(t *testing.T, pv, wind, load float64) []model.HourlySample {
	t.Helper()
	s, err := model.Constant(pv, wind, load).Samples()
	require.NoError(t, err)
	return s
}
