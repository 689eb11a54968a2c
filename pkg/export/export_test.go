package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/h2grid/core/microgrid"
	"github.com/kilianp07/h2grid/core/model"
)

func TestWriteCSV(t *testing.T) {
	recs := []model.DispatchRecord{
		{Hour: 0, GenerationMW: 3, SurplusMW: 2, BatteryChargeMWh: 2, BatterySoCMWh: 5, HydrogenSoCMWh: 10, Action: model.ActionChargingOnly},
		{Hour: 1, GenerationMW: 0, SurplusMW: -2, BatteryDischargeMWh: 1, FuelCellDischargeMWh: 1, HydrogenSoCMWh: 9, Action: model.ActionBatteryFuelCell},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, recs))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "hour,generation_mw,surplus_mw"))
	assert.Equal(t, "0,3,2,2,0,0,0,5,10,0,0,charging only", lines[1])
	assert.Equal(t, "1,0,-2,0,1,1,0,0,9,0,0,battery + fuel-cell backup", lines[2])
}

func TestWriteJSON(t *testing.T) {
	res := microgrid.Result{
		Records: []model.DispatchRecord{{Hour: 0, Action: model.ActionBatteryOnly}},
		Summary: model.DaySummary{TotalRenewableMWh: 36, RequiredMWh: 36, Status: model.Sufficient},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	summary := decoded["summary"].(map[string]any)
	assert.Equal(t, "sufficient", summary["status"])
	recs := decoded["records"].([]any)
	assert.Equal(t, "battery only", recs[0].(map[string]any)["action"])
}
