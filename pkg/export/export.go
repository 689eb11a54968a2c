package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/h2grid/core/microgrid"
	"github.com/kilianp07/h2grid/core/model"
)

var recordHeader = []string{
	"hour", "generation_mw", "surplus_mw", "battery_charge_mwh", "battery_discharge_mwh",
	"fuel_cell_discharge_mwh", "hydrogen_produced_mwh", "battery_soc_mwh", "hydrogen_soc_mwh",
	"curtailed_mwh", "unserved_mwh", "action",
}

// WriteJSON writes the simulated day to w in JSON format.
func WriteJSON(w io.Writer, res microgrid.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes one row per dispatched hour to w.
func WriteCSV(w io.Writer, records []model.DispatchRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Hour),
			formatFloat(r.GenerationMW),
			formatFloat(r.SurplusMW),
			formatFloat(r.BatteryChargeMWh),
			formatFloat(r.BatteryDischargeMWh),
			formatFloat(r.FuelCellDischargeMWh),
			formatFloat(r.HydrogenProducedMWh),
			formatFloat(r.BatterySoCMWh),
			formatFloat(r.HydrogenSoCMWh),
			formatFloat(r.CurtailedMWh),
			formatFloat(r.UnservedMWh),
			r.Action.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
