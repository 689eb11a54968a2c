package model

import "fmt"

// Action classifies what the storage pair did during an hour.
type Action int

const (
	ActionChargingOnly Action = iota
	ActionChargingHydrogen
	ActionBatteryOnly
	ActionBatteryFuelCell
)

var actionNames = map[Action]string{
	ActionChargingOnly:     "charging only",
	ActionChargingHydrogen: "charging + hydrogen production",
	ActionBatteryOnly:      "battery only",
	ActionBatteryFuelCell:  "battery + fuel-cell backup",
}

// String returns the display label of the action.
func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// Surplus reports whether the action belongs to the surplus branch.
func (a Action) Surplus() bool {
	return a == ActionChargingOnly || a == ActionChargingHydrogen
}

// MarshalText encodes the action as its display label.
func (a Action) MarshalText() ([]byte, error) {
	n, ok := actionNames[a]
	if !ok {
		return nil, fmt.Errorf("unknown action %d", int(a))
	}
	return []byte(n), nil
}

// UnmarshalText parses a display label.
func (a *Action) UnmarshalText(b []byte) error {
	for k, v := range actionNames {
		if v == string(b) {
			*a = k
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", string(b))
}

// DispatchRecord is the outcome of one simulated hour. SoC fields hold the
// levels after the hour's flows were applied.
type DispatchRecord struct {
	Hour                 int     `json:"hour"`
	GenerationMW         float64 `json:"generation_mw"`
	SurplusMW            float64 `json:"surplus_mw"`
	BatteryChargeMWh     float64 `json:"battery_charge_mwh"`
	BatteryDischargeMWh  float64 `json:"battery_discharge_mwh"`
	FuelCellDischargeMWh float64 `json:"fuel_cell_discharge_mwh"`
	HydrogenProducedMWh  float64 `json:"hydrogen_produced_mwh"`
	BatterySoCMWh        float64 `json:"battery_soc_mwh"`
	HydrogenSoCMWh       float64 `json:"hydrogen_soc_mwh"`
	// CurtailedMWh is surplus that neither the battery nor a bounded tank could absorb.
	CurtailedMWh float64 `json:"curtailed_mwh"`
	// UnservedMWh is shortfall left after the battery and the fuel cell.
	UnservedMWh float64 `json:"unserved_mwh"`
	Action      Action  `json:"action"`
}
