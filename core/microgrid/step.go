package microgrid

import (
	"fmt"
	"math"

	"github.com/kilianp07/h2grid/core/model"
)

// State is the storage level carried from one hour to the next.
type State struct {
	BatterySoCMWh  float64
	HydrogenSoCMWh float64
}

// InitialState returns the storage levels at the start of the day.
func InitialState(cfg model.StorageConfig) State {
	return State{BatterySoCMWh: cfg.BatteryInitialSoCMWh, HydrogenSoCMWh: cfg.HydrogenInitialSoCMWh}
}

// Step dispatches one hour. It is pure: the returned record holds unrounded
// flows and the post-update levels, and prev is left untouched. Energy and
// power are interchangeable because every step lasts one hour.
func Step(prev State, s model.HourlySample, cfg model.StorageConfig) (State, model.DispatchRecord, error) {
	gen := s.Generation()
	surplus := gen - s.LoadMW
	rec := model.DispatchRecord{Hour: s.Hour, GenerationMW: gen, SurplusMW: surplus}
	next := prev

	if surplus >= 0 {
		charge := math.Min(surplus, cfg.BatteryCapacityMWh-prev.BatterySoCMWh)
		if charge < 0 {
			charge = 0
		}
		next.BatterySoCMWh = math.Min(prev.BatterySoCMWh+charge, cfg.BatteryCapacityMWh)

		excess := surplus - charge
		produced := excess
		if cfg.Limit() != model.HydrogenUnbounded && cfg.Bounded() {
			room := math.Max(cfg.HydrogenCapacityMWh-prev.HydrogenSoCMWh, 0)
			if produced > room {
				if cfg.Limit() == model.HydrogenError {
					return prev, rec, fmt.Errorf("hour %d: producing %g MWh with %g MWh left: %w",
						s.Hour, produced, room, model.ErrHydrogenOverflow)
				}
				produced = room
			}
		}
		next.HydrogenSoCMWh = prev.HydrogenSoCMWh + produced

		rec.BatteryChargeMWh = charge
		rec.HydrogenProducedMWh = produced
		rec.CurtailedMWh = excess - produced
		rec.Action = model.ActionChargingOnly
		if produced > 0 {
			rec.Action = model.ActionChargingHydrogen
		}
	} else {
		shortfall := -surplus
		discharge := math.Min(shortfall, prev.BatterySoCMWh)
		next.BatterySoCMWh = math.Max(prev.BatterySoCMWh-discharge, 0)

		remaining := shortfall - discharge
		var fuelCell float64
		if remaining > 0 {
			fuelCell = math.Min(remaining, cfg.FuelCellMaxMW)
		}
		if cfg.Limit() != model.HydrogenUnbounded && fuelCell > prev.HydrogenSoCMWh {
			if cfg.Limit() == model.HydrogenError {
				return prev, rec, fmt.Errorf("hour %d: drawing %g MWh from %g MWh: %w",
					s.Hour, fuelCell, prev.HydrogenSoCMWh, model.ErrHydrogenDepleted)
			}
			fuelCell = math.Max(prev.HydrogenSoCMWh, 0)
		}
		next.HydrogenSoCMWh = prev.HydrogenSoCMWh - fuelCell

		rec.BatteryDischargeMWh = discharge
		rec.FuelCellDischargeMWh = fuelCell
		rec.UnservedMWh = remaining - fuelCell
		rec.Action = model.ActionBatteryOnly
		if fuelCell > 0 {
			rec.Action = model.ActionBatteryFuelCell
		}
	}

	rec.BatterySoCMWh = next.BatterySoCMWh
	rec.HydrogenSoCMWh = next.HydrogenSoCMWh
	return next, rec, nil
}
