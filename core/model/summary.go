package model

import "fmt"

// Sufficiency classifies the renewable energy of a day against the need.
type Sufficiency int

const (
	Insufficient Sufficiency = iota
	Marginal
	Sufficient
)

// String returns the status label.
func (s Sufficiency) String() string {
	switch s {
	case Sufficient:
		return "sufficient"
	case Marginal:
		return "marginal"
	case Insufficient:
		return "insufficient"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status as its label.
func (s Sufficiency) MarshalText() ([]byte, error) {
	if s < Insufficient || s > Sufficient {
		return nil, fmt.Errorf("unknown sufficiency %d", int(s))
	}
	return []byte(s.String()), nil
}

// Rating is a coarse health label for a storage reservoir.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingModerate  Rating = "moderate"
	RatingLow       Rating = "low"
	RatingFull      Rating = "full"
	RatingNormal    Rating = "normal"
	RatingUnknown   Rating = "unknown"
)

// DaySummary aggregates a simulated day.
type DaySummary struct {
	TotalPVMWh        float64     `json:"total_pv_mwh"`
	TotalWindMWh      float64     `json:"total_wind_mwh"`
	TotalRenewableMWh float64     `json:"total_renewable_mwh"`
	RequiredMWh       float64     `json:"required_mwh"`
	Status            Sufficiency `json:"status"`

	BatteryChargedMWh     float64 `json:"battery_charged_mwh"`
	BatteryDischargedMWh  float64 `json:"battery_discharged_mwh"`
	FuelCellDischargedMWh float64 `json:"fuel_cell_discharged_mwh"`
	HydrogenProducedMWh   float64 `json:"hydrogen_produced_mwh"`
	CurtailedMWh          float64 `json:"curtailed_mwh"`
	UnservedMWh           float64 `json:"unserved_mwh"`
	FuelCellHours         int     `json:"fuel_cell_hours"`

	FinalBatterySoCMWh  float64 `json:"final_battery_soc_mwh"`
	FinalHydrogenSoCMWh float64 `json:"final_hydrogen_soc_mwh"`
	MinBatterySoCMWh    float64 `json:"min_battery_soc_mwh"`
	MaxBatterySoCMWh    float64 `json:"max_battery_soc_mwh"`

	BatteryRating  Rating `json:"battery_rating"`
	HydrogenRating Rating `json:"hydrogen_rating"`
}
