package model

import (
	"fmt"
	"math"
)

// HydrogenLimit selects how the hydrogen tank bounds are enforced.
type HydrogenLimit string

const (
	// HydrogenUnbounded never caps production nor floors the fuel-cell draw.
	HydrogenUnbounded HydrogenLimit = "unbounded"
	// HydrogenClamp caps production at the tank capacity (when bounded) and
	// the fuel-cell draw at the stored hydrogen.
	HydrogenClamp HydrogenLimit = "clamp"
	// HydrogenError fails the simulation when production would overflow a
	// bounded tank or the fuel cell would draw it below zero.
	HydrogenError HydrogenLimit = "error"
)

// Valid reports whether l is a known policy. The empty value means unbounded.
func (l HydrogenLimit) Valid() bool {
	switch l {
	case "", HydrogenUnbounded, HydrogenClamp, HydrogenError:
		return true
	}
	return false
}

// StorageConfig describes the battery and hydrogen storage pair of the site.
type StorageConfig struct {
	BatteryCapacityMWh    float64 `json:"battery_capacity_mwh" yaml:"battery_capacity_mwh"`
	BatteryInitialSoCMWh  float64 `json:"battery_initial_soc_mwh" yaml:"battery_initial_soc_mwh"`
	FuelCellMaxMW         float64 `json:"fuel_cell_max_mw" yaml:"fuel_cell_max_mw"`
	HydrogenInitialSoCMWh float64 `json:"hydrogen_initial_soc_mwh" yaml:"hydrogen_initial_soc_mwh"`
	// HydrogenCapacityMWh is the tank size; 0 means the tank is unbounded.
	HydrogenCapacityMWh float64       `json:"hydrogen_capacity_mwh" yaml:"hydrogen_capacity_mwh"`
	HydrogenLimit       HydrogenLimit `json:"hydrogen_limit" yaml:"hydrogen_limit"`
}

// DefaultStorageConfig returns the pilot site sizing.
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		BatteryCapacityMWh:    6,
		BatteryInitialSoCMWh:  3,
		FuelCellMaxMW:         1.5,
		HydrogenInitialSoCMWh: 10,
		HydrogenLimit:         HydrogenUnbounded,
	}
}

// Bounded reports whether the hydrogen tank has a finite capacity.
func (c StorageConfig) Bounded() bool {
	return c.HydrogenCapacityMWh > 0
}

// Limit returns the effective hydrogen policy.
func (c StorageConfig) Limit() HydrogenLimit {
	if c.HydrogenLimit == "" {
		return HydrogenUnbounded
	}
	return c.HydrogenLimit
}

// Validate checks the capacities, rates and initial states of charge.
func (c StorageConfig) Validate() error {
	check := func(field string, v float64, ok bool) error {
		if math.IsNaN(v) || math.IsInf(v, 0) || !ok {
			return &ValidationError{Kind: ErrInvalidConfig, Field: field, Hour: -1, Value: v}
		}
		return nil
	}
	if err := check("battery_capacity_mwh", c.BatteryCapacityMWh, c.BatteryCapacityMWh > 0); err != nil {
		return err
	}
	if err := check("battery_initial_soc_mwh", c.BatteryInitialSoCMWh,
		c.BatteryInitialSoCMWh >= 0 && c.BatteryInitialSoCMWh <= c.BatteryCapacityMWh); err != nil {
		return err
	}
	if err := check("fuel_cell_max_mw", c.FuelCellMaxMW, c.FuelCellMaxMW > 0); err != nil {
		return err
	}
	if err := check("hydrogen_initial_soc_mwh", c.HydrogenInitialSoCMWh, c.HydrogenInitialSoCMWh >= 0); err != nil {
		return err
	}
	if err := check("hydrogen_capacity_mwh", c.HydrogenCapacityMWh, c.HydrogenCapacityMWh >= 0); err != nil {
		return err
	}
	if !c.HydrogenLimit.Valid() {
		return &ValidationError{Kind: ErrInvalidConfig, Field: "hydrogen_limit", Hour: -1,
			Msg: fmt.Sprintf("unknown policy %q", string(c.HydrogenLimit))}
	}
	if c.Bounded() && c.HydrogenInitialSoCMWh > c.HydrogenCapacityMWh {
		return &ValidationError{Kind: ErrInvalidConfig, Field: "hydrogen_initial_soc_mwh", Hour: -1,
			Msg: fmt.Sprintf("%g exceeds tank capacity %g", c.HydrogenInitialSoCMWh, c.HydrogenCapacityMWh)}
	}
	return nil
}
