package microgrid

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kilianp07/h2grid/core/model"
)

// Result is the outcome of a simulated day.
type Result struct {
	Records []model.DispatchRecord `json:"records"`
	Summary model.DaySummary       `json:"summary"`
}

// Simulator runs days with a fixed set of options. It holds no state between
// calls and is safe for concurrent use.
type Simulator struct {
	s settings
}

// New returns a Simulator configured with opts.
func New(opts ...Option) *Simulator {
	s := defaultSettings()
	for _, o := range opts {
		o(&s)
	}
	return &Simulator{s: s}
}

// Simulate is a shorthand for New(opts...).Simulate(samples, cfg).
func Simulate(samples []model.HourlySample, cfg model.StorageConfig, opts ...Option) (Result, error) {
	return New(opts...).Simulate(samples, cfg)
}

// SimulateSeries converts aligned series to samples and simulates them.
func (sim *Simulator) SimulateSeries(series model.Series, cfg model.StorageConfig) (Result, error) {
	samples, err := series.Samples()
	if err != nil {
		return Result{}, err
	}
	return sim.Simulate(samples, cfg)
}

// Simulate validates the inputs and folds Step over the day. Records are
// rounded for display; the state carried between hours is not.
func (sim *Simulator) Simulate(samples []model.HourlySample, cfg model.StorageConfig) (Result, error) {
	if err := ValidateSamples(samples); err != nil {
		return Result{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if sim.s.requiredMWh <= 0 || sim.s.marginalRatio <= 0 || sim.s.marginalRatio > 1 {
		return Result{}, fmt.Errorf("summary thresholds required=%g ratio=%g: %w",
			sim.s.requiredMWh, sim.s.marginalRatio, model.ErrInvalidConfig)
	}

	raw := make([]model.DispatchRecord, 0, len(samples))
	state := InitialState(cfg)
	for _, smp := range samples {
		next, rec, err := Step(state, smp, cfg)
		if err != nil {
			return Result{}, err
		}
		if sim.s.combinedLabel && rec.Action.Surplus() {
			rec.Action = model.ActionChargingHydrogen
		}
		sim.s.log.Debugw("dispatch hour", map[string]any{
			"hour":         rec.Hour,
			"surplus_mw":   rec.SurplusMW,
			"battery_soc":  rec.BatterySoCMWh,
			"hydrogen_soc": rec.HydrogenSoCMWh,
			"action":       rec.Action.String(),
		})
		raw = append(raw, rec)
		state = next
	}

	summary := sim.summarize(samples, raw, cfg)
	records := make([]model.DispatchRecord, len(raw))
	for i, r := range raw {
		records[i] = sim.round(r)
	}
	return Result{Records: records, Summary: summary}, nil
}

func (sim *Simulator) round(r model.DispatchRecord) model.DispatchRecord {
	r.GenerationMW = roundTo(r.GenerationMW, sim.s.precision)
	r.SurplusMW = roundTo(r.SurplusMW, sim.s.precision)
	r.BatteryChargeMWh = roundTo(r.BatteryChargeMWh, sim.s.precision)
	r.BatteryDischargeMWh = roundTo(r.BatteryDischargeMWh, sim.s.precision)
	r.FuelCellDischargeMWh = roundTo(r.FuelCellDischargeMWh, sim.s.precision)
	r.HydrogenProducedMWh = roundTo(r.HydrogenProducedMWh, sim.s.precision)
	r.BatterySoCMWh = roundTo(r.BatterySoCMWh, sim.s.precision)
	r.HydrogenSoCMWh = roundTo(r.HydrogenSoCMWh, sim.s.precision)
	r.CurtailedMWh = roundTo(r.CurtailedMWh, sim.s.precision)
	r.UnservedMWh = roundTo(r.UnservedMWh, sim.s.precision)
	return r
}

func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
