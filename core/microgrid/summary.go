package microgrid

import (
	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/h2grid/core/model"
)

// sumTolerance absorbs floating point noise when comparing summed energy to
// a threshold.
const sumTolerance = 1e-9

// Classify compares the renewable energy of a day with the need.
func Classify(totalMWh, requiredMWh, marginalRatio float64) model.Sufficiency {
	switch {
	case totalMWh >= requiredMWh-sumTolerance:
		return model.Sufficient
	case totalMWh >= requiredMWh*marginalRatio-sumTolerance:
		return model.Marginal
	default:
		return model.Insufficient
	}
}

// BatteryRating rates a battery from its state of charge in percent.
func BatteryRating(socPct float64) model.Rating {
	switch {
	case socPct > 70:
		return model.RatingExcellent
	case socPct > 40:
		return model.RatingModerate
	default:
		return model.RatingLow
	}
}

// HydrogenRating rates a hydrogen tank from its fill level in percent.
func HydrogenRating(fillPct float64) model.Rating {
	switch {
	case fillPct >= 90:
		return model.RatingFull
	case fillPct >= 50:
		return model.RatingNormal
	default:
		return model.RatingLow
	}
}

// Summarize computes the day totals of samples against the simulator's
// thresholds, without dispatching storage. Status is classified on exact
// totals; the returned totals are rounded like the records of Simulate.
func (sim *Simulator) Summarize(samples []model.HourlySample) model.DaySummary {
	pv := make([]float64, len(samples))
	wind := make([]float64, len(samples))
	for i, s := range samples {
		pv[i] = s.PVMW
		wind[i] = s.WindMW
	}
	sum := model.DaySummary{
		TotalPVMWh:   floats.Sum(pv),
		TotalWindMWh: floats.Sum(wind),
		RequiredMWh:  sim.s.requiredMWh,
	}
	sum.TotalRenewableMWh = sum.TotalPVMWh + sum.TotalWindMWh
	sum.Status = Classify(sum.TotalRenewableMWh, sim.s.requiredMWh, sim.s.marginalRatio)
	sum.TotalPVMWh = roundTo(sum.TotalPVMWh, sim.s.precision)
	sum.TotalWindMWh = roundTo(sum.TotalWindMWh, sim.s.precision)
	sum.TotalRenewableMWh = roundTo(sum.TotalRenewableMWh, sim.s.precision)
	return sum
}

func (sim *Simulator) summarize(samples []model.HourlySample, recs []model.DispatchRecord, cfg model.StorageConfig) model.DaySummary {
	sum := sim.Summarize(samples)

	soc := make([]float64, len(recs))
	for i, r := range recs {
		sum.BatteryChargedMWh += r.BatteryChargeMWh
		sum.BatteryDischargedMWh += r.BatteryDischargeMWh
		sum.FuelCellDischargedMWh += r.FuelCellDischargeMWh
		sum.HydrogenProducedMWh += r.HydrogenProducedMWh
		sum.CurtailedMWh += r.CurtailedMWh
		sum.UnservedMWh += r.UnservedMWh
		if r.FuelCellDischargeMWh > 0 {
			sum.FuelCellHours++
		}
		soc[i] = r.BatterySoCMWh
	}
	if n := len(recs); n > 0 {
		sum.FinalBatterySoCMWh = recs[n-1].BatterySoCMWh
		sum.FinalHydrogenSoCMWh = recs[n-1].HydrogenSoCMWh
		sum.MinBatterySoCMWh = floats.Min(soc)
		sum.MaxBatterySoCMWh = floats.Max(soc)
	}

	sum.BatteryRating = BatteryRating(cfg.BatteryInitialSoCMWh / cfg.BatteryCapacityMWh * 100)
	sum.HydrogenRating = model.RatingUnknown
	if cfg.Bounded() {
		sum.HydrogenRating = HydrogenRating(cfg.HydrogenInitialSoCMWh / cfg.HydrogenCapacityMWh * 100)
	}

	p := sim.s.precision
	for _, v := range []*float64{
		&sum.BatteryChargedMWh, &sum.BatteryDischargedMWh, &sum.FuelCellDischargedMWh,
		&sum.HydrogenProducedMWh, &sum.CurtailedMWh, &sum.UnservedMWh,
		&sum.FinalBatterySoCMWh, &sum.FinalHydrogenSoCMWh, &sum.MinBatterySoCMWh, &sum.MaxBatterySoCMWh,
	} {
		*v = roundTo(*v, p)
	}
	return sum
}
