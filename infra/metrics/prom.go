package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/h2grid/core/metrics"
	"github.com/kilianp07/h2grid/core/model"
)

// PromSink exposes the last simulated day of each scenario as Prometheus metrics.
type PromSink struct {
	runs       *prometheus.CounterVec
	failures   *prometheus.CounterVec
	duration   prometheus.Histogram
	batterySoC *prometheus.GaugeVec
	h2SoC      *prometheus.GaugeVec
	energy     *prometheus.CounterVec
	renewable  *prometheus.GaugeVec
	status     *prometheus.GaugeVec
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "microgrid_simulation_runs_total",
			Help: "Total number of simulated days",
		}, []string{"scenario", "status"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "microgrid_simulation_failures_total",
			Help: "Total number of rejected simulations",
		}, []string{"scenario"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "microgrid_simulation_duration_seconds",
			Help:    "Wall time of one simulated day",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		batterySoC: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "microgrid_battery_soc_mwh",
			Help: "Battery state of charge after each hour of the last run",
		}, []string{"scenario", "hour"}),
		h2SoC: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "microgrid_hydrogen_soc_mwh",
			Help: "Hydrogen state of charge after each hour of the last run",
		}, []string{"scenario", "hour"}),
		energy: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "microgrid_energy_mwh_total",
			Help: "Energy moved by the storage pair, by flow",
		}, []string{"scenario", "flow"}),
		renewable: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "microgrid_day_renewable_mwh",
			Help: "Renewable energy of the last simulated day",
		}, []string{"scenario"}),
		status: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "microgrid_day_status",
			Help: "Sufficiency of the last simulated day (0 insufficient, 1 marginal, 2 sufficient)",
		}, []string{"scenario"}),
	}

	var err error
	if s.runs, err = register(reg, s.runs); err != nil {
		return nil, err
	}
	if s.failures, err = register(reg, s.failures); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, s.duration); err != nil {
		return nil, err
	}
	if s.batterySoC, err = register(reg, s.batterySoC); err != nil {
		return nil, err
	}
	if s.h2SoC, err = register(reg, s.h2SoC); err != nil {
		return nil, err
	}
	if s.energy, err = register(reg, s.energy); err != nil {
		return nil, err
	}
	if s.renewable, err = register(reg, s.renewable); err != nil {
		return nil, err
	}
	if s.status, err = register(reg, s.status); err != nil {
		return nil, err
	}
	return s, nil
}

// register reuses an already registered collector of the same description.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates the per-hour gauges and the flow counters.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	sum := ev.Summary
	s.runs.WithLabelValues(ev.Scenario, sum.Status.String()).Inc()
	s.duration.Observe(ev.Duration.Seconds())
	for _, r := range ev.Records {
		h := hourLabel(r.Hour)
		s.batterySoC.WithLabelValues(ev.Scenario, h).Set(r.BatterySoCMWh)
		s.h2SoC.WithLabelValues(ev.Scenario, h).Set(r.HydrogenSoCMWh)
	}
	flows := map[string]float64{
		"battery_charge":      sum.BatteryChargedMWh,
		"battery_discharge":   sum.BatteryDischargedMWh,
		"fuel_cell_discharge": sum.FuelCellDischargedMWh,
		"hydrogen_produced":   sum.HydrogenProducedMWh,
		"curtailed":           sum.CurtailedMWh,
		"unserved":            sum.UnservedMWh,
	}
	for flow, v := range flows {
		if v > 0 {
			s.energy.WithLabelValues(ev.Scenario, flow).Add(v)
		}
	}
	s.renewable.WithLabelValues(ev.Scenario).Set(sum.TotalRenewableMWh)
	s.status.WithLabelValues(ev.Scenario).Set(statusValue(sum.Status))
	return nil
}

// RecordFailure counts rejected simulations.
func (s *PromSink) RecordFailure(ev coremetrics.FailureEvent) error {
	s.failures.WithLabelValues(ev.Scenario).Inc()
	return nil
}

func hourLabel(h int) string { return fmt.Sprintf("%02d", h) }

func statusValue(st model.Sufficiency) float64 {
	return float64(st)
}
