package metrics

import (
	"time"

	"github.com/kilianp07/h2grid/core/model"
)

// RunEvent describes one completed simulation.
type RunEvent struct {
	RunID    string
	Scenario string
	Records  []model.DispatchRecord
	Summary  model.DaySummary
	Time     time.Time
	Duration time.Duration
}

// MetricsSink records completed runs for observability purposes.
type MetricsSink interface {
	RecordRun(ev RunEvent) error
}

// FailureEvent captures a simulation rejected by validation or a tank policy.
type FailureEvent struct {
	RunID    string
	Scenario string
	Reason   string
	Time     time.Time
}

// FailureRecorder records failed runs.
type FailureRecorder interface {
	RecordFailure(ev FailureEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunEvent) error         { return nil }
func (NopSink) RecordFailure(FailureEvent) error { return nil }
