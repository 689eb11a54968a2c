package microgrid

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/h2grid/core/logger"
	"github.com/kilianp07/h2grid/core/metrics"
	"github.com/kilianp07/h2grid/core/model"
)

// Scenario is one independent day to simulate.
type Scenario struct {
	Name    string
	Samples []model.HourlySample
	Storage model.StorageConfig
}

// Outcome pairs a scenario with its result. Err is set when the scenario was
// rejected; other scenarios of the batch are unaffected.
type Outcome struct {
	RunID    string
	Scenario string
	Result   Result
	Err      error
}

// Runner simulates independent scenarios concurrently and reports each run
// to a metrics sink. Hours of a single day are never parallelized.
type Runner struct {
	sim     *Simulator
	sink    metrics.MetricsSink
	log     logger.Logger
	workers int
	now     func() time.Time
}

// NewRunner returns a Runner. Nil sink or logger fall back to no-op
// implementations and workers below 1 means one worker.
func NewRunner(sim *Simulator, sink metrics.MetricsSink, log logger.Logger, workers int) *Runner {
	if sim == nil {
		sim = New()
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if workers < 1 {
		workers = 1
	}
	return &Runner{sim: sim, sink: sink, log: log, workers: workers, now: time.Now}
}

// Run simulates every scenario and returns outcomes in input order. It only
// fails when ctx is canceled before all scenarios were started.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) ([]Outcome, error) {
	out := make([]Outcome, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, sc := range scenarios {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = r.RunOne(sc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	if err := ctx.Err(); err != nil {
		return out, fmt.Errorf("batch interrupted: %w", err)
	}
	return out, nil
}

// RunOne simulates a single scenario and records it.
func (r *Runner) RunOne(sc Scenario) Outcome {
	id := uuid.NewString()
	start := r.now()
	res, err := r.sim.Simulate(sc.Samples, sc.Storage)
	elapsed := r.now().Sub(start)
	o := Outcome{RunID: id, Scenario: sc.Name, Result: res, Err: err}
	if err != nil {
		r.log.Warnf("scenario %s rejected: %v", sc.Name, err)
		if rec, ok := r.sink.(metrics.FailureRecorder); ok {
			if merr := rec.RecordFailure(metrics.FailureEvent{RunID: id, Scenario: sc.Name, Reason: err.Error(), Time: start}); merr != nil {
				r.log.Errorf("failure metrics error: %v", merr)
			}
		}
		return o
	}
	r.log.Infof("scenario %s: %s, renewable %.2f/%.2f MWh, unserved %.2f MWh",
		sc.Name, res.Summary.Status, res.Summary.TotalRenewableMWh, res.Summary.RequiredMWh, res.Summary.UnservedMWh)
	if merr := r.sink.RecordRun(metrics.RunEvent{
		RunID:    id,
		Scenario: sc.Name,
		Records:  res.Records,
		Summary:  res.Summary,
		Time:     start,
		Duration: elapsed,
	}); merr != nil {
		r.log.Errorf("metrics error: %v", merr)
	}
	return o
}
