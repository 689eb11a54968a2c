package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/h2grid/core/logger"
	coremetrics "github.com/kilianp07/h2grid/core/metrics"
	"github.com/kilianp07/h2grid/core/model"
	infralogger "github.com/kilianp07/h2grid/infra/logger"
)

// InfluxSink writes simulated days to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// HourPoint converts one dispatch record into a line protocol point. Hours
// are laid out from the start of the run's day.
func HourPoint(ev coremetrics.RunEvent, r model.DispatchRecord) *write.Point {
	day := ev.Time.UTC().Truncate(24 * time.Hour)
	return write.NewPointWithMeasurement("dispatch_hour").
		AddTag("scenario", ev.Scenario).
		AddTag("run_id", ev.RunID).
		AddTag("action", r.Action.String()).
		AddField("hour", r.Hour).
		AddField("generation_mw", r.GenerationMW).
		AddField("surplus_mw", r.SurplusMW).
		AddField("battery_charge_mwh", r.BatteryChargeMWh).
		AddField("battery_discharge_mwh", r.BatteryDischargeMWh).
		AddField("fuel_cell_discharge_mwh", r.FuelCellDischargeMWh).
		AddField("hydrogen_produced_mwh", r.HydrogenProducedMWh).
		AddField("battery_soc_mwh", r.BatterySoCMWh).
		AddField("hydrogen_soc_mwh", r.HydrogenSoCMWh).
		AddField("curtailed_mwh", r.CurtailedMWh).
		AddField("unserved_mwh", r.UnservedMWh).
		SetTime(day.Add(time.Duration(r.Hour) * time.Hour))
}

// SummaryPoint converts the day summary into a line protocol point.
func SummaryPoint(ev coremetrics.RunEvent) *write.Point {
	s := ev.Summary
	return write.NewPointWithMeasurement("day_summary").
		AddTag("scenario", ev.Scenario).
		AddTag("run_id", ev.RunID).
		AddTag("status", s.Status.String()).
		AddField("total_pv_mwh", s.TotalPVMWh).
		AddField("total_wind_mwh", s.TotalWindMWh).
		AddField("total_renewable_mwh", s.TotalRenewableMWh).
		AddField("required_mwh", s.RequiredMWh).
		AddField("unserved_mwh", s.UnservedMWh).
		AddField("curtailed_mwh", s.CurtailedMWh).
		AddField("fuel_cell_hours", s.FuelCellHours).
		AddField("duration_ms", ev.Duration.Milliseconds()).
		SetTime(ev.Time)
}

// RecordRun writes one point per hour followed by the day summary.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(ev.Records)+1)
	for _, r := range ev.Records {
		points = append(points, HourPoint(ev, r))
	}
	points = append(points, SummaryPoint(ev))
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordFailure persists a rejected run.
func (s *InfluxSink) RecordFailure(ev coremetrics.FailureEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("simulation_failure").
		AddTag("scenario", ev.Scenario).
		AddTag("run_id", ev.RunID).
		AddField("reason", ev.Reason).
		AddField("count", 1).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}
