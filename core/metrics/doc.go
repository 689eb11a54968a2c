// Package metrics defines the sinks that observe simulated days. Sinks like
// PromSink and InfluxSink live in infra/metrics and register themselves in
// the factory; NewMetricsSink returns a MultiSink automatically when several
// sinks are configured.
package metrics
