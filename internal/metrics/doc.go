// Package metrics provides compile metrics for rollerblade.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default so callers never need nil checks:
//
//	orch := pipeline.New(registry, pipeline.WithRecorder(metrics.NoopRecorder{}))
//
// When a metrics textfile is configured, the CLI swaps in a PrometheusRecorder
// and dumps its registry after the run with WriteTextfile, for collection by
// the node exporter textfile collector.
package metrics
