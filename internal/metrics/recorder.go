package metrics

import "time"

// ResultLabel enumerates per-request compile outcomes for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for compile requests and batches.
type Recorder interface {
	ObserveCompileDuration(compiler string, d time.Duration)
	IncCompileResult(compiler string, result ResultLabel)
	AddValidationWarnings(compiler string, n int)
	ObserveBatchDuration(d time.Duration)
	IncBatchOutcome(outcome ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveCompileDuration(string, time.Duration) {}
func (NoopRecorder) IncCompileResult(string, ResultLabel)         {}
func (NoopRecorder) AddValidationWarnings(string, int)            {}
func (NoopRecorder) ObserveBatchDuration(time.Duration)           {}
func (NoopRecorder) IncBatchOutcome(ResultLabel)                  {}
