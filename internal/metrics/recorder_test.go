package metrics

import (
	"testing"
	"time"
)

// Compile-time checks that both implementations satisfy Recorder.
var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveCompileDuration("copy", time.Second)
	r.IncCompileResult("copy", ResultSuccess)
	r.AddValidationWarnings("copy", 1)
	r.ObserveBatchDuration(time.Second)
	r.IncBatchOutcome(ResultFailed)
}
