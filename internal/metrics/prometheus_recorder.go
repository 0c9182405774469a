package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry        *prom.Registry
	compileDuration *prom.HistogramVec
	compileResults  *prom.CounterVec
	warnings        *prom.CounterVec
	batchDuration   prom.Histogram
	batchOutcome    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the compile metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		compileDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "rollerblade",
			Name:      "compile_duration_seconds",
			Help:      "Duration of individual compile requests",
			Buckets:   prom.DefBuckets,
		}, []string{"compiler"}),
		compileResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "rollerblade",
			Name:      "compile_results_total",
			Help:      "Compile request results by compiler and outcome",
		}, []string{"compiler", "result"}),
		warnings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "rollerblade",
			Name:      "validation_warnings_total",
			Help:      "Validation warnings reported by compilers",
		}, []string{"compiler"}),
		batchDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "rollerblade",
			Name:      "batch_duration_seconds",
			Help:      "Total duration of a compile batch",
			Buckets:   prom.DefBuckets,
		}),
		batchOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "rollerblade",
			Name:      "batch_outcomes_total",
			Help:      "Compile batches by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.compileDuration, pr.compileResults, pr.warnings, pr.batchDuration, pr.batchOutcome)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveCompileDuration(compiler string, d time.Duration) {
	if p == nil {
		return
	}
	p.compileDuration.WithLabelValues(compiler).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCompileResult(compiler string, result ResultLabel) {
	if p == nil {
		return
	}
	p.compileResults.WithLabelValues(compiler, string(result)).Inc()
}

func (p *PrometheusRecorder) AddValidationWarnings(compiler string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.warnings.WithLabelValues(compiler).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveBatchDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.batchDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBatchOutcome(outcome ResultLabel) {
	if p == nil {
		return
	}
	p.batchOutcome.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes every metric gathered from reg to path in the text
// exposition format, atomically replacing any previous file.
func WriteTextfile(reg prom.Gatherer, path string) error {
	return prom.WriteToTextfile(path, reg)
}
