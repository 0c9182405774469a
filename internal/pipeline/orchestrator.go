package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
	"git.home.luguber.info/inful/rollerblade/internal/logfields"
	"git.home.luguber.info/inful/rollerblade/internal/metrics"
	"git.home.luguber.info/inful/rollerblade/internal/normalize"
)

// Orchestrator runs compile requests against a compiler registry.
type Orchestrator struct {
	registry *compiler.Registry
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRecorder sets the metrics recorder (NoopRecorder by default).
func WithRecorder(r metrics.Recorder) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithLogger sets the logger (slog.Default() by default).
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an orchestrator over registry. A nil registry selects
// DefaultRegistry.
func New(registry *compiler.Registry, options ...Option) *Orchestrator {
	if registry == nil {
		registry = DefaultRegistry()
	}
	o := &Orchestrator{
		registry: registry,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range options {
		opt(o)
	}
	return o
}

// Registry returns the registry requests are dispatched against.
func (o *Orchestrator) Registry() *compiler.Registry { return o.registry }

// Outcome is the record of one request in a batch.
type Outcome struct {
	Request  *compiler.Request
	Compiler string
	Result   *compiler.Result
	Err      error
	State    State
	History  []State
	Duration time.Duration
}

// OK reports whether the request completed.
func (o Outcome) OK() bool { return o.Err == nil && o.State == StateCompleted }

// Compile selects a compiler for req, normalizes it and runs the transform.
// The returned error is a ConfigurationError, InputNotFound or TransformError
// classified error.
func (o *Orchestrator) Compile(ctx context.Context, req *compiler.Request) (*compiler.Result, error) {
	out := o.run(ctx, req)
	return out.Result, out.Err
}

// CompileAll compiles reqs one at a time in order. Every request yields an
// Outcome at the same index. Once ctx is done the remaining requests are
// marked canceled without being started.
func (o *Orchestrator) CompileAll(ctx context.Context, reqs []*compiler.Request) []Outcome {
	start := time.Now()
	outcomes := make([]Outcome, 0, len(reqs))

	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, o.cancel(req, err))
			continue
		}
		out := o.run(ctx, req)
		if out.Err != nil {
			o.logger.Error("Compile failed",
				logfields.Index(i),
				logfields.Input(inputOf(req)),
				logfields.Compiler(out.Compiler),
				logfields.Error(out.Err))
		}
		outcomes = append(outcomes, out)
	}

	summary := Summarize(outcomes)
	o.recorder.ObserveBatchDuration(time.Since(start))
	o.recorder.IncBatchOutcome(summary.Outcome())
	o.logger.Info("Batch complete",
		logfields.Count(len(outcomes)),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed),
		slog.Int("canceled", summary.Canceled),
		slog.Int("warnings", summary.Warnings),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return outcomes
}

func (o *Orchestrator) run(ctx context.Context, req *compiler.Request) (out Outcome) {
	start := time.Now()
	t := newTracker()
	out.Request = req

	var c compiler.Compiler
	if req != nil {
		c = o.registry.Select(req.Input)
	}
	if c != nil {
		out.Compiler = c.Name()
	}

	defer func() {
		out.State = t.state
		out.History = t.history
		out.Duration = time.Since(start)
		o.record(out)
	}()

	fail := func(err error) Outcome {
		out.Err = err
		if advErr := t.advance(StateFailed); advErr != nil {
			out.Err = errors.InternalError(advErr.Error()).WithCause(err).Build()
		}
		return out
	}

	if err := t.advance(StateNormalized); err != nil {
		return fail(err)
	}
	resolved, warnings, err := normalize.Normalize(req, c)
	if err != nil {
		return fail(err)
	}
	for _, w := range warnings {
		o.logger.Warn(w.Error(), logfields.Input(resolved.Input), logfields.Compiler(out.Compiler))
	}
	o.recorder.AddValidationWarnings(out.Compiler, len(warnings))

	if err := t.advance(StateDispatched); err != nil {
		return fail(err)
	}
	res, err := transform(ctx, c, resolved)
	if err != nil {
		return fail(err)
	}

	if err := t.advance(StateTransformed); err != nil {
		return fail(err)
	}
	res.Compiler = out.Compiler
	res.Input = resolved.Input
	res.Output = resolved.Output
	res.Warnings = append(res.Warnings, warnings...)
	out.Result = res

	// Transformed only moves to Completed.
	_ = t.advance(StateCompleted)
	o.logger.Info(fmt.Sprintf("Compile: '%s' -> '%s'", res.Input, res.Output),
		logfields.Compiler(out.Compiler),
		logfields.Count(len(res.Files)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return out
}

// transform runs c.Transform, converting panics and nil results into
// TransformErrors.
func transform(ctx context.Context, c compiler.Compiler, r *compiler.Resolved) (res *compiler.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = errors.TransformError(c.Name(), fmt.Errorf("panic: %v", p)).WithPath(r.Input).Build()
		}
	}()

	res, err = c.Transform(ctx, r)
	if err != nil {
		if !errors.IsClassified(err) {
			err = errors.TransformError(c.Name(), err).WithPath(r.Input).Build()
		}
		return nil, err
	}
	if res == nil {
		return nil, errors.TransformError(c.Name(), fmt.Errorf("compiler returned no result")).WithPath(r.Input).Build()
	}
	return res, nil
}

func (o *Orchestrator) cancel(req *compiler.Request, cause error) Outcome {
	t := newTracker()
	_ = t.advance(StateCanceled)
	out := Outcome{
		Request: req,
		Err: errors.WrapError(cause, errors.CategoryCanceled, "compile canceled").
			WithPath(inputOf(req)).
			Build(),
		State:   t.state,
		History: t.history,
	}
	if req != nil {
		if c := o.registry.Select(req.Input); c != nil {
			out.Compiler = c.Name()
		}
	}
	o.record(out)
	return out
}

func (o *Orchestrator) record(out Outcome) {
	label := resultLabel(out)
	if label != metrics.ResultCanceled {
		o.recorder.ObserveCompileDuration(out.Compiler, out.Duration)
	}
	o.recorder.IncCompileResult(out.Compiler, label)
}

func resultLabel(out Outcome) metrics.ResultLabel {
	switch {
	case out.State == StateCanceled:
		return metrics.ResultCanceled
	case out.Err != nil:
		return metrics.ResultFailed
	case out.Result != nil && len(out.Result.Warnings) > 0:
		return metrics.ResultWarning
	default:
		return metrics.ResultSuccess
	}
}

func inputOf(req *compiler.Request) string {
	if req == nil {
		return ""
	}
	return req.Input
}
