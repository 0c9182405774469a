package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/rollerblade/internal/config"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
	"git.home.luguber.info/inful/rollerblade/internal/logfields"
	"git.home.luguber.info/inful/rollerblade/internal/output"
	"git.home.luguber.info/inful/rollerblade/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Config          string `short:"f" help:"Project manifest path" default:"rollerblade.yaml" type:"path"`
	OutputDir       string `name:"output-dir" short:"o" help:"Override the manifest output_dir"`
	MetricsTextfile string `name:"metrics-textfile" help:"Override the manifest metrics_textfile" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(b.Config)
	if err != nil {
		return err
	}
	if b.OutputDir != "" {
		cfg.OutputDir = b.OutputDir
	}
	if b.MetricsTextfile != "" {
		cfg.MetricsTextfile = b.MetricsTextfile
	}

	logger := g.Logger
	if !root.Verbose && os.Getenv(EnvLogLevel) == "" {
		logger = cfg.Logging.NewLogger(errWriter)
	}

	reqs, err := cfg.Requests()
	if err != nil {
		return err
	}

	recorder, flush := newRecorder(cfg.MetricsTextfile)
	defer flush()

	orch := pipeline.New(pipeline.DefaultRegistry(),
		pipeline.WithRecorder(recorder),
		pipeline.WithLogger(logger))

	logger.Info("Starting build", logfields.Path(b.Config), logfields.Count(len(reqs)))
	outcomes := orch.CompileAll(g.context(), reqs)

	failed := 0
	for i, out := range outcomes {
		if !out.OK() {
			failed++
			continue
		}
		if _, err := output.WriteResult(out.Result); err != nil {
			logger.Error("Failed to write output", logfields.Index(i), logfields.Input(out.Result.Input), logfields.Error(err))
			failed++
		}
	}

	if failed > 0 {
		return firstError(outcomes, failed, len(outcomes))
	}
	return nil
}

// firstError reports the batch failure, classified like the first failed
// request so the exit code reflects it.
func firstError(outcomes []pipeline.Outcome, failed, total int) error {
	msg := fmt.Sprintf("%d of %d targets failed", failed, total)
	for _, out := range outcomes {
		if out.Err == nil {
			continue
		}
		if ce, ok := errors.AsClassified(out.Err); ok {
			return errors.WrapError(out.Err, ce.Category(), msg).Build()
		}
		return errors.WrapError(out.Err, errors.CategoryTransform, msg).Build()
	}
	return errors.FileSystemError(msg).Build()
}
