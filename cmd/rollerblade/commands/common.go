// Package commands implements the rollerblade command line.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rollerblade/internal/config"
	"git.home.luguber.info/inful/rollerblade/internal/logfields"
	"git.home.luguber.info/inful/rollerblade/internal/metrics"
)

// EnvLogLevel overrides the log level when -v is not given.
const EnvLogLevel = "ROLLERBLADE_LOG_LEVEL"

// errWriter receives log output.
var errWriter io.Writer = os.Stderr

// Global carries process-wide state into every command.
type Global struct {
	Context context.Context
	Logger  *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text|json)" default:"text" env:"ROLLERBLADE_LOG_FORMAT"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Compile    CompileCmd `cmd:"" help:"Compile a single input file"`
	Build      BuildCmd   `cmd:"" help:"Compile every target listed in a project manifest"`
	VersionCmd VersionCmd `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	logging := config.LoggingConfig{
		Level:  config.NormalizeLogLevel(os.Getenv(EnvLogLevel)),
		Format: config.NormalizeLogFormat(c.LogFormat),
	}
	if c.Verbose {
		logging.Level = config.LogLevelDebug
	}
	logger := logging.NewLogger(errWriter)
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	return nil
}

// context returns the command context, never nil.
func (g *Global) context() context.Context {
	if g == nil || g.Context == nil {
		return context.Background()
	}
	return g.Context
}

// newRecorder returns a Prometheus recorder when a textfile is configured,
// plus a flush function that writes the textfile. Without a textfile it
// returns a NoopRecorder and a no-op flush.
func newRecorder(textfile string) (metrics.Recorder, func()) {
	if textfile == "" {
		return metrics.NoopRecorder{}, func() {}
	}
	pr := metrics.NewPrometheusRecorder(nil)
	return pr, func() {
		if err := metrics.WriteTextfile(pr.Registry(), textfile); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(textfile), logfields.Error(err))
			return
		}
		slog.Debug("Wrote metrics textfile", logfields.Path(textfile))
	}
}
