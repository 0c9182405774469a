package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rollerblade/cmd/rollerblade/commands"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
	"git.home.luguber.info/inful/rollerblade/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cli commands.CLI
	global := &commands.Global{Context: ctx, Logger: slog.Default()}
	parser := kong.Parse(&cli,
		kong.Name("rollerblade"),
		kong.Description("Compile scripts, stylesheets and documents into web assets."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	if err := parser.Run(&cli); err != nil {
		stop()
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
