package commands

import (
	"fmt"

	"git.home.luguber.info/inful/rollerblade/internal/version"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (VersionCmd) Run(_ *Global, _ *CLI) error {
	fmt.Printf("rollerblade %s\n", version.String())
	return nil
}
