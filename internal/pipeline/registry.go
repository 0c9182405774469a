package pipeline

import (
	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/compiler/document"
	"git.home.luguber.info/inful/rollerblade/internal/compiler/passthrough"
	"git.home.luguber.info/inful/rollerblade/internal/compiler/script"
	"git.home.luguber.info/inful/rollerblade/internal/compiler/stylesheet"
)

// DefaultRegistry returns the built-in compilers in dispatch order: script,
// stylesheet, document, then the pass-through copy fallback.
func DefaultRegistry() *compiler.Registry {
	return compiler.NewRegistry(
		passthrough.New(),
		script.New(),
		stylesheet.New(),
		document.New(),
	)
}
