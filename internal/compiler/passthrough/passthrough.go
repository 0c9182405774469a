// Package passthrough implements the fallback compiler: the input bytes are
// copied unchanged.
package passthrough

import (
	"context"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
)

// Name identifies the pass-through compiler.
const Name = "copy"

// Compiler copies its input verbatim. It matches every path.
type Compiler struct{}

// New returns the pass-through compiler.
func New() *Compiler { return &Compiler{} }

func (*Compiler) Name() string               { return Name }
func (*Compiler) Matches(string) bool        { return true }
func (*Compiler) Defaults() compiler.Options { return compiler.Options{} }
func (*Compiler) OutputExtension() string    { return "" }

func (*Compiler) Validate(*compiler.Resolved) []*errors.ClassifiedError { return nil }

// Transform reads the input and returns it as the single output file.
func (*Compiler) Transform(_ context.Context, r *compiler.Resolved) (*compiler.Result, error) {
	// #nosec G304 -- the input path was verified by normalization.
	data, err := os.ReadFile(r.Input)
	if err != nil {
		return nil, errors.TransformError(Name, err).WithPath(r.Input).Build()
	}
	return compiler.NewResult(r, compiler.OutputFile{
		Name:     filepath.Base(r.Output),
		Contents: data,
	}), nil
}
