// Package stylesheet renders SCSS and indented Sass to compressed CSS with
// libsass, producing a source map with embedded sources.
package stylesheet

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bep/golibsass/libsass"

	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
)

// Name identifies the stylesheet compiler.
const Name = "stylesheet"

// Compiler renders .scss and .sass inputs.
type Compiler struct{}

// New returns the stylesheet compiler.
func New() *Compiler { return &Compiler{} }

func (*Compiler) Name() string { return Name }

func (*Compiler) Matches(path string) bool {
	return compiler.MatchExtensions(path, ".scss", ".sass")
}

func (*Compiler) OutputExtension() string { return "css" }

func (*Compiler) Defaults() compiler.Options { return compiler.Options{} }

func (*Compiler) Validate(*compiler.Resolved) []*errors.ClassifiedError { return nil }

// Transform compiles r.Input. Imports resolve relative to the input's directory.
func (*Compiler) Transform(_ context.Context, r *compiler.Resolved) (*compiler.Result, error) {
	// #nosec G304 -- the input path was verified by normalization.
	src, err := os.ReadFile(r.Input)
	if err != nil {
		return nil, errors.TransformError(Name, err).WithPath(r.Input).Build()
	}

	name := filepath.Base(r.Output)
	transpiler, err := libsass.New(libsass.Options{
		OutputStyle:  libsass.CompressedStyle,
		IncludePaths: []string{filepath.Dir(r.Input)},
		SassSyntax:   compiler.MatchExtensions(r.Input, ".sass"),
		SourceMapOptions: libsass.SourceMapOptions{
			Filename:   name + ".map",
			InputPath:  r.Input,
			OutputPath: name,
			Root:       "./",
			Contents:   true,
		},
	})
	if err != nil {
		return nil, errors.TransformError(Name, err).WithPath(r.Input).Build()
	}

	out, err := transpiler.Execute(string(src))
	if err != nil {
		return nil, errors.TransformError(Name, err).WithPath(r.Input).Build()
	}

	res := compiler.NewResult(r, compiler.OutputFile{Name: name, Contents: []byte(out.CSS)})
	if out.SourceMapContent != "" {
		res.Files = append(res.Files, compiler.OutputFile{Name: name + ".map", Contents: []byte(out.SourceMapContent)})
	}
	return res, nil
}
