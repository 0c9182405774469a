// Package script bundles TypeScript entry points with esbuild.
//
// The bundle is written to a uniquely named scratch file in the temporary
// directory, read back into memory together with its source map, and the
// scratch files are removed on both the success and failure path.
package script

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
	"git.home.luguber.info/inful/rollerblade/internal/logfields"
	"git.home.luguber.info/inful/rollerblade/internal/workspace"
)

// Name identifies the script compiler.
const Name = "script"

// OptionTSConfig is the option naming a tsconfig.json for the bundler.
const OptionTSConfig = "tsconfig"

// Compiler bundles and minifies .ts inputs.
type Compiler struct {
	// TempDir is where scratch output is written (os.TempDir() when empty).
	TempDir string
}

// New returns the script compiler.
func New() *Compiler { return &Compiler{} }

func (*Compiler) Name() string { return Name }

func (*Compiler) Matches(path string) bool { return compiler.MatchExtensions(path, ".ts") }

func (*Compiler) OutputExtension() string { return "js" }

// Defaults leaves tsconfig unset.
func (*Compiler) Defaults() compiler.Options {
	return compiler.Options{OptionTSConfig: nil}
}

// Validate warns when a configured tsconfig does not exist. The bundle is
// then built without it.
func (*Compiler) Validate(r *compiler.Resolved) []*errors.ClassifiedError {
	tsconfig, ok := r.Options.String(OptionTSConfig)
	if !ok {
		return nil
	}
	if _, err := os.Stat(tsconfig); err != nil {
		return []*errors.ClassifiedError{
			errors.ValidationWarning("unable to find tsconfig").
				WithPath(tsconfig).
				WithContext("input", r.Input).
				Build(),
		}
	}
	return nil
}

// Transform bundles r.Input into a minified script plus source map.
func (c *Compiler) Transform(_ context.Context, r *compiler.Resolved) (*compiler.Result, error) {
	scratch := workspace.NewScratch(c.TempDir, ".map")
	defer func() {
		if cerr := scratch.Cleanup(); cerr != nil {
			slog.Warn("Failed to remove bundler scratch files", logfields.Input(r.Input), logfields.Error(cerr))
		}
	}()

	opts := api.BuildOptions{
		EntryPoints:       []string{r.Input},
		Outfile:           scratch.Path(),
		Bundle:            true,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Sourcemap:         api.SourceMapExternal,
		Write:             true,
		LogLevel:          api.LogLevelSilent,
	}
	if tsconfig, ok := r.Options.String(OptionTSConfig); ok {
		if _, statErr := os.Stat(tsconfig); statErr == nil {
			opts.Tsconfig = tsconfig
		}
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		return nil, errors.TransformError(Name, buildError(result.Errors)).WithPath(r.Input).Build()
	}

	code, err := scratch.Read("")
	if err != nil {
		return nil, errors.TransformError(Name, err).WithPath(r.Input).Build()
	}
	sourceMap, err := scratch.Read(".map")
	if err != nil {
		return nil, errors.TransformError(Name, err).WithPath(r.Input).Build()
	}

	name := filepath.Base(r.Output)
	code = append(code, []byte(fmt.Sprintf("//# sourceMappingURL=%s.map\n", name))...)

	return compiler.NewResult(r,
		compiler.OutputFile{Name: name, Contents: code},
		compiler.OutputFile{Name: name + ".map", Contents: sourceMap},
	), nil
}

func buildError(msgs []api.Message) error {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Location != nil {
			lines = append(lines, fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text))
			continue
		}
		lines = append(lines, m.Text)
	}
	return fmt.Errorf("esbuild: %s", strings.Join(lines, "; "))
}
