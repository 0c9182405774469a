// Package normalize turns a raw compile request plus its selected compiler
// into a fully resolved request.
package normalize

import (
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
	"git.home.luguber.info/inful/rollerblade/internal/output"
)

// Normalize merges the caller's options over c's defaults, verifies the input
// exists, resolves the output file path and runs c's soft validation.
//
// Fatal problems (malformed request, missing input) are returned as errors;
// validation findings are returned as warnings and never abort.
func Normalize(req *compiler.Request, c compiler.Compiler) (*compiler.Resolved, []*errors.ClassifiedError, error) {
	if req == nil {
		return nil, nil, errors.ConfigurationError("argument was not a compile request").Build()
	}
	if strings.TrimSpace(req.Input) == "" {
		return nil, nil, errors.ConfigurationError("no input file specified").Build()
	}
	if c == nil {
		return nil, nil, errors.InternalError("no compiler selected").WithPath(req.Input).Build()
	}

	opts := c.Defaults().Clone()
	for k, v := range req.Options {
		opts[k] = v
	}

	info, err := os.Stat(req.Input)
	if err != nil || info.IsDir() {
		b := errors.InputNotFound(req.Input).WithContext("compiler", c.Name())
		if err != nil && !os.IsNotExist(err) {
			b = b.WithCause(err)
		}
		return nil, nil, b.Build()
	}

	resolved := &compiler.Resolved{
		Input:   req.Input,
		Output:  ResolveOutput(req.Input, req.Output, c.OutputExtension()),
		Options: opts,
	}

	warnings := c.Validate(resolved)
	return resolved, warnings, nil
}

// ResolveOutput computes the output file path for input.
//
//   - empty output: basename of input next to it, extension ext (or kept)
//   - trailing separator: <output>/<basename(input)>
//   - no extension: ext is appended
//   - ext set: the final extension is always rewritten to ext
func ResolveOutput(input, out, ext string) string {
	base := filepath.Base(input)

	var resolved string
	switch {
	case out == "":
		resolved = filepath.Join(filepath.Dir(input), base)
	case IsDirectoryTarget(out):
		resolved = filepath.Join(out, base)
	default:
		resolved = out
	}

	if ext != "" {
		resolved = output.ChangeExtension(resolved, ext)
	}
	return resolved
}

// IsDirectoryTarget reports whether out names a directory (trailing separator).
func IsDirectoryTarget(out string) bool {
	return strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(filepath.Separator))
}
