package compiler

import (
	"context"
	"maps"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
)

// Options carries per-request compiler options. Values are whatever the
// caller supplied (manifest YAML, CLI flags or Go code).
type Options map[string]any

// Clone returns a shallow copy of the options.
func (o Options) Clone() Options {
	out := make(Options, len(o))
	maps.Copy(out, o)
	return out
}

// String returns a non-empty string option.
func (o Options) String(key string) (string, bool) {
	s, ok := o[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Bool returns a boolean option or def when unset or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}
	return def
}

// Map returns a map option, accepting both map[string]any and map[any]any.
func (o Options) Map(key string) map[string]any {
	switch m := o[key].(type) {
	case map[string]any:
		return m
	case Options:
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			if ks, ok := k.(string); ok {
				out[ks] = v
			}
		}
		return out
	default:
		return nil
	}
}

// StringFunc returns a func(string) string option such as a link rewriter.
func (o Options) StringFunc(key string) func(string) string {
	if fn, ok := o[key].(func(string) string); ok {
		return fn
	}
	return nil
}

// Request is one compile request as constructed by the caller.
type Request struct {
	Input   string
	Output  string
	Options Options
}

// Resolved is a request after normalization: defaults merged, input
// verified and Output resolved to a file path.
type Resolved struct {
	Input   string
	Output  string
	Options Options
}

// OutputFile is one produced artifact. Name is relative to the directory of
// the resolved output path.
type OutputFile struct {
	Name     string
	Contents []byte
}

// Result is everything produced by one compile call. Files[0] is the primary
// artifact; a source map, if any, follows as "<primary>.map".
type Result struct {
	Input        string
	Output       string
	Compiler     string
	Files        []OutputFile
	Metadata     map[string]any
	EmitMetadata bool
	Warnings     []*errors.ClassifiedError
}

// NewResult starts a result for r with the given files.
func NewResult(r *Resolved, files ...OutputFile) *Result {
	return &Result{
		Input:  r.Input,
		Output: r.Output,
		Files:  files,
	}
}

// Dir is the directory every file in the result is written to.
func (r *Result) Dir() string {
	return filepath.Dir(r.Output)
}

// Primary returns the primary artifact.
func (r *Result) Primary() OutputFile {
	if len(r.Files) == 0 {
		return OutputFile{}
	}
	return r.Files[0]
}

// Compiler is the uniform shape of every asset transform.
type Compiler interface {
	// Name identifies the compiler in logs, metrics and errors.
	Name() string
	// Matches is a pure extension test.
	Matches(path string) bool
	// Defaults are merged under the caller's options.
	Defaults() Options
	// OutputExtension forces the resolved output extension ("" keeps it).
	OutputExtension() string
	// Validate reports soft problems; they never abort the compile.
	Validate(r *Resolved) []*errors.ClassifiedError
	// Transform runs the external transform and returns its artifacts.
	Transform(ctx context.Context, r *Resolved) (*Result, error)
}

// MatchExtensions reports whether path has one of exts (".scss" form),
// compared case-insensitively.
func MatchExtensions(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
