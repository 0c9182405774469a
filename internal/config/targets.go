package config

import (
	"path/filepath"

	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
	"git.home.luguber.info/inful/rollerblade/internal/normalize"
)

// OptionEmitMetadata is the request option the manifest-wide emit_metadata
// default is applied to.
const OptionEmitMetadata = "emitMetadata"

// pathOptions are request options holding file paths relative to the manifest.
var pathOptions = []string{"tsconfig", "template"}

// Requests converts the manifest targets into compile requests.
//
// Relative inputs resolve against BaseDir. Relative outputs resolve against
// OutputDir (itself relative to BaseDir); a target without an output is
// written under OutputDir at its input-relative location when OutputDir is
// set. The manifest emit_metadata default applies to targets that do not
// set emitMetadata themselves.
func (c *Config) Requests() ([]*compiler.Request, error) {
	reqs := make([]*compiler.Request, 0, len(c.Targets))
	outDir := c.resolve(c.OutputDir)

	for i, t := range c.Targets {
		req, err := compiler.ParseRequest(map[string]any(t))
		if err != nil {
			if ce, ok := errors.AsClassified(err); ok {
				return nil, ce.WithContext("target", i)
			}
			return nil, err
		}

		rel := req.Input
		req.Input = c.resolve(req.Input)
		dirMarker := normalize.IsDirectoryTarget(req.Output)

		switch {
		case req.Output != "" && filepath.IsAbs(req.Output):
		case req.Output != "":
			base := c.BaseDir
			if c.OutputDir != "" {
				base = outDir
			}
			req.Output = filepath.Join(base, req.Output)
			if dirMarker {
				req.Output += string(filepath.Separator)
			}
		case c.OutputDir != "" && !filepath.IsAbs(rel):
			req.Output = filepath.Join(outDir, rel)
		case c.OutputDir != "":
			req.Output = outDir + string(filepath.Separator)
		}

		for _, key := range pathOptions {
			if v, ok := req.Options[key].(string); ok && v != "" {
				req.Options[key] = c.resolve(v)
			}
		}
		if _, set := req.Options[OptionEmitMetadata]; !set && c.EmitMetadata != nil {
			req.Options[OptionEmitMetadata] = *c.EmitMetadata
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
