// Package document renders Markdown documents with YAML front matter to
// HTML, optionally merging the result into a layout template.
package document

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
	"git.home.luguber.info/inful/rollerblade/internal/frontmatter"
	"git.home.luguber.info/inful/rollerblade/internal/markdown"
	"git.home.luguber.info/inful/rollerblade/internal/templates"
)

// Name identifies the document compiler.
const Name = "document"

// Option keys understood by the document compiler.
const (
	OptionEmitMetadata   = "emitMetadata"
	OptionTemplate       = "template"
	OptionTemplateEngine = "templateEngine"
	OptionData           = "data"
	OptionLinkTransform  = "linkTransform"
	OptionImageTransform = "imageTransform"
	OptionHighlight      = "highlight"
	OptionHighlightStyle = "highlightStyle"
	OptionFingerprint    = "fingerprint"
)

// DefaultTemplateEngine is used when a template is given without an engine.
const DefaultTemplateEngine = "whiskers"

// Compiler renders .md inputs.
type Compiler struct{}

// New returns the document compiler.
func New() *Compiler { return &Compiler{} }

func (*Compiler) Name() string { return Name }

func (*Compiler) Matches(path string) bool { return compiler.MatchExtensions(path, ".md") }

func (*Compiler) OutputExtension() string { return "html" }

func (*Compiler) Defaults() compiler.Options {
	return compiler.Options{
		OptionEmitMetadata:   true,
		OptionTemplateEngine: DefaultTemplateEngine,
		OptionData:           map[string]any{},
	}
}

// Validate reports a missing template file, an unknown engine and an
// unknown highlight style. Each disables only the affected feature.
func (*Compiler) Validate(r *compiler.Resolved) []*errors.ClassifiedError {
	var warnings []*errors.ClassifiedError

	if tmpl, ok := r.Options.String(OptionTemplate); ok {
		if info, err := os.Stat(tmpl); err != nil || info.IsDir() {
			warnings = append(warnings, errors.ValidationWarning("unable to find template").
				WithPath(tmpl).
				WithContext("input", r.Input).
				Build())
		}
		engine := engineName(r.Options)
		if _, ok := templates.Lookup(engine); !ok {
			warnings = append(warnings, errors.ValidationWarning("unknown template engine").
				WithContext("engine", engine).
				WithContext("input", r.Input).
				Build())
		}
	}

	if style, ok := r.Options.String(OptionHighlightStyle); ok && !markdown.HighlightStyleExists(style) {
		warnings = append(warnings, errors.ValidationWarning("unknown highlight style").
			WithContext("style", style).
			WithContext("input", r.Input).
			Build())
	}

	return warnings
}

// Transform renders r.Input. The front matter becomes the result metadata.
func (*Compiler) Transform(_ context.Context, r *compiler.Resolved) (*compiler.Result, error) {
	// #nosec G304 -- the input path was verified by normalization.
	content, err := os.ReadFile(r.Input)
	if err != nil {
		return nil, errors.TransformError(Name, err).WithPath(r.Input).Build()
	}

	meta, _, body, err := frontmatter.Extract(content)
	switch {
	case stderrors.Is(err, frontmatter.ErrMissingClosingDelimiter):
		meta, body = map[string]any{}, content
	case err != nil:
		return nil, errors.TransformError(Name, fmt.Errorf("parse front matter: %w", err)).WithPath(r.Input).Build()
	}

	if r.Options.Bool(OptionFingerprint, false) {
		fp, fpErr := frontmatter.Fingerprint(meta, body)
		if fpErr != nil {
			return nil, errors.TransformError(Name, fpErr).WithPath(r.Input).Build()
		}
		meta[frontmatter.FingerprintField] = fp
	}

	html, err := markdown.Render(body, markdown.Options{
		LinkTransform:  r.Options.StringFunc(OptionLinkTransform),
		ImageTransform: r.Options.StringFunc(OptionImageTransform),
		Highlight:      r.Options.Bool(OptionHighlight, true),
		HighlightStyle: stringOption(r.Options, OptionHighlightStyle),
	})
	if err != nil {
		return nil, errors.TransformError(Name, err).WithPath(r.Input).Build()
	}

	if tmpl, ok := usableTemplate(r.Options); ok {
		data := templates.Data(r.Options.Map(OptionData), meta, string(html))
		html, err = templates.Render(engineName(r.Options), tmpl, data)
		if err != nil {
			return nil, errors.TransformError(Name, err).WithPath(tmpl).WithContext("input", r.Input).Build()
		}
	}

	res := compiler.NewResult(r, compiler.OutputFile{Name: filepath.Base(r.Output), Contents: html})
	res.Metadata = meta
	res.EmitMetadata = r.Options.Bool(OptionEmitMetadata, true)
	return res, nil
}

// usableTemplate returns the configured template when both the file and its
// engine are available.
func usableTemplate(opts compiler.Options) (string, bool) {
	tmpl, ok := opts.String(OptionTemplate)
	if !ok {
		return "", false
	}
	if info, err := os.Stat(tmpl); err != nil || info.IsDir() {
		return "", false
	}
	if _, ok := templates.Lookup(engineName(opts)); !ok {
		return "", false
	}
	return tmpl, true
}

func engineName(opts compiler.Options) string {
	if e, ok := opts.String(OptionTemplateEngine); ok {
		return e
	}
	return DefaultTemplateEngine
}

func stringOption(opts compiler.Options, key string) string {
	s, _ := opts.String(key)
	return s
}
