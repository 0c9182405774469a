// Package markdown renders Markdown bodies (frontmatter already removed) to
// HTML with goldmark.
//
// Link and image rewriting is configured per call through Options.
package markdown

import (
	"bytes"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// DefaultHighlightStyle is the chroma style used for fenced code blocks.
const DefaultHighlightStyle = "github"

// Options controls how a Markdown body is rendered.
type Options struct {
	// LinkTransform rewrites internal (on-site) link destinations.
	LinkTransform func(string) string
	// ImageTransform rewrites internal image sources.
	ImageTransform func(string) string
	// Highlight enables syntax highlighting of fenced code blocks.
	Highlight bool
	// HighlightStyle names the chroma style; empty selects DefaultHighlightStyle.
	HighlightStyle string
}

// Render converts body to HTML.
func Render(body []byte, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := newRenderer(opts).Convert(body, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HighlightStyleExists reports whether chroma knows the named style.
func HighlightStyleExists(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}

func newRenderer(opts Options) goldmark.Markdown {
	extensions := []goldmark.Extender{extension.GFM}
	if opts.Highlight {
		style := opts.HighlightStyle
		if style == "" || !HighlightStyleExists(style) {
			style = DefaultHighlightStyle
		}
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
		))
	}

	return goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(&linkRewriter{
				link:  opts.LinkTransform,
				image: opts.ImageTransform,
			}, 500)),
		),
		// Raw HTML in documents is passed through untouched.
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}
