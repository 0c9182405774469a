package document

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
	"git.home.luguber.info/inful/rollerblade/internal/frontmatter"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func resolved(input string, opts compiler.Options) *compiler.Resolved {
	merged := New().Defaults()
	for k, v := range opts {
		merged[k] = v
	}
	return &compiler.Resolved{
		Input:   input,
		Output:  strings.TrimSuffix(input, filepath.Ext(input)) + ".html",
		Options: merged,
	}
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func parse(t *testing.T, b []byte) *html.Node {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(b))
	require.NoError(t, err)
	return doc
}

func TestMatchesAndDefaults(t *testing.T) {
	c := New()
	require.True(t, c.Matches("docs/readme.md"))
	require.True(t, c.Matches("README.MD"))
	require.False(t, c.Matches("notes.markdown"))
	require.Equal(t, "html", c.OutputExtension())

	d := c.Defaults()
	require.Equal(t, true, d[OptionEmitMetadata])
	require.Equal(t, "whiskers", d[OptionTemplateEngine])
	require.Equal(t, map[string]any{}, d[OptionData])
}

func TestTransform_FrontMatterRoundTrip(t *testing.T) {
	input := writeFile(t, t.TempDir(), "page.md", "---\ntitle: X\n---\nHello")

	res, err := New().Transform(context.Background(), resolved(input, nil))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"title": "X"}, res.Metadata)
	require.True(t, res.EmitMetadata)
	require.Len(t, res.Files, 1)
	require.Equal(t, "page.html", res.Files[0].Name)

	out := string(res.Files[0].Contents)
	require.Contains(t, out, "<p>Hello</p>")
	require.NotContains(t, out, "---")
}

func TestTransform_NoFrontMatter(t *testing.T) {
	input := writeFile(t, t.TempDir(), "plain.md", "# Title\n\nBody text.\n")

	res, err := New().Transform(context.Background(), resolved(input, nil))
	require.NoError(t, err)
	require.Empty(t, res.Metadata)

	doc := parse(t, res.Files[0].Contents)
	require.Len(t, findAll(doc, "h1"), 1)
	require.Len(t, findAll(doc, "p"), 1)
}

func TestTransform_UnclosedFrontMatterIsBody(t *testing.T) {
	input := writeFile(t, t.TempDir(), "open.md", "---\ntitle: X\nHello\n")

	res, err := New().Transform(context.Background(), resolved(input, nil))
	require.NoError(t, err)
	require.Empty(t, res.Metadata)
	require.Contains(t, string(res.Files[0].Contents), "Hello")
}

func TestTransform_InvalidFrontMatterYAML(t *testing.T) {
	input := writeFile(t, t.TempDir(), "bad.md", "---\ntitle: [unclosed\n---\nHello\n")

	_, err := New().Transform(context.Background(), resolved(input, nil))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryTransform))
}

func TestTransform_LinkHooksArePerRequest(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "links.md", "[guide](guide.md) [ext](https://example.com/a) ![logo](img/logo.png)\n")

	res, err := New().Transform(context.Background(), resolved(input, compiler.Options{
		OptionLinkTransform:  func(href string) string { return "/site/" + strings.TrimSuffix(href, ".md") + ".html" },
		OptionImageTransform: func(src string) string { return "/static/" + src },
	}))
	require.NoError(t, err)

	doc := parse(t, res.Files[0].Contents)
	links := findAll(doc, "a")
	require.Len(t, links, 2)
	require.Equal(t, "/site/guide.html", attr(links[0], "href"))
	require.Empty(t, attr(links[0], "target"))
	require.Equal(t, "https://example.com/a", attr(links[1], "href"))
	require.Equal(t, "_blank", attr(links[1], "target"))
	require.Equal(t, "noopener", attr(links[1], "rel"))
	require.Empty(t, attr(links[0], "rel"))

	imgs := findAll(doc, "img")
	require.Len(t, imgs, 1)
	require.Equal(t, "/static/img/logo.png", attr(imgs[0], "src"))

	// A second request without hooks is unaffected.
	res, err = New().Transform(context.Background(), resolved(input, nil))
	require.NoError(t, err)
	links = findAll(parse(t, res.Files[0].Contents), "a")
	require.Equal(t, "guide.md", attr(links[0], "href"))
}

func TestTransform_HighlightsFencedCode(t *testing.T) {
	input := writeFile(t, t.TempDir(), "code.md", "```go\npackage main\n```\n")

	res, err := New().Transform(context.Background(), resolved(input, nil))
	require.NoError(t, err)
	require.Contains(t, string(res.Files[0].Contents), "style=")

	res, err = New().Transform(context.Background(), resolved(input, compiler.Options{OptionHighlight: false}))
	require.NoError(t, err)
	require.Contains(t, string(res.Files[0].Contents), `<code class="language-go">`)
}

func TestTransform_TemplateMerge(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "page.md", "---\ntitle: Intro\n---\nHello\n")
	tmpl := writeFile(t, dir, "layout.mustache", "<html><head><title>{{attr.title}}</title></head><body><nav>{{site}}</nav>{{{content}}}</body></html>")

	res, err := New().Transform(context.Background(), resolved(input, compiler.Options{
		OptionTemplate: tmpl,
		OptionData:     map[string]any{"site": "Docs"},
	}))
	require.NoError(t, err)

	doc := parse(t, res.Files[0].Contents)
	titles := findAll(doc, "title")
	require.Len(t, titles, 1)
	require.Equal(t, "Intro", titles[0].FirstChild.Data)
	navs := findAll(doc, "nav")
	require.Len(t, navs, 1)
	require.Equal(t, "Docs", navs[0].FirstChild.Data)
	require.Len(t, findAll(doc, "p"), 1)
}

func TestTransform_GoTemplateEngine(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "page.md", "---\ntitle: Intro\n---\nHello\n")
	tmpl := writeFile(t, dir, "layout.html", "<h1>{{ .attr.title }}</h1>{{ .content }}")

	res, err := New().Transform(context.Background(), resolved(input, compiler.Options{
		OptionTemplate:       tmpl,
		OptionTemplateEngine: "html",
	}))
	require.NoError(t, err)
	require.Equal(t, "<h1>Intro</h1><p>Hello</p>\n", string(res.Files[0].Contents))
}

func TestValidate_WarningsDisableFeatureOnly(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "page.md", "Hello\n")
	opts := compiler.Options{
		OptionTemplate:       filepath.Join(dir, "missing.mustache"),
		OptionTemplateEngine: "jinja",
		OptionHighlightStyle: "no-such-style",
	}
	r := resolved(input, opts)

	warnings := New().Validate(r)
	require.Len(t, warnings, 3)
	for _, w := range warnings {
		require.True(t, w.IsWarning())
		require.True(t, w.IsCategory(errors.CategoryValidation))
	}

	res, err := New().Transform(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, "<p>Hello</p>\n", string(res.Files[0].Contents))
}

func TestValidate_NoWarningsForDefaults(t *testing.T) {
	input := writeFile(t, t.TempDir(), "page.md", "Hello\n")
	require.Empty(t, New().Validate(resolved(input, nil)))
}

func TestTransform_EmitMetadataOption(t *testing.T) {
	input := writeFile(t, t.TempDir(), "page.md", "---\ntitle: X\n---\nHello\n")

	res, err := New().Transform(context.Background(), resolved(input, compiler.Options{OptionEmitMetadata: false}))
	require.NoError(t, err)
	require.False(t, res.EmitMetadata)
	require.Equal(t, "X", res.Metadata["title"])
}

func TestTransform_Fingerprint(t *testing.T) {
	input := writeFile(t, t.TempDir(), "page.md", "---\ntitle: X\n---\nHello\n")

	first, err := New().Transform(context.Background(), resolved(input, compiler.Options{OptionFingerprint: true}))
	require.NoError(t, err)
	fp, ok := first.Metadata[frontmatter.FingerprintField].(string)
	require.True(t, ok)
	require.NotEmpty(t, fp)

	second, err := New().Transform(context.Background(), resolved(input, compiler.Options{OptionFingerprint: true}))
	require.NoError(t, err)
	require.Equal(t, fp, second.Metadata[frontmatter.FingerprintField])
}
