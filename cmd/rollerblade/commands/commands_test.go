package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func testGlobal() *Global {
	return &Global{Context: context.Background(), Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))}
}

func TestParse_CompileFlags(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Bind(testGlobal()))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"compile", "docs/page.md", "out/", "-t", "layout.mustache", "-e", "go", "-d", "site=Docs", "--no-metadata"})
	require.NoError(t, err)
	require.Equal(t, "docs/page.md", cli.Compile.Input)
	require.Equal(t, "out/", cli.Compile.Output)
	require.Equal(t, "go", cli.Compile.Engine)
	require.Equal(t, map[string]string{"site": "Docs"}, cli.Compile.Data)
	require.True(t, cli.Compile.NoMetadata)

	req := cli.Compile.request()
	require.Equal(t, "out/", req.Output)
	require.Equal(t, false, req.Options["emitMetadata"])
	require.Equal(t, map[string]any{"site": "Docs"}, req.Options["data"])
}

func TestCompileCmd_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "page.md", "---\ntitle: X\n---\nHello\n")
	textfile := filepath.Join(dir, "metrics", "rollerblade.prom")
	require.NoError(t, os.MkdirAll(filepath.Dir(textfile), 0o750))

	cmd := &CompileCmd{Input: input, Output: filepath.Join(dir, "site") + "/", MetricsTextfile: textfile}
	require.NoError(t, cmd.Run(testGlobal(), &CLI{}))

	html, err := os.ReadFile(filepath.Join(dir, "site", "page.html"))
	require.NoError(t, err)
	require.Contains(t, string(html), "<p>Hello</p>")

	meta, err := os.ReadFile(filepath.Join(dir, "site", "page.json"))
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"X"}`, string(meta))

	prom, err := os.ReadFile(textfile)
	require.NoError(t, err)
	require.Contains(t, string(prom), `rollerblade_compile_results_total{compiler="document",result="success"} 1`)
}

func TestCompileCmd_MissingInput(t *testing.T) {
	cmd := &CompileCmd{Input: filepath.Join(t.TempDir(), "missing.scss")}
	err := cmd.Run(testGlobal(), &CLI{})
	require.Error(t, err)
	require.Equal(t, 3, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestBuildCmd_CompilesManifestTargets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "assets/robots.txt", "User-agent: *\n")
	writeFile(t, dir, "docs/index.md", "---\ntitle: Home\n---\n# Home\n")
	manifest := writeFile(t, dir, "rollerblade.yaml", `
output_dir: dist
emit_metadata: false
targets:
  - input: assets/robots.txt
  - input: docs/index.md
    output: index.html
`)

	cmd := &BuildCmd{Config: manifest}
	require.NoError(t, cmd.Run(testGlobal(), &CLI{Verbose: true}))

	robots, err := os.ReadFile(filepath.Join(dir, "dist", "assets", "robots.txt"))
	require.NoError(t, err)
	require.Equal(t, "User-agent: *\n", string(robots))

	require.FileExists(t, filepath.Join(dir, "dist", "index.html"))
	require.NoFileExists(t, filepath.Join(dir, "dist", "index.json"))
}

func TestBuildCmd_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "a")
	manifest := writeFile(t, dir, "rollerblade.yaml", `
targets:
  - input: a.txt
    output: out/
  - input: missing.txt
`)

	err := (&BuildCmd{Config: manifest}).Run(testGlobal(), &CLI{Verbose: true})
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	require.Contains(t, err.Error(), "1 of 2 targets failed")
	require.FileExists(t, filepath.Join(dir, "out", "a.txt"))
}

func TestBuildCmd_MissingManifest(t *testing.T) {
	err := (&BuildCmd{Config: filepath.Join(t.TempDir(), "rollerblade.yaml")}).Run(testGlobal(), &CLI{})
	require.Equal(t, 7, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestBuildCmd_TemplateDataFromManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "layouts/page.mustache", "site={{site}}|{{{content}}}")
	writeFile(t, dir, "docs/index.md", "Hello\n")
	writeFile(t, dir, "docs/about.md", "About\n")
	manifest := writeFile(t, dir, "rollerblade.yaml", `
output_dir: dist
emit_metadata: false
targets:
  - input: docs/index.md
    output: index.html
    template: layouts/page.mustache
    data:
      site: Handbook
  - input: docs/about.md
    output: about.html
    options:
      template: layouts/page.mustache
      data:
        site: Nested
`)

	require.NoError(t, (&BuildCmd{Config: manifest}).Run(testGlobal(), &CLI{Verbose: true}))

	index, err := os.ReadFile(filepath.Join(dir, "dist", "index.html"))
	require.NoError(t, err)
	require.Equal(t, "site=Handbook|<p>Hello</p>\n", string(index))

	about, err := os.ReadFile(filepath.Join(dir, "dist", "about.html"))
	require.NoError(t, err)
	require.Equal(t, "site=Nested|<p>About</p>\n", string(about))
}
