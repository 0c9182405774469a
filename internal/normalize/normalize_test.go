package normalize

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
)

type stubCompiler struct {
	ext      string
	defaults compiler.Options
	warn     bool
}

func (s stubCompiler) Name() string               { return "stub" }
func (s stubCompiler) Matches(string) bool        { return true }
func (s stubCompiler) Defaults() compiler.Options { return s.defaults }
func (s stubCompiler) OutputExtension() string    { return s.ext }
func (s stubCompiler) Validate(r *compiler.Resolved) []*errors.ClassifiedError {
	if !s.warn {
		return nil
	}
	return []*errors.ClassifiedError{errors.ValidationWarning("unable to find tsconfig").WithPath(r.Input).Build()}
}
func (s stubCompiler) Transform(context.Context, *compiler.Resolved) (*compiler.Result, error) {
	return nil, nil
}

func writeInput(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	return p
}

func TestResolveOutput(t *testing.T) {
	cases := []struct {
		name, input, out, ext, want string
	}{
		{"derived next to input", "src/a.ts", "", "js", filepath.Join("src", "a.js")},
		{"derived keeps extension", "img/logo.png", "", "", filepath.Join("img", "logo.png")},
		{"directory marker", "src/a.ts", "out/", "js", filepath.Join("out", "a.js")},
		{"directory marker copy", "src/logo.png", "out/", "", filepath.Join("out", "logo.png")},
		{"no extension appended", "src/a.ts", "dist/bundle", "js", filepath.Join("dist", "bundle.js")},
		{"caller extension overridden", "style.scss", "dist/site.txt", "css", filepath.Join("dist", "site.css")},
		{"explicit file kept", "logo.png", "dist/brand.png", "", "dist/brand.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ResolveOutput(tc.input, tc.out, tc.ext))
		})
	}
}

func TestNormalize_DerivesOutputNextToInput(t *testing.T) {
	input := writeInput(t, "a.ts")

	resolved, warnings, err := Normalize(&compiler.Request{Input: input}, stubCompiler{ext: "js"})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, filepath.Join(filepath.Dir(input), "a.js"), resolved.Output)
}

func TestNormalize_MergesCallerOptionsOverDefaults(t *testing.T) {
	input := writeInput(t, "doc.md")
	c := stubCompiler{ext: "html", defaults: compiler.Options{"emitMetadata": true, "templateEngine": "whiskers"}}

	resolved, _, err := Normalize(&compiler.Request{
		Input:   input,
		Options: compiler.Options{"emitMetadata": false, "template": "t.html"},
	}, c)
	require.NoError(t, err)
	require.Equal(t, compiler.Options{
		"emitMetadata":   false,
		"templateEngine": "whiskers",
		"template":       "t.html",
	}, resolved.Options)
	require.Equal(t, true, c.defaults["emitMetadata"], "defaults must not be mutated")
}

func TestNormalize_ConfigurationErrors(t *testing.T) {
	_, _, err := Normalize(nil, stubCompiler{})
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, _, err = Normalize(&compiler.Request{Input: "  "}, stubCompiler{})
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestNormalize_InputNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.ts")

	_, _, err := Normalize(&compiler.Request{Input: missing}, stubCompiler{ext: "js"})
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	require.Contains(t, err.Error(), missing)
}

func TestNormalize_DirectoryInputIsNotFound(t *testing.T) {
	_, _, err := Normalize(&compiler.Request{Input: t.TempDir()}, stubCompiler{})
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestNormalize_WarningsDoNotAbort(t *testing.T) {
	input := writeInput(t, "a.ts")

	resolved, warnings, err := Normalize(&compiler.Request{Input: input, Output: "out/"}, stubCompiler{ext: "js", warn: true})
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Len(t, warnings, 1)
	require.True(t, warnings[0].IsWarning())
	require.Equal(t, filepath.Join("out", "a.js"), resolved.Output)
}

func TestIsDirectoryTarget(t *testing.T) {
	require.True(t, IsDirectoryTarget("out/"))
	require.True(t, IsDirectoryTarget("out"+string(filepath.Separator)))
	require.False(t, IsDirectoryTarget("out"))
	require.False(t, IsDirectoryTarget(""))
}
