// Package templates merges rendered documents into layout templates using a
// named template engine.
//
// Supported engines:
//   - whiskers, mustache: logic-less mustache templates ({{{content}}})
//   - go, text: Go text/template ({{ .content }})
//   - html: Go html/template, with content passed through unescaped
package templates

import (
	"fmt"
	"maps"
	"strings"

	"github.com/cbroglie/mustache"

	"git.home.luguber.info/inful/rollerblade/internal/foundation/normalization"
)

// Keys under which the document renderer exposes its output to templates.
const (
	ContentKey    = "content"
	AttributesKey = "attr"
)

// Engine renders a template file with data.
type Engine interface {
	Name() string
	RenderFile(path string, data map[string]any) ([]byte, error)
}

type engineFunc struct {
	name   string
	render func(path string, data map[string]any) ([]byte, error)
}

func (e engineFunc) Name() string { return e.name }

func (e engineFunc) RenderFile(path string, data map[string]any) ([]byte, error) {
	return e.render(path, data)
}

func renderMustache(path string, data map[string]any) ([]byte, error) {
	out, err := mustache.RenderFile(path, data)
	if err != nil {
		return nil, fmt.Errorf("render mustache template: %w", err)
	}
	return []byte(out), nil
}

var engines = normalization.NewNormalizer(map[string]Engine{
	"whiskers": engineFunc{"whiskers", renderMustache},
	"mustache": engineFunc{"mustache", renderMustache},
	"go":       engineFunc{"go", renderText},
	"text":     engineFunc{"text", renderText},
	"html":     engineFunc{"html", renderHTML},
}, nil)

// Lookup returns the engine registered under name (case-insensitive).
func Lookup(name string) (Engine, bool) {
	return engines.Lookup(name)
}

// Names lists the supported engine names in sorted order.
func Names() []string {
	return engines.ValidKeys()
}

// Data builds the template data for a rendered document: the caller's data
// merged with the document's attributes and rendered content.
func Data(base map[string]any, attributes map[string]any, content string) map[string]any {
	out := make(map[string]any, len(base)+2)
	maps.Copy(out, base)
	out[AttributesKey] = attributes
	out[ContentKey] = content
	return out
}

// Render renders the template at path with the named engine.
func Render(engineName, path string, data map[string]any) ([]byte, error) {
	e, ok := Lookup(engineName)
	if !ok {
		return nil, fmt.Errorf("unknown template engine %q (supported: %s)", engineName, strings.Join(Names(), ", "))
	}
	return e.RenderFile(path, data)
}
