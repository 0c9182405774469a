package templates

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"path/filepath"
	"text/template"
)

// renderText renders a text/template file with data.
func renderText(path string, data map[string]any) ([]byte, error) {
	tpl, err := template.New(filepath.Base(path)).Option("missingkey=zero").ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return buf.Bytes(), nil
}

// renderHTML renders an html/template file with data. The rendered document
// body under "content" is trusted markup and is not escaped again.
func renderHTML(path string, data map[string]any) ([]byte, error) {
	tpl, err := htmltemplate.New(filepath.Base(path)).Option("missingkey=zero").ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	safe := make(map[string]any, len(data))
	for k, v := range data {
		safe[k] = v
	}
	if content, ok := data[ContentKey].(string); ok {
		// #nosec G203 -- content is markup produced by the document renderer.
		safe[ContentKey] = htmltemplate.HTML(content)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, safe); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return buf.Bytes(), nil
}
