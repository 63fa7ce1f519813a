// Package render renders the embedded HTML templates.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders named page templates
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates
func New() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"epoch": formatEpoch,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render writes the named template with the given data
func (r *Renderer) Render(w io.Writer, name string, data map[string]any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// formatEpoch turns a string-encoded Unix timestamp into a readable UTC time.
// Unparseable values are shown as-is.
func formatEpoch(s string) string {
	seconds, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	return time.Unix(seconds, 0).UTC().Format("2006-01-02 15:04")
}
