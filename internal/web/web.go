// Package web renders the HTML report page from embedded templates.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/sevigo/review-assistant/internal/core"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageData is the template context for the index page.
type PageData struct {
	Code     string
	Findings []core.Finding
	// FindingsJSON feeds the client-side chart aggregation.
	FindingsJSON template.JS
}

// Renderer holds the parsed page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates once at startup.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderIndex writes the form page. A nil report renders the empty form;
// a report renders the original input plus the findings table and charts.
func (r *Renderer) RenderIndex(w io.Writer, report *core.Report) error {
	data := PageData{}
	if report != nil {
		data.Code = report.Code
		data.Findings = report.Findings

		raw, err := json.Marshal(report.Findings)
		if err != nil {
			return fmt.Errorf("failed to marshal findings: %w", err)
		}
		data.FindingsJSON = template.JS(raw)
	}

	if err := r.tmpl.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		return fmt.Errorf("failed to render index page: %w", err)
	}
	return nil
}
