// Package views renders the HTML pages of the patient chart service.
package views

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageLoading              = "loading.html"
	PageError                = "error.html"
	PagePatientChart         = "patient_chart.html"
	PageDiagnosticReportEdit = "diagnostic_report_edit.html"
	PageResourceDetail       = "resource_detail.html"
)

var pages = []string{
	PageLoading,
	PageError,
	PagePatientChart,
	PageDiagnosticReportEdit,
	PageResourceDetail,
}

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, err
		}
		templates[page] = tmpl
	}
	return &Renderer{templates: templates}, nil
}

// Render executes page into a buffer first so a template failure never sends a partial page.
func (r *Renderer) Render(w http.ResponseWriter, statusCode int, page string, data interface{}) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return exceptions.ErrRenderTemplate(nil, page)
	}

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "layout", data)
	if err != nil {
		return exceptions.ErrRenderTemplate(err, page)
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMETextHTMLCharsetUTF8)
	w.Header().Set(constvars.HeaderCacheControl, constvars.CacheControlNoStore)
	w.WriteHeader(statusCode)
	_, err = buf.WriteTo(w)
	return err
}
