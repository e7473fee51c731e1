package web

import (
	"bytes"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/avelis/repoview/internal/db"
	"github.com/avelis/repoview/internal/errors"
)

// PageData contains common fields used across page templates.
type PageData struct {
	Title   string
	Version string
}

// StatusPageData is the template data for the status page.
type StatusPageData struct {
	PageData
	RemoteURL  string
	Branch     string
	Root       string
	Synced     bool
	Syncs      []db.SyncRecord
	ReadmeHTML template.HTML
}

// Renderer executes page templates.
type Renderer struct {
	tmpl    *template.Template
	version string
}

// NewRenderer parses all templates from the given filesystem.
func NewRenderer(fsys fs.FS, version string) *Renderer {
	tmpl := template.Must(template.ParseFS(fsys, "*.html"))
	return &Renderer{tmpl: tmpl, version: version}
}

// renderPage executes the named template into a buffer first, so a
// template failure yields a clean 500 instead of a half-written page.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name+".html", data); err != nil {
		log.Printf("template %s failed: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// renderError maps a structured error onto an HTTP status.
func (r *Renderer) renderError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	if rErr, ok := err.(*errors.RepoError); ok {
		status = rErr.Status
		message = rErr.Message
	}

	http.Error(w, message, status)
}

// renderMarkdown converts markdown to HTML; on conversion failure the
// source is shown escaped rather than dropped.
func (r *Renderer) renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(buf.String())
}
