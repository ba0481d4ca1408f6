// Package render turns page data into HTML using the templates embedded
// in the binary. Each page is parsed together with the shared layout once
// at startup; rendering only executes.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/aanand-mishra/students-web/internal/types"
)

// Page names accepted by Renderer.HTML.
const (
	PageIndex  = "index.html"
	PageUpdate = "update.html"
	PageError  = "error.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexPage is the data for the list + create page.
type IndexPage struct {
	Students []types.Student
	Form     types.StudentForm
	Errors   []string
}

// UpdatePage is the data for the edit form of one student.
type UpdatePage struct {
	ID     int64
	Form   types.StudentForm
	Errors []string
}

// ErrorPage is the data for every non-2xx HTML answer.
type ErrorPage struct {
	Status  int
	Title   string
	Message string
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page against the layout.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageIndex, PageUpdate, PageError} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("render.New: parse %s: %w", page, err)
		}
		r.pages[page] = t
	}

	return r, nil
}

// HTML executes page with data and writes it with status. The page is
// rendered into a buffer first so a template failure never leaves a
// half-written 200 behind.
func (r *Renderer) HTML(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("render: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render: execute %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Error renders the error page for status. If even that fails the
// client still gets a plain-text answer with the right code.
func (r *Renderer) Error(w http.ResponseWriter, status int, message string) {
	page := ErrorPage{
		Status:  status,
		Title:   http.StatusText(status),
		Message: message,
	}
	if err := r.HTML(w, status, PageError, page); err != nil {
		http.Error(w, message, status)
	}
}
