// Package view renders HTML pages from a data payload. The rest of the
// app treats it as an opaque collaborator: payload in, response body out.
package view

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
)

type Renderer struct {
	templates *template.Template
	logger    *slog.Logger
}

// New parses every template under dir once at startup.
func New(dir string, logger *slog.Logger) (*Renderer, error) {
	t, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{templates: t, logger: logger}, nil
}

// Render writes the named template with the given payload.
func (r *Renderer) Render(w http.ResponseWriter, name string, payload any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.templates.ExecuteTemplate(w, name, payload); err != nil {
		r.logger.Error("template render failed", slog.String("template", name), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
