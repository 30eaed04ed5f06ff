// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site.
// Every page template is paired with the shared base layout at startup;
// pages render into a buffer so the result can also go to the page cache.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Site carries the site-wide settings every page needs.
type Site struct {
	Name         string
	URL          string // base URL, no trailing slash
	Logo         string // raw logo URL, empty for a text logo
	AssetVersion string // cache tag for media URLs
}

// PageData holds everything passed to a page template.
type PageData struct {
	Site        Site
	Title       string // <title>, without the site name
	Description string // meta description
	Section     string // active nav item: "posts" or "categories"
	Year        int
	Data        any // page-specific view, see views.go
}

// Renderer holds the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
	site      Site
}

// shared lists the files parsed into every page rather than rendered alone.
var shared = map[string]bool{
	"base.html":     true,
	"partials.html": true,
}

// New parses all embedded page templates, each paired with the base layout
// and the shared partials.
func New(site Site) (*Renderer, error) {
	rn := &Renderer{
		templates: make(map[string]*template.Template),
		site:      site,
	}
	funcs := funcMap(site)

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || shared[name] || !strings.HasSuffix(name, ".html") {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(
			templateFS, "templates/base.html", "templates/partials.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		rn.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return rn, nil
}

// Has reports whether a page template with the given name exists.
func (rn *Renderer) Has(name string) bool {
	_, ok := rn.templates[name]
	return ok
}

// NewPage returns PageData prefilled with the site settings.
func (rn *Renderer) NewPage(title, section string, data any) *PageData {
	return &PageData{
		Site:    rn.site,
		Title:   title,
		Section: section,
		Year:    time.Now().Year(),
		Data:    data,
	}
}

// Render executes the named page into a byte slice.
func (rn *Renderer) Render(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders the named page and writes it with the given status. Render
// failures become a plain 500.
func (rn *Renderer) Page(w http.ResponseWriter, status int, name string, data *PageData) {
	body, err := rn.Render(name, data)
	if err != nil {
		slog.Error("render page failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	Write(w, status, body)
}

// Write sends pre-rendered HTML.
func Write(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
