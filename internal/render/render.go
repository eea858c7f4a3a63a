// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render renders the console pages from embedded html/template files.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/userdesk/internal/console"
)

// MaxDetailLen is the longest backend error text shown in a banner, in runes.
const MaxDetailLen = 200

// blankLinesRegex matches runs of blank lines left behind by template actions.
var blankLinesRegex = regexp.MustCompile(`(\r?\n[ \t]*)+\r?\n`)

// pageDirs are the template directories rendered with the base layout.
var pageDirs = []string{"admin", "user"}

// Renderer handles template rendering with caching.
type Renderer struct {
	templates map[string]*template.Template
	strict    *bluemonday.Policy
	isDev     bool
	version   string
}

// DefaultDir is the templates directory inside TemplatesFS.
const DefaultDir = "templates"

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	Dir         string // Defaults to DefaultDir; "." uses TemplatesFS as is
	IsDev       bool
	Version     string
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		strict:    bluemonday.StrictPolicy(),
		isDev:     cfg.IsDev,
		version:   cfg.Version,
	}

	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	templatesFS, err := fs.Sub(cfg.TemplatesFS, dir)
	if err != nil {
		return nil, fmt.Errorf("templates dir %q: %w", dir, err)
	}

	if err := r.parseTemplates(templatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses every page as base layout + partials + page.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := r.getTemplateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	baseLayout := "layouts/base.html"

	for _, dir := range pageDirs {
		pages, err := r.getTemplateFiles(templatesFS, dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", dir, err)
		}

		for _, tmplPath := range pages {
			name := dir + "/" + strings.TrimSuffix(path.Base(tmplPath), ".html")

			files := []string{baseLayout}
			files = append(files, partials...)
			files = append(files, tmplPath)

			tmpl, err := template.New("").Funcs(r.TemplateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}

			r.templates[name] = tmpl
		}
	}

	if len(r.templates) == 0 {
		return fmt.Errorf("no page templates found in %v", pageDirs)
	}
	return nil
}

// getTemplateFiles returns all .html files in a directory.
func (r *Renderer) getTemplateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		// Directory might not exist, that's ok
		return files, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// TemplateFuncs returns custom template functions.
func (r *Renderer) TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"plainText": r.PlainText,
		"truncate":  truncate,
		"fieldError": func(errs console.FieldErrors, field string) string {
			return errs[field]
		},
		"hasError": func(errs console.FieldErrors, field string) bool {
			_, ok := errs[field]
			return ok
		},
		"field": newFieldView,
		"formatDateTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 3:04 PM")
		},
	}
}

// FieldView is the data of the "text_field" partial.
type FieldView struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

func newFieldView(name, label, typ, value string, errs console.FieldErrors) FieldView {
	return FieldView{Name: name, Label: label, Type: typ, Value: value, Error: errs[name]}
}

// PlainText strips all markup from backend-supplied text. The result is
// already HTML-escaped, so it is returned as template.HTML.
func (r *Renderer) PlainText(s string) template.HTML {
	s = strings.Join(strings.Fields(r.strict.Sanitize(s)), " ")
	return template.HTML(truncate(s, MaxDetailLen)) //nolint:gosec // sanitized by bluemonday
}

// truncate shortens s to at most length runes, appending "..." when cut.
func truncate(s string, length int) string {
	if utf8.RuneCountInString(s) <= length {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:length])
	// Do not leave half an entity behind.
	if i := strings.LastIndexByte(cut, '&'); i >= 0 && !strings.Contains(cut[i:], ";") {
		cut = cut[:i]
	}
	return cut + "..."
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Nav         string // Active navigation entry
	Data        any
	CurrentYear int
	Version     string
	IsDev       bool
}

// Render renders a page with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a page with the given status code.
func (r *Renderer) RenderStatus(w http.ResponseWriter, _ *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()
	data.Version = r.version
	data.IsDev = r.isDev

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(blankLinesRegex.ReplaceAll(buf.Bytes(), []byte("\n")))
	return nil
}

// Has reports whether a page template is loaded.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}
