// Package view renders the server-side HTML pages. Every page template
// defines "content" and is executed inside layout.html:
//
//	r, err := view.New(resources.Views(), view.Globals{AppName: "Pizzeria"})
//	err = r.Render(w, "index", view.Page{Title: "Pizza Delivery System"})
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
)

const layoutFile = "layout.html"

// Globals are available to every page as .Global.
type Globals struct {
	AppName     string
	CompanyName string
	YearCreated string
	BaseURL     string
}

// Page carries the per-page values.
type Page struct {
	Title       string
	Description string
	BodyClass   string
	Data        any
}

type viewData struct {
	Page
	Global Globals
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages   map[string]*template.Template
	globals Globals
}

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"cents": func(c int64) string { return fmt.Sprintf("%d.%02d", c/100, c%100) },
}

// New parses layout.html and every other *.html file in fsys. A page is
// named after its file without the extension.
func New(fsys fs.FS, g Globals) (*Renderer, error) {
	layout, err := fs.ReadFile(fsys, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("view: read layout: %w", err)
	}

	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("view: list templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template), globals: g}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		body, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("view: read %s: %w", file, err)
		}

		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(layoutFile).Funcs(funcs).Parse(string(layout))
		if err != nil {
			return nil, fmt.Errorf("view: parse layout: %w", err)
		}
		if _, err := t.New(file).Parse(string(body)); err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", file, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page name to w. Output is buffered, so nothing reaches w
// when execution fails.
func (r *Renderer) Render(w io.Writer, name string, p Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutFile, viewData{Page: p, Global: r.globals}); err != nil {
		return fmt.Errorf("view: render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Names lists the pages, sorted.
func (r *Renderer) Names() []string {
	names := make([]string, 0, len(r.pages))
	for n := range r.pages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
