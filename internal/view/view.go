// Package view parses the site's HTML templates and renders fragments.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer holds the parsed template set.
type Renderer struct {
	tmpl *template.Template
}

// New parses every embedded template.
func New() (*Renderer, error) {
	tmpl, err := template.New("_root").Funcs(Funcs()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Templates exposes the set for gin's HTML renderer.
func (r *Renderer) Templates() *template.Template {
	return r.tmpl
}

// Fragment executes the named template into markup for embedding in another
// template.
func (r *Renderer) Fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "render %s", name)
	}
	return template.HTML(buf.String()), nil
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": Markdown,
		"copy":     Copy,
		"year":     func() int { return time.Now().Year() },
		"fmtTime":  func(t time.Time) string { return t.Format("2006-01-02 15:04") },
		"sectionURL": func(id string, index, selected int, identity string) string {
			q := url.Values{}
			q.Set("i", strconv.Itoa(index))
			q.Set("s", strconv.Itoa(selected))
			if identity != "" {
				q.Set("v", identity)
			}
			return fmt.Sprintf("/sections/%s?%s", url.PathEscape(id), q.Encode())
		},
	}
}
