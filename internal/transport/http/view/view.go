// Package view holds the server-rendered pages. Every page is parsed together
// with the shared layout and rendered through it.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"
)

const layoutFile = "templates/layout.html"

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements gin's render.HTMLRender over a page name -> template map.
type Renderer struct {
	templates map[string]*template.Template
}

func New() (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates failed: %w", err)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if page == layoutFile {
			continue
		}
		t, err := template.ParseFS(templateFS, layoutFile, page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s failed: %w", page, err)
		}
		templates[strings.TrimSuffix(path.Base(page), ".html")] = t
	}
	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		return render.String{Format: "template %s not found", Data: []any{name}}
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}
