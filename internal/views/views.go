package views

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sushihentaime/globalaffair/internal/markdown"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var ErrUnknownPage = errors.New("unknown page")

// Pages are the templates a handler may render. Each one is parsed together with the layout.
var Pages = []string{"home", "blog", "addBlog", "editBlog", "signin", "signup"}

const excerptLength = 200

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"markdown": markdown.ToHTML,
	"excerpt": func(s string) string {
		return markdown.Excerpt(s, excerptLength)
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
}

// New parses every page once. A template error is reported at startup instead of on first use.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}

	for _, name := range Pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.tmpl", "templates/"+name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("could not parse template %s: %w", name, err)
		}

		r.pages[name] = t
	}

	return r, nil
}

// Render executes the named page inside the layout.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, name)
	}

	return t.ExecuteTemplate(w, "layout", data)
}
