package view

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"io"
	"io/fs"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oksasatya/discount-catalog/pkg/helpers"
)

//go:embed templates/*.tmpl
var FS embed.FS

const layoutFile = "templates/layout.html.tmpl"

// Renderer holds one parsed template set per page; every set shares the layout.
type Renderer struct {
	pages map[string]*htmpl.Template
}

// New parses every templates/<page>.html.tmpl against the layout.
func New() (*Renderer, error) {
	files, err := fs.Glob(FS, "templates/*.html.tmpl")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*htmpl.Template, len(files))}
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(f, "templates/"), ".html.tmpl")
		tpl, err := htmpl.New("page").Funcs(funcs()).ParseFS(FS, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("parse page %q: %w", name, err)
		}
		r.pages[name] = tpl
	}
	return r, nil
}

// Render executes page into w. The page is rendered to a buffer first so a
// template error never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("exec page %q: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Has reports whether page was parsed.
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}

func funcs() htmpl.FuncMap {
	return htmpl.FuncMap{
		"upper":      strings.ToUpper,
		"formatDate": formatDate,
		"dateOnly":   helpers.DateOnly,
		"initial":    initial,
		"default": func(fallback, value string) string {
			if strings.TrimSpace(value) == "" {
				return fallback
			}
			return value
		},
		"year": func() int { return time.Now().Year() },
	}
}

// formatDate renders API dates as "2 January 2006" in their own offset; unparseable input is returned as is.
func formatDate(s string) string {
	t, ok := helpers.ParseTime(s)
	if !ok {
		return s
	}
	return t.Format("2 January 2006")
}

func initial(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r))
}
