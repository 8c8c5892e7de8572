// Package views renders the dashboard pages and table fragments from
// embedded html/template files.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.tmpl templates/partials/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page templates. Each is executed through the "layout" template.
const (
	PageVMs           = "vms.tmpl"
	PageTmux          = "tmux.tmpl"
	PageSessionDetail = "tmux_detail.tmpl"
	PageActivity      = "activity.tmpl"
	PageError         = "error.tmpl"
)

// Fragment templates, rendered without the layout
const (
	FragmentVMTable       = "partials/vm_table.tmpl"
	FragmentSessionTable  = "partials/session_table.tmpl"
	FragmentSessionDetail = "partials/session_detail.tmpl"
)

const layoutFile = "_layout.tmpl"

var funcs = template.FuncMap{
	"badge":        BadgeVariant,
	"commandLabel": CommandLabel,
}

// Renderer implements echo.Renderer over the embedded templates
type Renderer struct {
	templates map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses every page with the layout and every fragment on its own
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	pages, err := fs.Glob(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	for _, p := range pages {
		name := path.Base(p)
		if name == layoutFile {
			continue
		}
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/"+layoutFile, p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.templates[name] = t
	}

	partials, err := fs.Glob(templateFS, "templates/partials/*.tmpl")
	if err != nil {
		return nil, err
	}
	for _, p := range partials {
		name := "partials/" + path.Base(p)
		t, err := template.New(path.Base(p)).Funcs(funcs).ParseFS(templateFS, p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fragment %s: %w", name, err)
		}
		r.templates[name] = t
	}

	return r, nil
}

// Render executes a page through the layout, or a fragment directly
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	if strings.HasPrefix(name, "partials/") {
		return t.ExecuteTemplate(w, path.Base(name), data)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Static returns the embedded stylesheet and scripts
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
