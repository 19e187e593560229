// Package components renders the generator page.
package components

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dodomains/dodomains/internal/app/presenter"
	"github.com/dodomains/dodomains/internal/catalog"
	"github.com/dodomains/dodomains/internal/form"
	"github.com/dodomains/dodomains/internal/session"
)

//go:embed templates/*.html
var templates embed.FS

var index = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templates, "templates/index.html"),
)

// PageData is everything the page template reads.
type PageData struct {
	State        session.State
	View         presenter.View
	Views        presenter.Views
	Rows         []presenter.Row
	Styles       []catalog.StyleOption
	Categories   []catalog.CategoryOption
	CategoryTLDs []string
	MinLength    int
	MaxLength    int
}

// NewPageData derives the page model from a session snapshot.
func NewPageData(st session.State, view presenter.View) PageData {
	views := presenter.Present(st.Results)

	return PageData{
		State:        st,
		View:         view,
		Views:        views,
		Rows:         views.Rows(view),
		Styles:       catalog.Styles(),
		Categories:   catalog.Categories(),
		CategoryTLDs: catalog.TLDs(catalog.Category(st.Category)),
		MinLength:    form.MinLength,
		MaxLength:    form.MaxLength,
	}
}

// Index is the full generator page.
func Index(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return index.Execute(w, d)
	})
}
