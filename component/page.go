package component

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/neuralwired/api"
)

// Page shows a static page. Blog posts redirect to their canonical
// /blog/<slug> address.
type Page struct {
	deps   Deps
	authed bool
	page   *api.Page
}

// NewPage creates the page view.
func NewPage(deps Deps) *Page {
	return &Page{deps: deps}
}

// SetAuthenticated shows or hides the edit link.
func (p *Page) SetAuthenticated(authenticated bool) { p.authed = authenticated }

// FetchData loads the page stored under slug. A 404 is not an error.
func (p *Page) FetchData(ctx context.Context, slug string) error {
	p.page = nil
	page, err := p.deps.API.GetPageBySlug(ctx, slug)
	switch {
	case api.IsStatus(err, http.StatusNotFound):
		return nil
	case err != nil:
		return err
	}
	p.page = &page
	return nil
}

// Found reports whether the last fetch returned a page.
func (p *Page) Found() bool { return p.page != nil }

// RedirectTo sends blog posts to their /blog URL.
func (p *Page) RedirectTo() string {
	if p.page != nil && p.page.IsBlog {
		return "/blog/" + p.page.Slug
	}
	return ""
}

// Render returns the page, or the not-found view.
func (p *Page) Render() templ.Component {
	if p.page == nil {
		return NewNotFound().Render()
	}
	page := *p.page
	return view(func(m *markup) {
		m.raw(`<article class="page"><header class="page-header"><h1>`)
		m.text(page.Title)
		m.raw(`</h1>`)
		if p.authed {
			m.child(editLink(page.Slug))
		}
		m.raw(`</header><div class="page-content">`, page.Content, `</div></article>`)
	})
}
