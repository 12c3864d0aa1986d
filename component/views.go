package component

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/neuralwired/api"
)

// Loading is the placeholder mounted while a component fetches.
func Loading() templ.Component {
	return view(func(m *markup) {
		m.raw(`<div class="loading">Loading...</div>`)
	})
}

// ErrorPanel replaces a component whose fetch failed.
func ErrorPanel(message, reloadHref string) templ.Component {
	return view(func(m *markup) {
		m.raw(`<div class="error-container"><h1>Error</h1><p>`)
		m.text(message)
		m.raw(`</p><p><a href="`, esc(reloadHref), `" class="reload-link">Reload page</a></p></div>`)
	})
}

// Fatal replaces the whole shell when the application cannot start.
func Fatal() templ.Component {
	return view(func(m *markup) {
		m.raw(`<div class="error-container fatal-error">`,
			`<h1>Something went wrong</h1>`,
			`<p>We're having trouble loading the application. Please try again later.</p>`,
			`<p><a href="/" class="reload-link">Reload</a></p>`,
			`</div>`)
	})
}

// NotFound is the view for unknown paths and missing pages.
type NotFound struct{}

// NewNotFound returns the not-found view.
func NewNotFound() *NotFound { return &NotFound{} }

// Render returns the not-found view.
func (*NotFound) Render() templ.Component {
	return view(func(m *markup) {
		m.raw(`<div class="not-found">`,
			`<h1>Page Not Found</h1>`,
			`<p>The page you are looking for does not exist.</p>`,
			`<p><a href="/">Return to home</a></p>`,
			`</div>`)
	})
}

func postCard(p api.Page) templ.Component {
	return view(func(m *markup) {
		m.raw(`<article class="post-card"><h3><a href="/blog/`, esc(p.Slug), `">`)
		m.text(p.Title)
		m.raw(`</a></h3><p class="post-date">`)
		m.text(displayDate(p.PublishedDate))
		m.raw(`</p><div class="post-excerpt">`, excerptHTML(p), `</div></article>`)
	})
}

func postList(posts []api.Page, empty string) templ.Component {
	return view(func(m *markup) {
		if len(posts) == 0 {
			m.raw(`<p class="empty">`)
			m.text(empty)
			m.raw(`</p>`)
			return
		}
		m.raw(`<div class="post-list">`)
		for _, p := range posts {
			m.child(postCard(p))
		}
		m.raw(`</div>`)
	})
}

func editLink(slug string) templ.Component {
	return view(func(m *markup) {
		m.raw(`<a href="/edit/`, esc(slug), `" class="edit-link">Edit</a>`)
	})
}
