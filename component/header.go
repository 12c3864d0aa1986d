package component

import (
	"context"
	"sync"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// Element ids of the header controls.
const (
	ThemeToggleID  = "theme-toggle"
	LogoutButtonID = "logout-button"
)

// Header is the site navigation bar.
type Header struct {
	deps Deps

	mu     sync.Mutex
	authed bool
}

// NewHeader creates the header.
func NewHeader(deps Deps) *Header {
	return &Header{deps: deps}
}

// SetAuthenticated switches between the login link and the admin links.
func (h *Header) SetAuthenticated(authenticated bool) {
	h.mu.Lock()
	h.authed = authenticated
	h.mu.Unlock()
}

func (h *Header) isAuthed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.authed
}

// Render returns the site navigation.
func (h *Header) Render() templ.Component {
	authed := h.isAuthed()
	return view(func(m *markup) {
		m.raw(`<header class="site-header"><div class="header-inner">`,
			`<a href="/" class="site-name">neuralwired</a>`,
			`<nav class="site-nav">`,
			`<a href="/blog">Blog</a>`,
			`<button type="button" id="`+ThemeToggleID+`" class="theme-toggle" aria-label="Toggle theme">&#9680;</button>`)
		if authed {
			m.raw(`<a href="/manage">Manage</a>`,
				`<a href="#" id="`+LogoutButtonID+`">Logout</a>`)
		} else {
			m.raw(`<a href="/login">Login</a>`)
		}
		m.raw(`</nav></div></header>`)
	})
}

// PostRender wires the theme toggle and the logout link.
func (h *Header) PostRender(ctx context.Context) {
	doc := h.deps.Doc
	if btn := doc.ElementByID(ThemeToggleID); btn != nil {
		btn.AddEventListener(dom.EventClick, func(*dom.Event) { ToggleTheme(doc) })
	}
	if link := doc.ElementByID(LogoutButtonID); link != nil {
		ctx := detach(ctx)
		link.AddEventListener(dom.EventClick, func(e *dom.Event) {
			e.PreventDefault()
			h.logout(ctx)
		})
	}
}

func (h *Header) logout(ctx context.Context) {
	if _, err := h.deps.API.Logout(ctx); err != nil {
		h.deps.logger().WarnContext(ctx, "logout failed", logger.Component("header"), logger.Error(err))
		h.deps.report(err, "logout")
		return
	}
	h.deps.Flash.Success("Logged out successfully")
	h.deps.Router.Navigate("/")
}
