package component

import (
	"context"
	"io"
	"log/slog"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// Renderer produces the markup of a component.
type Renderer interface {
	Render() templ.Component
}

// Fetcher loads the data a component renders. arg is the route parameter
// (a slug) or empty.
type Fetcher interface {
	FetchData(ctx context.Context, arg string) error
}

// PostRenderer attaches behavior once the markup is in the document.
type PostRenderer interface {
	PostRender(ctx context.Context)
}

// AuthAware components render differently for signed-in users.
type AuthAware interface {
	SetAuthenticated(authenticated bool)
}

// Finder reports whether FetchData found the requested entity.
type Finder interface {
	Found() bool
}

// Redirector names a path to go to instead of rendering, or "".
type Redirector interface {
	RedirectTo() string
}

// Bound is a component with its capabilities resolved.
type Bound struct {
	Name string

	renderer   Renderer
	fetcher    Fetcher
	post       PostRenderer
	auth       AuthAware
	finder     Finder
	redirector Redirector
}

// Bind resolves the capabilities of r.
func Bind(name string, r Renderer) *Bound {
	b := &Bound{Name: name, renderer: r}
	b.fetcher, _ = r.(Fetcher)
	b.post, _ = r.(PostRenderer)
	b.auth, _ = r.(AuthAware)
	b.finder, _ = r.(Finder)
	b.redirector, _ = r.(Redirector)
	return b
}

// Component returns the bound value.
func (b *Bound) Component() Renderer { return b.renderer }

// CanFetch reports whether the component has a fetch phase.
func (b *Bound) CanFetch() bool { return b.fetcher != nil }

// Fetch runs the fetch phase, if any.
func (b *Bound) Fetch(ctx context.Context, arg string) error {
	if b.fetcher == nil {
		return nil
	}
	return b.fetcher.FetchData(ctx, arg)
}

// Render returns the component markup.
func (b *Bound) Render() templ.Component { return b.renderer.Render() }

// PostRender runs the post-render phase, if any.
func (b *Bound) PostRender(ctx context.Context) {
	if b.post != nil {
		b.post.PostRender(ctx)
	}
}

// SetAuthenticated forwards the auth state and reports whether the
// component cares about it.
func (b *Bound) SetAuthenticated(authenticated bool) bool {
	if b.auth == nil {
		return false
	}
	b.auth.SetAuthenticated(authenticated)
	return true
}

// Missing reports whether the fetch phase found nothing to show.
func (b *Bound) Missing() bool {
	return b.finder != nil && !b.finder.Found()
}

// Redirect returns where the component wants to go instead, or "".
func (b *Bound) Redirect() string {
	if b.redirector == nil {
		return ""
	}
	return b.redirector.RedirectTo()
}

// API is the part of the backend client components use.
type API interface {
	Login(ctx context.Context, username, password string) (api.MutationResult, error)
	Logout(ctx context.Context) (api.MutationResult, error)
	GetSiteContent(ctx context.Context) (api.SiteContent, error)
	UpdateIntroduction(ctx context.Context, content string) (api.MutationResult, error)
	GetAllPages(ctx context.Context) ([]api.Page, error)
	GetPageBySlug(ctx context.Context, slug string) (api.Page, error)
	CreatePage(ctx context.Context, in api.PageInput) (api.MutationResult, error)
	UpdatePage(ctx context.Context, slug string, in api.PageInput) (api.MutationResult, error)
	DeletePage(ctx context.Context, slug string) (api.MutationResult, error)
	GetBlogPosts(ctx context.Context, q api.PostsQuery) ([]api.Page, error)
	UploadImage(ctx context.Context, name string, r io.Reader) (string, error)
}

// Navigator changes the current route.
type Navigator interface {
	Navigate(url string)
}

// Flasher shows transient messages.
type Flasher interface {
	Success(message string)
	Error(message string)
}

// Confirmer asks the user to confirm an action.
type Confirmer interface {
	Show(message string, onConfirm, onCancel func())
}

// Reporter receives errors the user should hear about.
type Reporter interface {
	Handle(err error, source string) string
}

// Deps are the collaborators shared by all components.
type Deps struct {
	Doc     dom.Document
	API     API
	Router  Navigator
	Flash   Flasher
	Confirm Confirmer
	Errors  Reporter
	Log     *slog.Logger
	// DefaultTheme applies when nothing is stored yet.
	DefaultTheme string
}

func (d Deps) logger() *slog.Logger {
	if d.Log == nil {
		return logger.Discard()
	}
	return d.Log
}

func (d Deps) report(err error, source string) {
	if d.Errors != nil {
		d.Errors.Handle(err, source)
	}
}

// remount renders r into the content region again and re-runs its
// post-render phase.
func (d Deps) remount(ctx context.Context, r Renderer) {
	if err := dom.Mount(ctx, d.Doc, dom.RegionContent, r.Render()); err != nil {
		d.logger().ErrorContext(ctx, "remount failed", logger.Error(err))
		return
	}
	if p, ok := r.(PostRenderer); ok {
		p.PostRender(ctx)
	}
}

// detach keeps ctx values for work started by user events, which outlive
// the dispatch that mounted the listeners.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
