package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// LastPathKey is the session storage key holding the path back links
// (anchors with an empty href) return to.
const LastPathKey = "lastPath"

// Handler serves a matched path. ctx is cancelled when another dispatch
// starts.
type Handler func(ctx context.Context, params Params) error

// ErrorFunc receives errors returned by handlers.
type ErrorFunc func(ctx context.Context, path string, err error)

type route struct {
	matcher Matcher
	handler Handler
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Router) {
		if log != nil {
			r.log = log
		}
	}
}

// WithErrorHandler sets the function receiving handler errors. Cancellation
// errors of stale dispatches are never reported.
func WithErrorHandler(fn ErrorFunc) Option {
	return func(r *Router) {
		r.onError = fn
	}
}

// WithBaseContext sets the parent of every dispatch context.
func WithBaseContext(ctx context.Context) Option {
	return func(r *Router) {
		if ctx != nil {
			r.base = ctx
		}
	}
}

// WithAsyncEvents makes link clicks and history navigation dispatch on a
// new goroutine. Hosts whose event callbacks must not block need it.
func WithAsyncEvents() Option {
	return func(r *Router) {
		r.async = true
	}
}

// Router dispatches the current document path to the first matching route.
type Router struct {
	doc     dom.Document
	log     *slog.Logger
	onError ErrorFunc
	base    context.Context
	async   bool

	mu          sync.Mutex
	routes      []route
	notFound    Handler
	after       []func(path string)
	initialized bool
	gen         uint64
	cancel      context.CancelFunc
}

// New creates a router for doc. It does nothing until Init is called.
func New(doc dom.Document, opts ...Option) *Router {
	r := &Router{
		doc:  doc,
		log:  logger.Discard(),
		base: context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddRoute appends a route. Earlier routes take precedence.
func (r *Router) AddRoute(m Matcher, h Handler) {
	if m == nil || h == nil {
		return
	}
	r.mu.Lock()
	r.routes = append(r.routes, route{matcher: m, handler: h})
	r.mu.Unlock()
}

// SetNotFound sets the handler for paths no route matches.
func (r *Router) SetNotFound(h Handler) {
	r.mu.Lock()
	r.notFound = h
	r.mu.Unlock()
}

// AfterDispatch registers fn to run after every completed dispatch with the
// dispatched path.
func (r *Router) AfterDispatch(fn func(path string)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.after = append(r.after, fn)
	r.mu.Unlock()
}

// Init subscribes to link clicks and history navigation. Calling it again
// has no effect.
func (r *Router) Init() {
	r.mu.Lock()
	if r.initialized {
		r.mu.Unlock()
		return
	}
	r.initialized = true
	r.mu.Unlock()

	r.doc.AddEventListener(dom.EventClick, r.interceptLink)
	r.doc.OnPopState(func() { r.spawn(r.HandleRouteChange) })
}

// Navigate pushes url onto the history and dispatches it.
func (r *Router) Navigate(url string) {
	r.doc.PushState(url)
	r.HandleRouteChange()
}

// HandleRouteChange dispatches the current path. It cancels the dispatch
// in progress, if any, and is a no-op before Init.
func (r *Router) HandleRouteChange() {
	path := r.doc.Path()

	r.mu.Lock()
	if !r.initialized {
		r.mu.Unlock()
		return
	}
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(logger.WithRoute(r.base, path))
	r.gen++
	gen := r.gen
	r.cancel = cancel

	h, params, matched := r.match(path)
	after := append([]func(string){}, r.after...)
	r.mu.Unlock()

	defer r.release(gen, cancel)

	if h == nil {
		r.report(ctx, path, fmt.Errorf("%w: %s", ErrNoHandler, path))
		return
	}
	r.log.DebugContext(ctx, "dispatch", slog.Bool("matched", matched))

	if err := h(ctx, params); err != nil && ctx.Err() == nil {
		r.report(ctx, path, err)
	}
	if ctx.Err() != nil {
		r.log.DebugContext(ctx, "dispatch superseded")
		return
	}

	r.doc.ScrollTo(0, 0)
	for _, fn := range after {
		fn(path)
	}
}

// match requires r.mu.
func (r *Router) match(path string) (Handler, Params, bool) {
	for _, rt := range r.routes {
		if params, ok := rt.matcher.Match(path); ok {
			return rt.handler, params, true
		}
	}
	return r.notFound, Params{}, false
}

// release cancels a finished dispatch unless a newer one already replaced it.
func (r *Router) release(gen uint64, cancel context.CancelFunc) {
	r.mu.Lock()
	if r.gen == gen {
		r.cancel = nil
	}
	r.mu.Unlock()
	cancel()
}

func (r *Router) report(ctx context.Context, path string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	r.log.ErrorContext(ctx, "route handler failed", logger.Error(err))
	if r.onError != nil {
		r.onError(ctx, path, err)
	}
}

// Current returns the current document path.
func (r *Router) Current() string {
	return r.doc.Path()
}

func (r *Router) interceptLink(e *dom.Event) {
	if e.DefaultPrevented() || e.Target == nil {
		return
	}
	anchor := e.Target.Closest("a")
	if anchor == nil {
		return
	}
	if target, _ := anchor.Attr("target"); target == "_blank" {
		return
	}
	href, ok := anchor.Attr("href")
	if !ok {
		return
	}

	if href == "" {
		href = r.backPath()
	} else if href, ok = r.resolve(href); !ok {
		return
	}
	e.PreventDefault()
	r.spawn(func() { r.Navigate(href) })
}

func (r *Router) spawn(fn func()) {
	if r.async {
		go fn()
		return
	}
	fn()
}

func (r *Router) backPath() string {
	if p, ok := r.doc.SessionStorage().Get(LastPathKey); ok && isInternal(p) {
		return p
	}
	return "/"
}

// resolve returns the path href leads to when it stays on the current
// origin: absolute paths and relative references like "about" or "?page=2".
// Fragments, schemes (mailto:, https:) and protocol-relative URLs are left to
// the browser.
func (r *Router) resolve(href string) (string, bool) {
	if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "//") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	base := &url.URL{Path: r.doc.Path()}
	return base.ResolveReference(u).RequestURI(), true
}

// isInternal reports whether href is a path on the current origin.
func isInternal(href string) bool {
	return strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//")
}
