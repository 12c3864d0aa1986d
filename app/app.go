package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/component"
	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/errhandler"
	"github.com/dmitrymomot/neuralwired/notify"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
	"github.com/dmitrymomot/neuralwired/pkg/statemachine"
	"github.com/dmitrymomot/neuralwired/router"
)

// State is a lifecycle state of the application.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitializing  State = "initializing"
	StateReady         State = "ready"
	StateFailed        State = "failed"
)

type event string

const (
	eventStart event = "start"
	eventReady event = "ready"
	eventFail  event = "fail"
)

// UncaughtMessage is flashed for errors nothing else handled.
const UncaughtMessage = "An unexpected error occurred"

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger shared by all parts of the application.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) {
		if log != nil {
			a.log = log
		}
	}
}

// WithClient replaces the API client built from Config.
func WithClient(c *api.Client) Option {
	return func(a *App) {
		if c != nil {
			a.api = c
		}
	}
}

// WithFlashOptions adds options to the flash message.
func WithFlashOptions(opts ...notify.FlashOption) Option {
	return func(a *App) {
		a.flashOpts = append(a.flashOpts, opts...)
	}
}

// WithRouterOptions adds options to the router, e.g. router.WithAsyncEvents
// for hosts whose event callbacks must not block.
func WithRouterOptions(opts ...router.Option) Option {
	return func(a *App) {
		a.routerOpts = append(a.routerOpts, opts...)
	}
}

// App is the running application.
type App struct {
	cfg        Config
	doc        dom.Document
	log        *slog.Logger
	flashOpts  []notify.FlashOption
	routerOpts []router.Option

	api     *api.Client
	router  *router.Router
	errors  *errhandler.Handler
	flash   *notify.Flash
	confirm *notify.Confirm
	deps    component.Deps

	header *component.Bound
	footer *component.Bound

	lifecycle *statemachine.Machine[State, event]

	mu          sync.Mutex
	authed      bool
	headerReady bool
	current     *component.Bound
}

// New assembles an application for doc. Nothing touches the document
// until Init.
func New(doc dom.Document, cfg Config, opts ...Option) *App {
	a := &App{
		cfg: cfg,
		doc: doc,
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.api == nil {
		base := cfg.APIURL
		if base == "" {
			base = DefaultAPIURL
		}
		a.api = api.New(base, api.WithLogger(a.log), api.WithTimeout(cfg.RequestTimeout))
	}
	a.errors = errhandler.New(errhandler.WithLogger(a.log))
	a.flash = notify.NewFlash(doc, append([]notify.FlashOption{
		notify.WithDuration(cfg.FlashDuration),
		notify.WithFlashLogger(a.log),
	}, a.flashOpts...)...)
	a.confirm = notify.NewConfirm(doc, notify.WithConfirmLogger(a.log))
	a.router = router.New(doc, append([]router.Option{
		router.WithLogger(a.log),
		router.WithErrorHandler(func(_ context.Context, path string, err error) {
			a.errors.Handle(err, "route "+path)
		}),
	}, a.routerOpts...)...)

	a.deps = component.Deps{
		Doc:          doc,
		API:          a.api,
		Router:       a.router,
		Flash:        a.flash,
		Confirm:      a.confirm,
		Errors:       a.errors,
		Log:          a.log,
		DefaultTheme: cfg.DefaultTheme,
	}
	a.header = component.Bind("header", component.NewHeader(a.deps))
	a.footer = component.Bind("footer", component.NewFooter())

	a.lifecycle = statemachine.New[State, event](StateUninitialized).
		Allow(StateUninitialized, eventStart, StateInitializing).
		Allow(StateInitializing, eventReady, StateReady).
		Allow(StateInitializing, eventFail, StateFailed).
		OnTransition(func(from, to State, ev event) {
			a.log.Info("app state changed",
				logger.State(string(to)), slog.String("from", string(from)), logger.Event(string(ev)))
		})
	return a
}

// Init starts the application and dispatches the current path. On failure
// the fatal page is mounted and the application stays failed.
func (a *App) Init(ctx context.Context) error {
	if err := a.lifecycle.Fire(eventStart); err != nil {
		return fmt.Errorf("%w: %w", ErrAlreadyInitialized, err)
	}

	if err := a.start(ctx); err != nil {
		a.log.ErrorContext(ctx, "initialization failed", logger.Error(err))
		a.fatal(ctx)
		_ = a.lifecycle.Fire(eventFail)
		return errors.Join(ErrInitFailed, err)
	}

	_ = a.lifecycle.Fire(eventReady)
	a.router.HandleRouteChange()
	return nil
}

func (a *App) start(ctx context.Context) error {
	a.errors.AddListener(a.onError)
	a.doc.OnUncaughtError(a.onUncaught)

	component.ApplyTheme(a.doc, a.cfg.DefaultTheme)

	a.api.OnAuthStateChanged(a.setAuthenticated)
	a.api.CheckAuth(ctx)

	a.header.SetAuthenticated(a.Authenticated())
	if err := a.mountChrome(ctx, dom.RegionHeader, a.header); err != nil {
		return err
	}
	a.mu.Lock()
	a.headerReady = true
	a.mu.Unlock()
	if err := a.mountChrome(ctx, dom.RegionFooter, a.footer); err != nil {
		return err
	}

	a.router.Init()
	a.registerRoutes()
	return nil
}

func (a *App) mountChrome(ctx context.Context, region string, b *component.Bound) error {
	if err := dom.Mount(ctx, a.doc, region, b.Render()); err != nil {
		return err
	}
	b.PostRender(ctx)
	return nil
}

// fatal replaces the shell with the static error page.
func (a *App) fatal(ctx context.Context) {
	for _, region := range []string{dom.RegionHeader, dom.RegionFooter} {
		if el := a.doc.ElementByID(region); el != nil {
			el.SetInnerHTML("")
		}
	}
	if err := dom.Mount(ctx, a.doc, dom.RegionContent, component.Fatal()); err == nil {
		return
	}
	markup, err := dom.RenderString(ctx, component.Fatal())
	if err == nil {
		err = a.doc.AppendToBody(markup)
	}
	if err != nil {
		a.log.ErrorContext(ctx, "fatal page", logger.Error(err))
	}
}

// State returns the lifecycle state.
func (a *App) State() State { return a.lifecycle.Current() }

// Authenticated returns the cached authentication state.
func (a *App) Authenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.authed
}

// Router returns the application router.
func (a *App) Router() *router.Router { return a.router }

// Client returns the API client.
func (a *App) Client() *api.Client { return a.api }

// Flash returns the flash message.
func (a *App) Flash() *notify.Flash { return a.flash }

// Confirm returns the confirm dialog.
func (a *App) Confirm() *notify.Confirm { return a.confirm }

// Errors returns the error handler.
func (a *App) Errors() *errhandler.Handler { return a.errors }

// setAuthenticated is the auth event listener. It updates every auth-aware
// component and re-renders the header.
func (a *App) setAuthenticated(authenticated bool) {
	a.mu.Lock()
	a.authed = authenticated
	current := a.current
	headerReady := a.headerReady
	a.mu.Unlock()

	a.header.SetAuthenticated(authenticated)
	if current != nil {
		current.SetAuthenticated(authenticated)
	}
	if headerReady {
		ctx := context.Background()
		if err := a.mountChrome(ctx, dom.RegionHeader, a.header); err != nil {
			a.log.Error("header re-render failed", logger.Error(err))
		}
	}
}

func (a *App) onError(r errhandler.Report) {
	if errhandler.IsAuthError(r.Err) && a.Authenticated() {
		a.forceLogout()
		return
	}
	a.flash.Error(errhandler.FormatMessage(r.Err))
}

// forceLogout drops a session the backend no longer accepts.
func (a *App) forceLogout() {
	ctx := context.Background()
	a.log.Warn("session rejected, logging out")
	if _, err := a.api.Logout(ctx); err != nil {
		a.log.Warn("logout failed", logger.Error(err))
		a.setAuthenticated(false)
	}
	a.flash.Error("Your session has expired. Please log in again.")
	a.router.Navigate("/login")
}

func (a *App) onUncaught(err error) {
	a.log.Error("uncaught error", logger.Error(err))
	a.flash.Error(UncaughtMessage)
}

func (a *App) setCurrent(b *component.Bound) {
	a.mu.Lock()
	a.current = b
	authed := a.authed
	a.mu.Unlock()
	b.SetAuthenticated(authed)
}

// RenderComponent runs the lifecycle of b in the content region: loading
// placeholder, fetch, render, post-render. A fetch error mounts the error
// panel; a cancelled ctx stops before anything stale is mounted.
func (a *App) RenderComponent(ctx context.Context, b *component.Bound, arg string) error {
	log := a.log.With(logger.Component(b.Name))
	a.setCurrent(b)

	if err := a.mount(ctx, component.Loading()); err != nil {
		return err
	}

	if err := b.Fetch(ctx, arg); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WarnContext(ctx, "fetch failed", logger.Error(err))
		if err := a.mount(ctx, component.ErrorPanel(errhandler.FormatMessage(err), a.doc.Path())); err != nil {
			return err
		}
		if errhandler.IsAuthError(err) {
			a.errors.Handle(err, b.Name)
		}
		return nil
	}
	if ctx.Err() != nil {
		log.DebugContext(ctx, "stale fetch dropped")
		return ctx.Err()
	}

	if to := b.Redirect(); to != "" {
		a.router.Navigate(to)
		return nil
	}
	if b.Missing() {
		b = component.Bind("not-found", component.NewNotFound())
		a.setCurrent(b)
	}

	if err := a.mount(ctx, b.Render()); err != nil {
		return err
	}
	b.PostRender(ctx)
	return nil
}

// mount replaces the content region unless ctx belongs to a superseded
// dispatch.
func (a *App) mount(ctx context.Context, c templ.Component) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return dom.Mount(ctx, a.doc, dom.RegionContent, c)
}
