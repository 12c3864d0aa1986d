package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/neuralwired/component"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
	"github.com/dmitrymomot/neuralwired/router"
)

const slugExpr = `(?<slug>[a-zA-Z0-9-]+)`

// factory builds a fresh component for one dispatch.
type factory func(component.Deps) component.Renderer

type access int

const (
	public access = iota
	protected
	guestOnly
)

func (a *App) registerRoutes() {
	routes := []struct {
		matcher router.Matcher
		name    string
		build   factory
		access  access
		arg     string
	}{
		{router.Exact("/"), "home", homeFactory, public, ""},
		{router.Exact("/login"), "login", loginFactory, guestOnly, ""},
		{router.Exact("/blog"), "blog", blogFactory, public, ""},
		{router.Pattern(`/blog/` + slugExpr), "blog-post", postFactory, public, ""},
		{router.Pattern(`/p/` + slugExpr), "page", pageFactory, public, ""},
		{router.Exact("/manage"), "manage", manageFactory, protected, ""},
		{router.Pattern(`/edit/` + slugExpr), "editor", editorFactory, protected, ""},
		{router.Exact("/new"), "editor", editorFactory, protected, ""},
		{router.Exact("/edit-intro"), "editor", editorFactory, protected, component.IntroductionArg},
	}
	for _, rt := range routes {
		a.router.AddRoute(rt.matcher, a.handler(rt.name, rt.build, rt.access, rt.arg))
	}
	a.router.SetNotFound(a.handler("not-found", notFoundFactory, public, ""))
	a.router.AfterDispatch(a.rememberPath)
}

// handler adapts a component to a route. arg overrides the slug param.
func (a *App) handler(name string, build factory, acc access, arg string) router.Handler {
	return func(ctx context.Context, params router.Params) (err error) {
		defer func() {
			if r := recover(); r != nil {
				a.log.ErrorContext(ctx, "route handler panicked", logger.Component(name))
				a.onUncaught(fmt.Errorf("panic in %s: %v", name, r))
				err = nil
			}
		}()

		switch {
		case acc == protected && !a.Authenticated():
			a.router.Navigate("/login")
			return nil
		case acc == guestOnly && a.Authenticated():
			a.router.Navigate("/")
			return nil
		}

		slug := arg
		if slug == "" {
			slug = params["slug"]
		}
		return a.RenderComponent(ctx, component.Bind(name, build(a.deps)), slug)
	}
}

// rememberPath records the last visited path for back links. Blog posts
// are skipped so their back link leads to where the reader came from.
func (a *App) rememberPath(path string) {
	if strings.HasPrefix(path, "/blog/") {
		return
	}
	a.doc.SessionStorage().Set(router.LastPathKey, path)
}

func homeFactory(d component.Deps) component.Renderer   { return component.NewHome(d) }
func loginFactory(d component.Deps) component.Renderer  { return component.NewLogin(d) }
func blogFactory(d component.Deps) component.Renderer   { return component.NewBlogIndex(d) }
func postFactory(d component.Deps) component.Renderer   { return component.NewBlogPost(d) }
func pageFactory(d component.Deps) component.Renderer   { return component.NewPage(d) }
func manageFactory(d component.Deps) component.Renderer { return component.NewManagePages(d) }
func editorFactory(d component.Deps) component.Renderer { return component.NewEditor(d) }
func notFoundFactory(component.Deps) component.Renderer { return component.NewNotFound() }
