// Package router maps client-side paths to handlers.
//
// Routes are tried in registration order and the first match wins. A route
// is either an exact path or an anchored regular expression whose named
// groups become Params:
//
//	r := router.New(doc)
//	r.AddRoute(router.Exact("/blog"), blogIndex)
//	r.AddRoute(router.Pattern(`/blog/(?<slug>[a-zA-Z0-9-]+)`), blogPost)
//	r.SetNotFound(notFound)
//	r.Init()
//	r.HandleRouteChange()
//
// Each dispatch runs with its own context. Starting a new dispatch cancels
// the previous one, so handlers should pass the context to every blocking
// call and stop mounting once it is done.
package router
