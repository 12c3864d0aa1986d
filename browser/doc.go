//go:build js && wasm

// Package browser binds dom.Document to the page through syscall/js.
//
// JavaScript event callbacks must return without blocking, while the
// application's listeners make API calls. Element listeners therefore run on
// their own goroutine; preventDefault is decided before the callback returns
// (always for submit, for clicks on anchors). Document-level listeners run
// inline and must not block, which is why the router is created with
// router.WithAsyncEvents on this host.
//
//	doc := browser.New()
//	a := app.New(doc, cfg, app.WithRouterOptions(router.WithAsyncEvents()))
package browser
