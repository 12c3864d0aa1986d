// Package headless implements dom.Document in memory.
//
// Markup is parsed with golang.org/x/net/html and selectors are resolved with
// cascadia, so components see the same tree a browser would build from their
// output. Events bubble from target to document, listener panics are
// recovered and reported to the uncaught-error hooks, and history is a plain
// stack of URLs.
//
// Beyond dom.Document the type offers driver methods for tests and the CLI:
// Click, Submit, Change, KeyDown, Fill, Back, QueueFile, Region.
//
// Listeners run synchronously on the goroutine that dispatched the event.
// The document is safe for use from other goroutines (flash timers).
package headless
