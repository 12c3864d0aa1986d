package router

import "errors"

// ErrNoHandler is reported when a path matches nothing and no not-found
// handler is set.
var ErrNoHandler = errors.New("router: no handler for path")
