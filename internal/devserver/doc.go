// Package devserver serves the client application during development: the
// HTML shell for every page path, static assets, and a reverse proxy that
// forwards /api/* to the blog backend so the session cookie stays
// same-origin.
package devserver
