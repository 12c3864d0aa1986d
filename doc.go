// Package neuralwired is a client runtime for a personal blog and CMS.
//
// The application is written once against the dom package and runs on two
// hosts: the browser (package browser, built for GOOS=js GOARCH=wasm) and an
// in-memory document (internal/headless) used by tests and the CLI.
//
// # Layout
//
//   - api: HTTP client for the blog backend with auth change notifications
//   - router: path matching and history-driven dispatch
//   - component: page components rendered with templ
//   - notify: flash messages and the confirm dialog
//   - errhandler: error classification and user-facing messages
//   - app: wiring, lifecycle and route table
//   - pkg/*: small reusable packages (logger, config, broadcast, ...)
//
// # Commands
//
// cmd/neuralwired is the CLI: serve runs the development server that proxies
// the backend and serves the shell, browse renders pages headlessly (and
// replays YAML scenarios), import publishes Markdown files.
// cmd/neuralwired-wasm is the browser entrypoint.
package neuralwired
