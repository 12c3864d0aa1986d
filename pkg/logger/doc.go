// Package logger builds the *slog.Logger shared by every neuralwired package.
//
// New applies functional options (format, level, output, environment preset,
// static attributes) and wraps the chosen slog handler with a decorator that
// copies dispatch-scoped values from context.Context into each record. The
// router stores the path it is dispatching with WithRoute, so anything logged
// with the dispatch context carries a "route" attribute.
//
// Attribute helpers (Component, Route, Slug, Endpoint, Error, ...) keep key
// names consistent across the codebase:
//
//	log := logger.New(logger.WithEnvironment("development", "neuralwired"))
//	log.InfoContext(ctx, "component rendered",
//	    logger.Component("editor"),
//	    logger.Slug(slug),
//	)
//
// Discard returns a logger that drops everything; packages use it when no
// logger option is supplied.
package logger
