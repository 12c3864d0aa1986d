package logger

import (
	"context"
	"log/slog"
)

type routeKey struct{}

// WithRoute stores the path being dispatched so records logged with ctx carry it.
func WithRoute(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, routeKey{}, path)
}

// RouteFromContext returns the path stored by WithRoute.
func RouteFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	path, ok := ctx.Value(routeKey{}).(string)
	return path, ok
}

// routeHandler decorates a slog.Handler with the dispatch path from context.
type routeHandler struct {
	next slog.Handler
}

func (h *routeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *routeHandler) Handle(ctx context.Context, rec slog.Record) error {
	if path, ok := RouteFromContext(ctx); ok {
		rec.AddAttrs(Route(path))
	}
	return h.next.Handle(ctx, rec)
}

func (h *routeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &routeHandler{next: h.next.WithAttrs(attrs)}
}

func (h *routeHandler) WithGroup(name string) slog.Handler {
	return &routeHandler{next: h.next.WithGroup(name)}
}
