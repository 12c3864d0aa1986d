package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Route records a client route path under "route".
func Route(path string) slog.Attr {
	return slog.String("route", path)
}

// Slug records a page slug under "slug".
func Slug(slug string) slog.Attr {
	return slog.String("slug", slug)
}

// Source records where a reported error came from under "source".
func Source(source string) slog.Attr {
	return slog.String("source", source)
}

// Endpoint records an API endpoint under "endpoint".
func Endpoint(endpoint string) slog.Attr {
	return slog.String("endpoint", endpoint)
}

// Method records an HTTP method under "method".
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Status records an HTTP status code under "status".
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Duration records an elapsed time under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Event records an event name under "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// State records a lifecycle state under "state".
func State(name string) slog.Attr {
	return slog.String("state", name)
}
