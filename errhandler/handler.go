package errhandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/neuralwired/pkg/broadcast"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// DefaultMessage is shown when an error carries no text of its own.
const DefaultMessage = "An unexpected error occurred. Please try again."

// Report is a handled error and the place it came from.
type Report struct {
	Err    error
	Source string
}

// Listener receives every handled error.
type Listener func(Report)

// statusCoder is implemented by errors that carry an HTTP status.
type statusCoder interface {
	StatusCode() int
}

// Handler fans reported errors out to listeners.
type Handler struct {
	log       *slog.Logger
	listeners broadcast.Registry[Report]
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for reported errors.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// New creates a handler without listeners.
func New(opts ...Option) *Handler {
	h := &Handler{log: logger.Discard()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddListener registers fn and returns a function that removes it.
func (h *Handler) AddListener(fn Listener) (remove func()) {
	if fn == nil {
		return func() {}
	}
	return h.listeners.Add(broadcast.Listener[Report](fn))
}

// Handle logs err, notifies every listener and returns the user-facing
// message. A nil error is ignored and yields an empty message.
func (h *Handler) Handle(err error, source string) string {
	if err == nil {
		return ""
	}

	h.log.Log(context.Background(), levelFor(err), "error reported", logger.Source(source), logger.Error(err))

	if lerr := h.listeners.Emit(Report{Err: err, Source: source}); lerr != nil {
		h.log.Error("error listener failed", logger.Source(source), logger.Error(lerr))
	}
	return FormatMessage(err)
}

// FormatMessage returns the text shown to the user for err.
func FormatMessage(err error) string {
	if err == nil {
		return DefaultMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultMessage
}

// IsAuthError reports whether err means the session is missing or expired:
// a 401 status or a message mentioning authentication.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if StatusCode(err) == http.StatusUnauthorized {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "authentication")
}

// StatusCode extracts the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

// levelFor logs client-side statuses as warnings and everything else as errors.
func levelFor(err error) slog.Level {
	if code := StatusCode(err); code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}
