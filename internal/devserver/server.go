package devserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// ErrInvalidBackend is returned for a backend URL without scheme or host.
var ErrInvalidBackend = errors.New("devserver: invalid backend url")

// Config describes what the server hosts.
type Config struct {
	// Backend is the origin /api/* is proxied to.
	Backend string
	// StaticDir is served under /static/. Empty disables it.
	StaticDir string
	// AllowedOrigins enables credentialed CORS for these origins.
	AllowedOrigins []string
	Shell          ShellOptions
}

// Option configures the handler.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// New builds the dev server handler.
func New(cfg Config, opts ...Option) (http.Handler, error) {
	o := options{log: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	backend, err := url.Parse(cfg.Backend)
	if err != nil || backend.Scheme == "" || backend.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBackend, cfg.Backend)
	}

	proxy := httputil.NewSingleHostReverseProxy(backend)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		o.log.ErrorContext(r.Context(), "backend unreachable", logger.Endpoint(r.URL.Path), logger.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"Backend unavailable"}`))
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(accessLog(o.log))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", api.RequestIDHeader},
			ExposedHeaders:   []string{api.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ALIVE"))
	})
	r.Handle("/api", proxy)
	r.Handle("/api/*", proxy)

	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
			fs := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
			r.Handle("/static/*", fs)
		} else {
			o.log.Warn("static dir not found", slog.String("dir", cfg.StaticDir))
		}
	}

	shell := Shell(cfg.Shell)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if strings.HasPrefix(req.URL.Path, "/static/") {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := shell.Render(req.Context(), w); err != nil {
			o.log.ErrorContext(req.Context(), "render shell", logger.Error(err))
		}
	})
	return r, nil
}
