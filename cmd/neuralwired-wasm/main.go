//go:build js && wasm

// Command neuralwired-wasm runs the client in the browser. Configuration
// comes from environment defaults baked in at build time; the backend is the
// page origin unless NW_API_URL is set.
package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/app"
	"github.com/dmitrymomot/neuralwired/browser"
	"github.com/dmitrymomot/neuralwired/pkg/config"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
	"github.com/dmitrymomot/neuralwired/router"
)

func main() {
	cfg, err := config.Parse[app.Config]()
	log := logger.New(
		logger.WithFormat(logger.FormatText),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithOutput(os.Stdout),
	)
	if err != nil {
		log.Warn("config defaults used", logger.Error(err))
	}

	doc := browser.New()
	if cfg.APIURL == "" {
		cfg.APIURL = doc.Origin()
	}
	client := api.New(cfg.APIURL,
		api.WithHTTPClient(browser.HTTPClient()),
		api.WithLogger(log),
		api.WithTimeout(cfg.RequestTimeout),
	)

	a := app.New(doc, cfg,
		app.WithLogger(log),
		app.WithClient(client),
		app.WithRouterOptions(router.WithAsyncEvents()),
	)
	if err := a.Init(context.Background()); err != nil {
		log.Error("application failed to start", logger.Error(err))
	}

	select {}
}
