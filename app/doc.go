// Package app wires the router, the API client and the components into the
// running application.
//
//	cfg, err := config.Load[app.Config]()
//	a := app.New(doc, cfg, app.WithLogger(log))
//	if err := a.Init(ctx); err != nil {
//	    // the fatal page is already mounted
//	}
//
// Init checks the session, mounts the header and footer, registers the
// routes and dispatches the current path. A failed Init is terminal.
package app
