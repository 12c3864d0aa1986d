package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/neuralwired/internal/devserver"
	"github.com/dmitrymomot/neuralwired/pkg/httpserver"
)

func newServeCommand(e *env) *cobra.Command {
	var (
		addr    string
		static  string
		title   string
		scripts []string
		styles  []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the application shell and proxy /api to the backend",
		Long: `serve answers every page path with the application shell, serves static
assets under /static/ and forwards /api/* to the backend so that the session
cookie stays on one origin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = e.cfg.ListenAddr
			}
			if static == "" {
				static = e.cfg.StaticDir
			}

			handler, err := devserver.New(devserver.Config{
				Backend:        e.cfg.APIURL,
				StaticDir:      static,
				AllowedOrigins: e.cfg.CORSOrigins,
				Shell: devserver.ShellOptions{
					Title:   title,
					Scripts: scripts,
					Styles:  styles,
				},
			}, devserver.WithLogger(e.log))
			if err != nil {
				return err
			}

			srv := httpserver.New(
				httpserver.WithAddr(addr),
				httpserver.WithLogger(e.log),
				httpserver.WithOnListen(func(bound string) {
					cmd.Printf("serving on http://%s (backend %s)\n", bound, e.cfg.APIURL)
				}),
			)
			return srv.Run(cmd.Context(), handler)
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", "", "listen address (default NW_LISTEN_ADDR)")
	f.StringVar(&static, "static", "", "static asset directory (default NW_STATIC_DIR)")
	f.StringVar(&title, "title", "Blog", "document title")
	f.StringSliceVar(&scripts, "script", []string{"/static/wasm_exec.js", "/static/app.js"}, "scripts loaded by the shell")
	f.StringSliceVar(&styles, "style", []string{"/static/style.css"}, "stylesheets linked by the shell")
	return cmd
}
