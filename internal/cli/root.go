package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/neuralwired/app"
	"github.com/dmitrymomot/neuralwired/pkg/config"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// env carries what every subcommand needs once flags are parsed.
type env struct {
	cfg app.Config
	log *slog.Logger
	out io.Writer
}

type rootFlags struct {
	envFiles []string
	apiURL   string
	logLevel string
}

// NewRootCommand builds the command tree. Output goes to out and logs to
// errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	var (
		flags rootFlags
		e     = &env{out: out}
	)

	root := &cobra.Command{
		Use:           "neuralwired",
		Short:         "Client runtime and tools for the blog",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `neuralwired hosts the blog client: it serves the application shell with an
API proxy for development, browses the site headlessly against a running
backend, and imports Markdown files as pages or posts.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load[app.Config](flags.envFiles...)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if flags.apiURL != "" {
				cfg.APIURL = flags.apiURL
			}
			if cfg.APIURL == "" {
				cfg.APIURL = app.DefaultAPIURL
			}
			if flags.logLevel != "" {
				cfg.LogLevel = flags.logLevel
			}
			e.cfg = cfg
			e.log = logger.New(
				logger.WithEnvironment(cfg.Env, "neuralwired"),
				logger.WithLevelName(cfg.LogLevel),
				logger.WithOutput(errOut),
			)
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringSliceVar(&flags.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	pf.StringVar(&flags.apiURL, "api-url", "", "backend origin (overrides NW_API_URL)")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (overrides NW_LOG_LEVEL)")

	root.AddCommand(
		newServeCommand(e),
		newBrowseCommand(e),
		newImportCommand(e),
	)
	return root
}
