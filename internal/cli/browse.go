package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/app"
	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/internal/headless"
	"github.com/dmitrymomot/neuralwired/internal/scenario"
	"github.com/dmitrymomot/neuralwired/notify"
	"github.com/dmitrymomot/neuralwired/pkg/sanitizer"
)

type browseFlags struct {
	script   string
	raw      bool
	username string
	password string
}

func newBrowseCommand(e *env) *cobra.Command {
	var flags browseFlags
	cmd := &cobra.Command{
		Use:   "browse [path...]",
		Short: "Open the application headlessly and print what each path shows",
		Long: `browse boots the client on an in-memory document against the backend,
navigates to every given path and prints the content region. With --script
it runs a YAML scenario instead and reports each step.`,
		RunE: func(cmd *cobra.Command, paths []string) error {
			return runBrowse(cmd.Context(), e, flags, paths)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.script, "script", "", "YAML scenario to run")
	f.BoolVar(&flags.raw, "html", false, "print markup instead of text")
	f.StringVar(&flags.username, "username", "", "log in before browsing")
	f.StringVar(&flags.password, "password", "", "password for --username")
	return cmd
}

func runBrowse(ctx context.Context, e *env, flags browseFlags, paths []string) error {
	var sc scenario.Scenario
	if flags.script != "" {
		f, err := os.Open(flags.script)
		if err != nil {
			return err
		}
		sc, err = scenario.Parse(f)
		_ = f.Close()
		if err != nil {
			return err
		}
	}

	client := api.New(e.cfg.APIURL, api.WithLogger(e.log), api.WithTimeout(e.cfg.RequestTimeout))
	if flags.username != "" {
		if _, err := client.Login(ctx, flags.username, flags.password); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}

	first := "/"
	if len(paths) > 0 {
		first, paths = paths[0], paths[1:]
	}
	doc := headless.New(headless.WithURL(first))
	a := app.New(doc, e.cfg,
		app.WithLogger(e.log),
		app.WithClient(client),
		app.WithFlashOptions(notify.WithObserver(func(msg string, typ notify.Type) {
			fmt.Fprintln(e.out, flashLine(msg, typ))
		})),
	)
	if err := a.Init(ctx); err != nil {
		return err
	}

	if flags.script == "" {
		printRegion(e.out, doc, flags.raw)
		for _, p := range paths {
			a.Router().Navigate(p)
			printRegion(e.out, doc, flags.raw)
		}
		return nil
	}

	if sc.Name != "" {
		fmt.Fprintln(e.out, pathStyle.Render(sc.Name))
	}
	runner := scenario.NewRunner(doc, a.Router(), func(i int, s scenario.Step, err error) {
		mark := okStyle.Render("ok")
		if err != nil {
			mark = failStyle.Render("FAIL")
		}
		fmt.Fprintf(e.out, "%s %2d %s %s\n", mark, i+1, titleCase.String(string(s.Kind())), mutedStyle.Render(s.Describe()))
		if err != nil {
			fmt.Fprintln(e.out, "   "+failStyle.Render(err.Error()))
		}
	})
	return runner.Run(ctx, sc)
}

func printRegion(w io.Writer, doc *headless.Document, raw bool) {
	fmt.Fprintln(w, pathStyle.Render(doc.Path()))
	markup := doc.Region(dom.RegionContent)
	if raw {
		fmt.Fprintln(w, markup)
		return
	}
	fmt.Fprintln(w, strings.TrimSpace(sanitizer.NormalizeWhitespace(sanitizer.PlainText(markup))))
}
