package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/internal/markdown"
	"github.com/dmitrymomot/neuralwired/pkg/config"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// credentials for commands that change content.
type credentials struct {
	Username string `env:"NW_USERNAME"`
	Password string `env:"NW_PASSWORD"`
}

type importFlags struct {
	username string
	password string
	blog     bool
	featured bool
	dryRun   bool
}

func newImportCommand(e *env) *cobra.Command {
	var flags importFlags
	cmd := &cobra.Command{
		Use:   "import <file.md>...",
		Short: "Create pages or blog posts from Markdown files",
		Long: `import renders each Markdown file to HTML and creates a page through the
API. Front matter may set title, slug, is_blog, featured and excerpt; the
flags force blog/featured for every file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, files []string) error {
			ctx := cmd.Context()
			conv := markdown.New()
			var opts []markdown.PageOption
			if flags.blog {
				opts = append(opts, markdown.AsBlog())
			}
			if flags.featured {
				opts = append(opts, markdown.AsFeatured())
			}

			inputs := make([]api.PageInput, 0, len(files))
			for _, name := range files {
				src, err := os.ReadFile(name)
				if err != nil {
					return err
				}
				in, err := conv.Page(filepath.Base(name), src, opts...)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				inputs = append(inputs, in)
			}

			if flags.dryRun {
				for _, in := range inputs {
					cmd.Printf("%s %s\n%s\n", pathStyle.Render(in.Title), mutedStyle.Render(kindOf(in)), in.Content)
				}
				return nil
			}

			creds, err := config.Load[credentials]()
			if err != nil {
				return err
			}
			if flags.username != "" {
				creds.Username = flags.username
			}
			if flags.password != "" {
				creds.Password = flags.password
			}
			if creds.Username == "" {
				return fmt.Errorf("import: --username or NW_USERNAME is required")
			}

			client := api.New(e.cfg.APIURL, api.WithLogger(e.log), api.WithTimeout(e.cfg.RequestTimeout))
			if _, err := client.Login(ctx, creds.Username, creds.Password); err != nil {
				return fmt.Errorf("login: %w", err)
			}
			defer func() {
				if _, err := client.Logout(ctx); err != nil {
					e.log.WarnContext(ctx, "logout failed", logger.Error(err))
				}
			}()

			for i, in := range inputs {
				res, err := client.CreatePage(ctx, in)
				if err != nil {
					cmd.Println(failStyle.Render("FAIL"), files[i], err)
					return fmt.Errorf("%s: %w", files[i], err)
				}
				cmd.Println(okStyle.Render("ok"), files[i], "->", linkFor(in, res.Slug))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.username, "username", "", "backend user (default NW_USERNAME)")
	f.StringVar(&flags.password, "password", "", "backend password (default NW_PASSWORD)")
	f.BoolVar(&flags.blog, "blog", false, "import as blog posts")
	f.BoolVar(&flags.featured, "featured", false, "mark imported posts as featured")
	f.BoolVar(&flags.dryRun, "dry-run", false, "print the rendered pages without creating them")
	return cmd
}

func kindOf(in api.PageInput) string {
	switch {
	case in.IsBlog && in.Featured:
		return "featured post"
	case in.IsBlog:
		return "post"
	}
	return "page"
}

func linkFor(in api.PageInput, slug string) string {
	if in.IsBlog {
		return "/blog/" + slug
	}
	return "/p/" + slug
}
