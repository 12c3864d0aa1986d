package devserver

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/neuralwired/dom"
)

// ShellOptions controls the page the server returns for application paths.
type ShellOptions struct {
	Title string
	// Scripts are loaded at the end of the body in order.
	Scripts []string
	// Styles are linked from the head.
	Styles []string
}

// Shell renders the HTML page hosting the application: the three region
// containers plus the configured assets.
func Shell(opts ShellOptions) templ.Component {
	title := opts.Title
	if title == "" {
		title = "Blog"
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		esc := templ.EscapeString[string]
		s := `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + esc(title) + `</title>`
		for _, href := range opts.Styles {
			s += `<link rel="stylesheet" href="` + esc(href) + `">`
		}
		s += `</head><body>` +
			`<div id="` + dom.RegionHeader + `"></div>` +
			`<main id="` + dom.RegionContent + `" class="container"></main>` +
			`<div id="` + dom.RegionFooter + `"></div>`
		for _, src := range opts.Scripts {
			s += `<script src="` + esc(src) + `"></script>`
		}
		s += `</body></html>`
		_, err := io.WriteString(w, s)
		return err
	})
}
