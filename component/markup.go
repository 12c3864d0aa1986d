package component

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/pkg/sanitizer"
)

// markup writes HTML, keeping the first write error.
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (m *markup) raw(parts ...string) {
	for _, p := range parts {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, p)
	}
}

func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

func (m *markup) child(c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(m.ctx, m.w)
}

// view adapts a markup writer to templ.
func view(fn func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{ctx: ctx, w: w}
		fn(m)
		return m.err
	})
}

var esc = templ.EscapeString[string]

// displayDate keeps the date part of a "YYYY-MM-DD hh:mm:ss" timestamp.
func displayDate(ts string) string {
	if i := strings.IndexByte(ts, ' '); i >= 0 {
		return ts[:i]
	}
	return ts
}

// excerptHTML is the stored excerpt, or an escaped plain-text summary of the
// content when none was written.
func excerptHTML(p api.Page) string {
	if !sanitizer.IsBlankMarkup(p.Excerpt) {
		return p.Excerpt
	}
	return esc(sanitizer.Excerpt(p.Content, sanitizer.DefaultExcerptLength))
}

func checked(on bool) string {
	if on {
		return " checked"
	}
	return ""
}

func hiddenUnless(show bool) string {
	if show {
		return ""
	}
	return ` style="display: none;"`
}
