package component

import (
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// Footer is the static page footer.
type Footer struct {
	year int
}

// NewFooter creates the footer for the current year.
func NewFooter() *Footer {
	return &Footer{year: time.Now().Year()}
}

// Render returns the footer.
func (f *Footer) Render() templ.Component {
	return view(func(m *markup) {
		m.raw(`<footer class="site-footer"><p>&copy; `, strconv.Itoa(f.year),
			` neuralwired &middot; <a href="/blog">Blog</a></p></footer>`)
	})
}
