package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/pkg/sanitizer"
	"github.com/dmitrymomot/neuralwired/pkg/slug"
)

// ErrEmptyDocument is returned for files without body content.
var ErrEmptyDocument = errors.New("markdown: document has no content")

// Meta is the front matter block.
type Meta struct {
	Title    string `yaml:"title" toml:"title" json:"title"`
	Slug     string `yaml:"slug" toml:"slug" json:"slug"`
	IsBlog   bool   `yaml:"is_blog" toml:"is_blog" json:"is_blog"`
	Featured bool   `yaml:"featured" toml:"featured" json:"featured"`
	Excerpt  string `yaml:"excerpt" toml:"excerpt" json:"excerpt"`
}

// Converter renders Markdown to the HTML stored by the backend.
type Converter struct {
	md goldmark.Markdown
}

// New returns a converter with GitHub flavoured Markdown enabled.
func New() *Converter {
	return &Converter{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)}
}

// HTML renders src.
func (c *Converter) HTML(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// PageOption overrides front matter values.
type PageOption func(*Meta)

// AsBlog imports the file as a blog post.
func AsBlog() PageOption {
	return func(m *Meta) { m.IsBlog = true }
}

// AsFeatured marks the file as featured. It has no effect on plain pages.
func AsFeatured() PageOption {
	return func(m *Meta) { m.Featured = true }
}

// Page parses a file and returns the page it describes. name is the file
// name and only used for the fallback title. Options apply after the front
// matter is read.
func (c *Converter) Page(name string, src []byte, opts ...PageOption) (api.PageInput, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return api.PageInput{}, fmt.Errorf("markdown: front matter: %w", err)
	}
	for _, opt := range opts {
		opt(&meta)
	}
	if strings.TrimSpace(string(body)) == "" {
		return api.PageInput{}, ErrEmptyDocument
	}

	content, err := c.HTML(body)
	if err != nil {
		return api.PageInput{}, err
	}

	in := api.PageInput{
		Title:   strings.TrimSpace(meta.Title),
		Slug:    slug.Make(meta.Slug, slug.KeepCase()),
		Content: content,
		IsBlog:  meta.IsBlog,
	}
	if in.Title == "" {
		in.Title = TitleFromName(name)
	}
	if meta.IsBlog {
		in.Featured = meta.Featured
		if excerpt := strings.TrimSpace(meta.Excerpt); excerpt != "" {
			html, err := c.HTML([]byte(excerpt))
			if err != nil {
				return api.PageInput{}, err
			}
			if !sanitizer.IsBlankMarkup(html) {
				in.Excerpt = html
			}
		}
	}
	return in, nil
}

// TitleFromName turns "my-first_post.md" into "My First Post".
func TitleFromName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(strings.Join(strings.Fields(base), " "))
}
