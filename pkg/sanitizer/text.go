package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultExcerptLength is the excerpt limit used by listings, in characters.
const DefaultExcerptLength = 150

// PlainText returns the text content of an HTML fragment.
func PlainText(fragment string) string {
	if fragment == "" {
		return ""
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return fragment
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return b.String()
}

// Excerpt returns at most max characters of the fragment's plain text. Longer
// text is cut at the last space inside the limit (or at the limit when there
// is none) and gets "..." appended.
func Excerpt(fragment string, max int) string {
	if max <= 0 {
		max = DefaultExcerptLength
	}
	text := []rune(PlainText(fragment))
	if len(text) <= max {
		return string(text)
	}

	head := text[:max]
	cut := max
	for i := len(head) - 1; i > 0; i-- {
		if head[i] == ' ' {
			cut = i
			break
		}
	}
	return string(text[:cut]) + "..."
}

// NormalizeWhitespace collapses runs of whitespace into single spaces and trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// IsBlankMarkup reports whether markup has no visible text and no images.
func IsBlankMarkup(fragment string) bool {
	if strings.TrimSpace(fragment) == "" {
		return true
	}
	if strings.Contains(strings.ToLower(fragment), "<img") {
		return false
	}
	return strings.TrimSpace(PlainText(fragment)) == ""
}
