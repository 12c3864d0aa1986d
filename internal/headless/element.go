package headless

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/neuralwired/dom"
)

type element struct {
	doc *Document
	n   *html.Node
}

var _ dom.Element = (*element)(nil)

func attr(n *html.Node, name string) string {
	v, _ := lookupAttr(n, name)
	return v
}

func lookupAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func textOf(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textOf(c, b)
	}
}

func (e *element) attr(name string) string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return attr(e.n, name)
}

func (e *element) ID() string {
	return e.attr("id")
}

func (e *element) TagName() string {
	return e.n.Data
}

func (e *element) Attr(name string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return lookupAttr(e.n, name)
}

func (e *element) SetAttr(name, value string) {
	e.doc.mu.Lock()
	setAttr(e.n, name, value)
	e.doc.mu.Unlock()
}

func (e *element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.attr("class")) {
		if c == name {
			return true
		}
	}
	return false
}

func (e *element) SetClassName(className string) {
	e.SetAttr("class", className)
}

func (e *element) InnerHTML() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	var buf bytes.Buffer
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func (e *element) SetInnerHTML(markup string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	nodes, err := html.ParseFragment(strings.NewReader(markup), e.n)
	if err != nil {
		return
	}
	e.clear()
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
}

// clear removes all children. Caller holds the document lock.
func (e *element) clear() {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.doc.forget(c)
		e.n.RemoveChild(c)
		c = next
	}
}

func (e *element) TextContent() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var b strings.Builder
	textOf(e.n, &b)
	return b.String()
}

func (e *element) SetTextContent(text string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.clear()
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func (e *element) Value() string {
	switch e.n.DataAtom {
	case atom.Textarea:
		return e.TextContent()
	case atom.Select:
		e.doc.mu.Lock()
		defer e.doc.mu.Unlock()
		return selectValue(e.n)
	default:
		return e.attr("value")
	}
}

func selectValue(sel *html.Node) string {
	var first, chosen *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Option {
			if first == nil {
				first = n
			}
			if _, ok := lookupAttr(n, "selected"); ok && chosen == nil {
				chosen = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(sel)
	if chosen == nil {
		chosen = first
	}
	if chosen == nil {
		return ""
	}
	if v, ok := lookupAttr(chosen, "value"); ok {
		return v
	}
	var b strings.Builder
	textOf(chosen, &b)
	return strings.TrimSpace(b.String())
}

func (e *element) SetValue(value string) {
	switch e.n.DataAtom {
	case atom.Textarea:
		e.SetTextContent(value)
	case atom.Select:
		e.doc.mu.Lock()
		defer e.doc.mu.Unlock()
		var walk func(n *html.Node)
		walk = func(n *html.Node) {
			if n.Type == html.ElementNode && n.DataAtom == atom.Option {
				if attr(n, "value") == value {
					setAttr(n, "selected", "")
				} else {
					removeAttr(n, "selected")
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(e.n)
	default:
		e.SetAttr("value", value)
	}
}

func (e *element) Checked() bool {
	_, ok := e.Attr("checked")
	return ok
}

func (e *element) SetChecked(checked bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if checked {
		setAttr(e.n, "checked", "")
	} else {
		removeAttr(e.n, "checked")
	}
}

// Visible is false when the element or an ancestor has display:none.
func (e *element) Visible() bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for n := e.n; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && displayNone(attr(n, "style")) {
			return false
		}
	}
	return true
}

func (e *element) SetDisplay(display string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setAttr(e.n, "style", withDisplay(attr(e.n, "style"), display))
}

func (e *element) Closest(selector string) dom.Element {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for n := e.n; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && sel.Match(n) {
			return e.doc.wrap(n)
		}
	}
	return nil
}

func (e *element) Contains(other dom.Element) bool {
	o, ok := other.(*element)
	if !ok || o == nil {
		return false
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for n := o.n; n != nil; n = n.Parent {
		if n == e.n {
			return true
		}
	}
	return false
}

func (e *element) Focus() {
	e.doc.mu.Lock()
	e.doc.focused = e.n
	e.doc.mu.Unlock()
}

func (e *element) Remove() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if e.n.Parent == nil {
		return
	}
	e.doc.forget(e.n)
	e.n.Parent.RemoveChild(e.n)
}

func (e *element) ReplaceWith(markup string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	parent := e.n.Parent
	if parent == nil {
		return
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return
	}
	for _, n := range nodes {
		parent.InsertBefore(n, e.n)
	}
	e.doc.forget(e.n)
	parent.RemoveChild(e.n)
}

func (e *element) AddEventListener(typ string, fn dom.Listener) {
	if fn == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	byType := e.doc.listeners[e.n]
	if byType == nil {
		byType = make(map[string][]dom.Listener)
		e.doc.listeners[e.n] = byType
	}
	byType[typ] = append(byType[typ], fn)
}

// isSubmitter reports whether a click on e submits its form.
func (e *element) isSubmitter() bool {
	switch e.n.DataAtom {
	case atom.Button:
		t := strings.ToLower(e.attr("type"))
		return t == "" || t == "submit"
	case atom.Input:
		return strings.EqualFold(e.attr("type"), "submit")
	}
	return false
}
