package headless

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/neuralwired/dom"
)

// DefaultShell is the body the document starts with.
const DefaultShell = `<div id="header-container"></div>` +
	`<main id="content-container" class="container"></main>` +
	`<div id="footer-container"></div>`

// Command is a recorded rich-text command.
type Command struct {
	Name   string
	Value  string
	Target string
}

// PromptFunc answers Prompt calls.
type PromptFunc func(message, defaultValue string) (string, bool)

// Option configures a Document.
type Option func(*Document)

// WithShell replaces the initial body markup.
func WithShell(markup string) Option {
	return func(d *Document) { d.shell = markup }
}

// WithURL sets the initial location.
func WithURL(u string) Option {
	return func(d *Document) { d.history = []string{u} }
}

// WithPrompt sets the function answering Prompt.
func WithPrompt(fn PromptFunc) Option {
	return func(d *Document) { d.prompt = fn }
}

// Document is an in-memory dom.Document.
type Document struct {
	mu sync.Mutex

	shell string
	doc   *html.Node
	root  *html.Node
	body  *html.Node

	listeners    map[*html.Node]map[string][]dom.Listener
	docListeners map[string][]dom.Listener
	focused      *html.Node

	history  []string
	index    int
	popstate []func()
	scrollX  int
	scrollY  int

	local   *Storage
	session *Storage

	prompt   PromptFunc
	files    []*dom.File
	commands []Command

	uncaught []func(error)
}

var _ dom.Document = (*Document)(nil)

// New creates a document at "/" with the default shell.
func New(opts ...Option) *Document {
	d := &Document{
		shell:        DefaultShell,
		listeners:    make(map[*html.Node]map[string][]dom.Listener),
		docListeners: make(map[string][]dom.Listener),
		history:      []string{"/"},
		local:        NewStorage(),
		session:      NewStorage(),
	}
	for _, opt := range opts {
		opt(d)
	}

	doc, err := html.Parse(strings.NewReader("<!DOCTYPE html><html><head></head><body>" + d.shell + "</body></html>"))
	if err != nil {
		// html.Parse only fails on reader errors.
		panic(fmt.Sprintf("headless: parse shell: %v", err))
	}
	d.doc = doc
	d.root = findAtom(doc, atom.Html)
	d.body = findAtom(doc, atom.Body)
	return d
}

func findAtom(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findAtom(c, a); found != nil {
			return found
		}
	}
	return nil
}

func (d *Document) wrap(n *html.Node) dom.Element {
	if n == nil {
		return nil
	}
	return &element{doc: d, n: n}
}

// ElementByID returns the attached element with the id, or nil.
func (d *Document) ElementByID(id string) dom.Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrap(d.byID(d.root, id))
}

func (d *Document) byID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := d.byID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// QuerySelectorAll returns attached elements matching selector. Invalid
// selectors match nothing.
func (d *Document) QuerySelectorAll(selector string) []dom.Element {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	nodes := sel.MatchAll(d.root)
	out := make([]dom.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n))
	}
	return out
}

// Query returns the first element matching selector, or nil.
func (d *Document) Query(selector string) dom.Element {
	all := d.QuerySelectorAll(selector)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// AppendToBody parses markup and appends it to the body.
func (d *Document) AppendToBody(markup string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	nodes, err := html.ParseFragment(strings.NewReader(markup), d.body)
	if err != nil {
		return fmt.Errorf("headless: parse markup: %w", err)
	}
	for _, n := range nodes {
		d.body.AppendChild(n)
	}
	return nil
}

// Root returns the <html> element.
func (d *Document) Root() dom.Element {
	return d.wrap(d.root)
}

// AddEventListener registers fn for events of typ reaching the document.
func (d *Document) AddEventListener(typ string, fn dom.Listener) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.docListeners[typ] = append(d.docListeners[typ], fn)
	d.mu.Unlock()
}

// Path returns the path of the current history entry.
func (d *Document) Path() string {
	d.mu.Lock()
	current := d.history[d.index]
	d.mu.Unlock()

	u, err := url.Parse(current)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}

// PushState drops forward entries and appends u.
func (d *Document) PushState(u string) {
	d.mu.Lock()
	d.history = append(d.history[:d.index+1], u)
	d.index = len(d.history) - 1
	d.mu.Unlock()
}

// OnPopState registers fn to run on Back.
func (d *Document) OnPopState(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.popstate = append(d.popstate, fn)
	d.mu.Unlock()
}

// ScrollTo records the position; see Scroll.
func (d *Document) ScrollTo(x, y int) {
	d.mu.Lock()
	d.scrollX, d.scrollY = x, y
	d.mu.Unlock()
}

// LocalStorage returns the in-memory local storage.
func (d *Document) LocalStorage() dom.Storage { return d.local }

// SessionStorage returns the in-memory session storage.
func (d *Document) SessionStorage() dom.Storage { return d.session }

// Prompt answers with the configured PromptFunc, or cancels when none is set.
func (d *Document) Prompt(message, defaultValue string) (string, bool) {
	d.mu.Lock()
	fn := d.prompt
	d.mu.Unlock()
	if fn == nil {
		return "", false
	}
	return fn(message, defaultValue)
}

// PickFile returns the next queued file or dom.ErrNoFileSelected.
func (d *Document) PickFile(ctx context.Context, accept string) (*dom.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.files) == 0 {
		return nil, dom.ErrNoFileSelected
	}
	f := d.files[0]
	d.files = d.files[1:]
	return f, nil
}

// ExecCommand records the command against the focused element.
func (d *Document) ExecCommand(command, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	target := ""
	if d.focused != nil {
		target = attr(d.focused, "id")
	}
	d.commands = append(d.commands, Command{Name: command, Value: value, Target: target})
}

// InsertAtCursor appends markup to target; the headless caret is always at the end.
func (d *Document) InsertAtCursor(target dom.Element, markup string) {
	el, ok := target.(*element)
	if !ok || el == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	nodes, err := html.ParseFragment(strings.NewReader(markup), el.n)
	if err != nil {
		return
	}
	for _, n := range nodes {
		el.n.AppendChild(n)
	}
}

// OnUncaughtError registers fn for listener panics and ReportError.
func (d *Document) OnUncaughtError(fn func(error)) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.uncaught = append(d.uncaught, fn)
	d.mu.Unlock()
}

// ReportError delivers err to the uncaught-error hooks.
func (d *Document) ReportError(err error) {
	d.mu.Lock()
	hooks := slices.Clone(d.uncaught)
	d.mu.Unlock()
	for _, h := range hooks {
		h(err)
	}
}

// Driver methods.

// Region returns the inner HTML of the element with id, or "" when absent.
func (d *Document) Region(id string) string {
	el := d.ElementByID(id)
	if el == nil {
		return ""
	}
	return el.InnerHTML()
}

// HTML renders the whole document.
func (d *Document) HTML() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf bytes.Buffer
	_ = html.Render(&buf, d.doc)
	return buf.String()
}

// History returns a copy of the history stack.
func (d *Document) History() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.history[:d.index+1]...)
}

// Scroll returns the last scroll position.
func (d *Document) Scroll() (x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollX, d.scrollY
}

// Commands returns the recorded rich-text commands.
func (d *Document) Commands() []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Command(nil), d.commands...)
}

// QueueFile makes f the answer to the next PickFile call.
func (d *Document) QueueFile(f *dom.File) {
	d.mu.Lock()
	d.files = append(d.files, f)
	d.mu.Unlock()
}

// SetPrompt replaces the prompt answer function.
func (d *Document) SetPrompt(fn PromptFunc) {
	d.mu.Lock()
	d.prompt = fn
	d.mu.Unlock()
}

// Back moves one entry back in history and fires popstate.
func (d *Document) Back() bool {
	d.mu.Lock()
	if d.index == 0 {
		d.mu.Unlock()
		return false
	}
	d.index--
	hooks := append([]func(){}, d.popstate...)
	d.mu.Unlock()

	for _, h := range hooks {
		d.safely(h)
	}
	return true
}

// Click dispatches a click on el and runs the default action unless a
// listener prevented it: checkboxes toggle (and fire change), submit buttons
// submit their form. It reports whether the default action ran.
func (d *Document) Click(el dom.Element) bool {
	e, ok := el.(*element)
	if !ok || e == nil {
		return false
	}

	checkbox := e.TagName() == "input" && strings.EqualFold(e.attr("type"), "checkbox")
	if checkbox {
		e.SetChecked(!e.Checked())
	}

	ev := dom.NewEvent(dom.EventClick, el)
	d.dispatch(e.n, ev)
	if ev.DefaultPrevented() {
		if checkbox {
			e.SetChecked(!e.Checked())
		}
		return false
	}

	if checkbox {
		d.Change(el)
	}
	if e.isSubmitter() {
		if form := el.Closest("form"); form != nil {
			d.Submit(form)
		}
	}
	return true
}

// Submit dispatches a submit event on form.
func (d *Document) Submit(form dom.Element) bool {
	e, ok := form.(*element)
	if !ok || e == nil {
		return false
	}
	ev := dom.NewEvent(dom.EventSubmit, form)
	d.dispatch(e.n, ev)
	return !ev.DefaultPrevented()
}

// Change dispatches a change event on el.
func (d *Document) Change(el dom.Element) {
	e, ok := el.(*element)
	if !ok || e == nil {
		return
	}
	d.dispatch(e.n, dom.NewEvent(dom.EventChange, el))
}

// Fill sets the value of an input, textarea or select, or the inner HTML of
// a contenteditable element.
func (d *Document) Fill(el dom.Element, value string) {
	if v, ok := el.Attr("contenteditable"); ok && v != "false" {
		el.SetInnerHTML(value)
		return
	}
	el.SetValue(value)
}

// KeyDown dispatches a keydown event at the focused element or the body.
func (d *Document) KeyDown(key string) {
	d.mu.Lock()
	target := d.focused
	if target == nil {
		target = d.body
	}
	d.mu.Unlock()

	ev := dom.NewEvent(dom.EventKeyDown, d.wrap(target))
	ev.Key = key
	d.dispatch(target, ev)
}

func (d *Document) dispatch(target *html.Node, ev *dom.Event) {
	d.mu.Lock()
	var chain []dom.Listener
	for n := target; n != nil; n = n.Parent {
		chain = append(chain, d.listeners[n][ev.Type]...)
	}
	chain = append(chain, d.docListeners[ev.Type]...)
	d.mu.Unlock()

	for _, fn := range chain {
		d.safely(func() { fn(ev) })
	}
}

func (d *Document) safely(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			d.ReportError(fmt.Errorf("uncaught: %w", err))
		}
	}()
	fn()
}

// forget drops listeners of n and its descendants. Caller holds d.mu.
func (d *Document) forget(n *html.Node) {
	delete(d.listeners, n)
	if d.focused == n {
		d.focused = nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}
