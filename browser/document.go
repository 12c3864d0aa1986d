//go:build js && wasm

package browser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"syscall/js"

	"github.com/dmitrymomot/neuralwired/dom"
)

// Document is the dom.Document of the running page.
type Document struct {
	win  js.Value
	doc  js.Value
	body js.Value

	local   *Storage
	session *Storage

	mu       sync.Mutex
	funcs    []binding
	uncaught []func(error)
}

// binding ties a callback to the element it was added to so it can be
// released once the element leaves the document.
type binding struct {
	target js.Value
	fn     js.Func
}

var _ dom.Document = (*Document)(nil)

// New binds the global window.
func New() *Document {
	win := js.Global()
	doc := win.Get("document")
	return &Document{
		win:     win,
		doc:     doc,
		body:    doc.Get("body"),
		local:   newStorage(win, "localStorage"),
		session: newStorage(win, "sessionStorage"),
	}
}

// Origin returns location.origin, e.g. "https://example.com".
func (d *Document) Origin() string {
	return d.win.Get("location").Get("origin").String()
}

// HTTPClient returns a client whose fetch calls send cookies cross-origin.
func HTTPClient() *http.Client {
	return &http.Client{Transport: fetchTransport{}}
}

type fetchTransport struct{}

// RoundTrip sends req through fetch with credentials included.
func (fetchTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("js.fetch:credentials", "include")
	req.Header.Set("js.fetch:mode", "cors")
	return http.DefaultTransport.RoundTrip(req)
}

func (d *Document) wrap(v js.Value) dom.Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &element{doc: d, v: v}
}

// ElementByID returns the element with id, or nil.
func (d *Document) ElementByID(id string) dom.Element {
	return d.wrap(d.doc.Call("getElementById", id))
}

// QuerySelectorAll returns matching elements. Invalid selectors match nothing.
func (d *Document) QuerySelectorAll(selector string) (out []dom.Element) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	list := d.doc.Call("querySelectorAll", selector)
	n := list.Get("length").Int()
	out = make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, d.wrap(list.Index(i)))
	}
	return out
}

// AppendToBody inserts markup at the end of the body.
func (d *Document) AppendToBody(markup string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("browser: append to body: %v", rec)
		}
	}()
	d.body.Call("insertAdjacentHTML", "beforeend", markup)
	return nil
}

// Root returns the <html> element.
func (d *Document) Root() dom.Element {
	return d.wrap(d.doc.Get("documentElement"))
}

// AddEventListener runs fn inline on every event of typ reaching the
// document. fn sees the prevented state left by element listeners.
func (d *Document) AddEventListener(typ string, fn dom.Listener) {
	if fn == nil {
		return
	}
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		native := args[0]
		ev := d.event(typ, native)
		if native.Get("defaultPrevented").Bool() {
			ev.PreventDefault()
		}
		d.safely(func() { fn(ev) })
		if ev.DefaultPrevented() {
			native.Call("preventDefault")
		}
		return nil
	})
	d.keep(d.doc, cb)
	d.doc.Call("addEventListener", typ, cb)
}

func (d *Document) event(typ string, native js.Value) *dom.Event {
	ev := dom.NewEvent(typ, d.wrap(native.Get("target")))
	if key := native.Get("key"); key.Type() == js.TypeString {
		ev.Key = key.String()
	}
	return ev
}

// listen attaches fn to target. It runs on a new goroutine; the native
// default is prevented up front for submits and anchor clicks.
func (d *Document) listen(target js.Value, typ string, fn dom.Listener) {
	anchor := target.Get("tagName").String() == "A"
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		native := args[0]
		if typ == dom.EventSubmit || (typ == dom.EventClick && anchor) {
			native.Call("preventDefault")
		}
		ev := d.event(typ, native)
		go d.safely(func() { fn(ev) })
		return nil
	})
	d.keep(target, cb)
	target.Call("addEventListener", typ, cb)
}

// keep records cb and releases callbacks of detached elements.
func (d *Document) keep(target js.Value, cb js.Func) {
	d.mu.Lock()
	defer d.mu.Unlock()
	live := d.funcs[:0]
	for _, b := range d.funcs {
		if b.target.Equal(d.doc) || b.target.Get("isConnected").Bool() {
			live = append(live, b)
			continue
		}
		b.fn.Release()
	}
	d.funcs = append(live, binding{target: target, fn: cb})
}

// Path returns location.pathname.
func (d *Document) Path() string {
	return d.win.Get("location").Get("pathname").String()
}

// PushState adds url to the session history without reloading.
func (d *Document) PushState(url string) {
	d.win.Get("history").Call("pushState", js.Null(), "", url)
}

// OnPopState registers fn for back/forward navigation.
func (d *Document) OnPopState(fn func()) {
	if fn == nil {
		return
	}
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		d.safely(fn)
		return nil
	})
	d.keep(d.doc, cb)
	d.win.Call("addEventListener", "popstate", cb)
}

// ScrollTo scrolls the window.
func (d *Document) ScrollTo(x, y int) {
	d.win.Call("scrollTo", x, y)
}

// LocalStorage returns window.localStorage.
func (d *Document) LocalStorage() dom.Storage { return d.local }

// SessionStorage returns window.sessionStorage.
func (d *Document) SessionStorage() dom.Storage { return d.session }

// Prompt shows window.prompt; ok is false when the user cancels.
func (d *Document) Prompt(message, defaultValue string) (string, bool) {
	v := d.win.Call("prompt", message, defaultValue)
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	return v.String(), true
}

// PickFile opens the file picker and reads the chosen file into memory.
func (d *Document) PickFile(ctx context.Context, accept string) (*dom.File, error) {
	input := d.doc.Call("createElement", "input")
	input.Set("type", "file")
	input.Set("accept", accept)

	picked := make(chan js.Value, 1)
	send := func(v js.Value) {
		select {
		case picked <- v:
		default:
		}
	}
	onChange := js.FuncOf(func(js.Value, []js.Value) any {
		send(input.Get("files").Index(0))
		return nil
	})
	onCancel := js.FuncOf(func(js.Value, []js.Value) any {
		send(js.Undefined())
		return nil
	})
	release := func() {
		onChange.Release()
		onCancel.Release()
	}
	input.Call("addEventListener", "change", onChange)
	input.Call("addEventListener", "cancel", onCancel)
	input.Call("click")

	var file js.Value
	select {
	case <-ctx.Done():
		// The picker may still answer; release once it does.
		go func() {
			<-picked
			release()
		}()
		return nil, ctx.Err()
	case file = <-picked:
		release()
	}
	if file.IsUndefined() || file.IsNull() {
		return nil, dom.ErrNoFileSelected
	}

	data, err := await(ctx, file.Call("arrayBuffer"))
	if err != nil {
		return nil, fmt.Errorf("browser: read %s: %w", file.Get("name").String(), err)
	}
	arr := js.Global().Get("Uint8Array").New(data)
	buf := make([]byte, arr.Get("length").Int())
	js.CopyBytesToGo(buf, arr)

	return &dom.File{
		Name:        file.Get("name").String(),
		ContentType: file.Get("type").String(),
		Body:        bytes.NewReader(buf),
	}, nil
}

// await blocks until promise settles or ctx is done.
func await(ctx context.Context, promise js.Value) (js.Value, error) {
	type result struct {
		v   js.Value
		err error
	}
	done := make(chan result, 1)
	onOK := js.FuncOf(func(_ js.Value, args []js.Value) any {
		done <- result{v: args[0]}
		return nil
	})
	onErr := js.FuncOf(func(_ js.Value, args []js.Value) any {
		done <- result{err: jsError(args[0])}
		return nil
	})
	release := func() {
		onOK.Release()
		onErr.Release()
	}
	promise.Call("then", onOK, onErr)

	select {
	case <-ctx.Done():
		go func() {
			<-done
			release()
		}()
		return js.Undefined(), ctx.Err()
	case r := <-done:
		release()
		return r.v, r.err
	}
}

// ExecCommand runs document.execCommand on the focused editable region.
func (d *Document) ExecCommand(command, value string) {
	d.doc.Call("execCommand", command, false, value)
}

// InsertAtCursor replaces the selection with markup when the caret is inside
// target and appends to target otherwise.
func (d *Document) InsertAtCursor(target dom.Element, markup string) {
	el, ok := target.(*element)
	if !ok || el == nil {
		return
	}
	sel := d.win.Call("getSelection")
	if !sel.IsNull() && sel.Get("rangeCount").Int() > 0 {
		rng := sel.Call("getRangeAt", 0)
		if el.v.Call("contains", rng.Get("commonAncestorContainer")).Bool() {
			rng.Call("deleteContents")
			rng.Call("insertNode", rng.Call("createContextualFragment", markup))
			rng.Call("collapse", false)
			return
		}
	}
	el.v.Call("insertAdjacentHTML", "beforeend", markup)
}

// OnUncaughtError registers fn for window errors and unhandled promise
// rejections.
func (d *Document) OnUncaughtError(fn func(error)) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	first := len(d.uncaught) == 0
	d.uncaught = append(d.uncaught, fn)
	d.mu.Unlock()
	if !first {
		return
	}

	onError := js.FuncOf(func(_ js.Value, args []js.Value) any {
		d.report(jsError(args[0].Get("error")))
		return nil
	})
	onRejection := js.FuncOf(func(_ js.Value, args []js.Value) any {
		d.report(jsError(args[0].Get("reason")))
		return nil
	})
	d.keep(d.doc, onError)
	d.keep(d.doc, onRejection)
	d.win.Call("addEventListener", "error", onError)
	d.win.Call("addEventListener", "unhandledrejection", onRejection)
}

func (d *Document) report(err error) {
	d.mu.Lock()
	hooks := slices.Clone(d.uncaught)
	d.mu.Unlock()
	for _, h := range hooks {
		h(err)
	}
}

// safely runs fn and turns a panic into an uncaught error.
func (d *Document) safely(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			d.report(fmt.Errorf("uncaught: %w", err))
		}
	}()
	fn()
}

func jsError(v js.Value) error {
	switch {
	case v.IsUndefined() || v.IsNull():
		return errors.New("unknown error")
	case v.Type() == js.TypeObject && v.Get("message").Type() == js.TypeString:
		return errors.New(v.Get("message").String())
	}
	return errors.New(v.Call("toString").String())
}
