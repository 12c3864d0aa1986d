//go:build js && wasm

package browser

import (
	"strings"
	"syscall/js"

	"github.com/dmitrymomot/neuralwired/dom"
)

type element struct {
	doc *Document
	v   js.Value
}

var _ dom.Element = (*element)(nil)

func (e *element) ID() string { return e.v.Get("id").String() }

func (e *element) TagName() string {
	return strings.ToLower(e.v.Get("tagName").String())
}

func (e *element) Attr(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (e *element) SetAttr(name, value string) { e.v.Call("setAttribute", name, value) }

func (e *element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *element) SetClassName(className string) { e.v.Set("className", className) }

func (e *element) InnerHTML() string          { return e.v.Get("innerHTML").String() }
func (e *element) SetInnerHTML(markup string) { e.v.Set("innerHTML", markup) }
func (e *element) TextContent() string        { return e.v.Get("textContent").String() }
func (e *element) SetTextContent(text string) { e.v.Set("textContent", text) }

func (e *element) Value() string {
	v := e.v.Get("value")
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (e *element) SetValue(value string) { e.v.Set("value", value) }

func (e *element) Checked() bool {
	v := e.v.Get("checked")
	return v.Type() == js.TypeBoolean && v.Bool()
}

func (e *element) SetChecked(checked bool) { e.v.Set("checked", checked) }

// Visible walks up to the document and fails on the first computed
// display:none.
func (e *element) Visible() bool {
	if !e.v.Get("isConnected").Bool() {
		return false
	}
	for n := e.v; !n.IsNull(); n = n.Get("parentElement") {
		if e.doc.win.Call("getComputedStyle", n).Get("display").String() == "none" {
			return false
		}
	}
	return true
}

func (e *element) SetDisplay(display string) {
	e.v.Get("style").Set("display", display)
}

func (e *element) Closest(selector string) (found dom.Element) {
	defer func() {
		if recover() != nil {
			found = nil
		}
	}()
	return e.doc.wrap(e.v.Call("closest", selector))
}

func (e *element) Contains(other dom.Element) bool {
	o, ok := other.(*element)
	if !ok || o == nil {
		return false
	}
	return e.v.Call("contains", o.v).Bool()
}

func (e *element) Focus()  { e.v.Call("focus") }
func (e *element) Remove() { e.v.Call("remove") }

func (e *element) ReplaceWith(markup string) {
	e.v.Set("outerHTML", markup)
}

func (e *element) AddEventListener(typ string, fn dom.Listener) {
	if fn == nil {
		return
	}
	e.doc.listen(e.v, typ, fn)
}
