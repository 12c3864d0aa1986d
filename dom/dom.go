package dom

import (
	"context"
	"io"
)

// Region ids of the always-present containers of the application shell.
const (
	RegionHeader  = "header-container"
	RegionContent = "content-container"
	RegionFooter  = "footer-container"
)

// Event types dispatched by documents.
const (
	EventClick   = "click"
	EventSubmit  = "submit"
	EventChange  = "change"
	EventKeyDown = "keydown"
)

// Listener handles a dispatched event.
type Listener func(*Event)

// Event is a DOM event as seen by listeners.
type Event struct {
	Type   string
	Target Element
	// Key is set for keyboard events ("Escape", "Enter", ...).
	Key string

	prevented bool
}

// NewEvent creates an event of the given type aimed at target.
func NewEvent(typ string, target Element) *Event {
	return &Event{Type: typ, Target: target}
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Element is a node of the mounted document.
type Element interface {
	ID() string
	TagName() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	HasClass(name string) bool
	SetClassName(className string)

	InnerHTML() string
	SetInnerHTML(markup string)
	TextContent() string
	SetTextContent(text string)

	// Value is the current value of input and textarea elements.
	Value() string
	SetValue(value string)
	Checked() bool
	SetChecked(checked bool)

	// Visible reports whether the element is not hidden by display:none.
	Visible() bool
	// SetDisplay sets the inline display style ("none", "block", "flex").
	SetDisplay(display string)

	// Closest returns the nearest ancestor-or-self matching selector, or nil.
	Closest(selector string) Element
	// Contains reports whether other is this element or one of its descendants.
	Contains(other Element) bool
	Focus()
	Remove()
	// ReplaceWith swaps the element for the parsed markup.
	ReplaceWith(markup string)

	AddEventListener(typ string, fn Listener)
}

// Storage is a string key/value store (localStorage, sessionStorage).
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// File is a file chosen through the picker.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Document is the mounting surface and window of the running application.
type Document interface {
	// ElementByID returns the element with the id, or nil.
	ElementByID(id string) Element
	QuerySelectorAll(selector string) []Element
	// AppendToBody parses markup and appends it to the body.
	AppendToBody(markup string) error
	// Root is the <html> element.
	Root() Element
	// AddEventListener registers a document-level listener. Events bubble
	// from their target to the document.
	AddEventListener(typ string, fn Listener)

	// Path is the path component of the current location.
	Path() string
	PushState(url string)
	// OnPopState registers fn for history back/forward navigation.
	OnPopState(fn func())
	ScrollTo(x, y int)

	LocalStorage() Storage
	SessionStorage() Storage

	// Prompt asks the user for a string; ok is false when cancelled.
	Prompt(message, defaultValue string) (value string, ok bool)
	// PickFile asks the user for a file matching accept (e.g. "image/*").
	PickFile(ctx context.Context, accept string) (*File, error)

	// ExecCommand applies a rich-text command to the focused editable region.
	ExecCommand(command, value string)
	// InsertAtCursor inserts markup at the caret inside target, or at its end
	// when the caret is elsewhere.
	InsertAtCursor(target Element, markup string)

	// OnUncaughtError registers fn for errors nothing else handled.
	OnUncaughtError(fn func(error))
}
