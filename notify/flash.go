package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// DefaultDuration is how long a flash stays visible when no duration is given.
const DefaultDuration = 3 * time.Second

// Type is the severity of a flash message; it selects the flash-<type> class.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
)

// Observer is told about every message shown.
type Observer func(message string, typ Type)

// FlashOption configures a Flash.
type FlashOption func(*Flash)

// WithDuration sets the default display time. Non-positive values are ignored.
func WithDuration(d time.Duration) FlashOption {
	return func(f *Flash) {
		if d > 0 {
			f.duration = d
		}
	}
}

// WithFlashLogger sets the logger.
func WithFlashLogger(log *slog.Logger) FlashOption {
	return func(f *Flash) {
		if log != nil {
			f.log = log
		}
	}
}

// WithObserver registers fn for every shown message.
func WithObserver(fn Observer) FlashOption {
	return func(f *Flash) {
		if fn != nil {
			f.observers = append(f.observers, fn)
		}
	}
}

// Flash shows one transient message at a time. Showing a new message
// replaces the current one and restarts the dismiss timer.
type Flash struct {
	doc       dom.Document
	duration  time.Duration
	log       *slog.Logger
	observers []Observer

	mu        sync.Mutex
	timer     *time.Timer
	gen       uint64
	container dom.Element
	message   dom.Element
}

// NewFlash creates a flash bound to doc. No markup is created until the
// first message.
func NewFlash(doc dom.Document, opts ...FlashOption) *Flash {
	f := &Flash{
		doc:      doc,
		duration: DefaultDuration,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ensure creates the markup on first use. Caller holds f.mu.
func (f *Flash) ensure() bool {
	if f.container != nil && f.doc.ElementByID(FlashContainerID) != nil {
		return true
	}
	markup, err := dom.RenderString(context.Background(), flashView())
	if err == nil {
		err = f.doc.AppendToBody(markup)
	}
	if err != nil {
		f.log.Error("flash markup", logger.Error(err))
		return false
	}
	f.container = f.doc.ElementByID(FlashContainerID)
	f.message = f.doc.ElementByID(FlashMessageID)
	if f.container == nil || f.message == nil {
		return false
	}
	f.container.AddEventListener(dom.EventClick, func(*dom.Event) { f.Hide() })
	return true
}

// Show displays message with the given type for d (the default when d <= 0).
func (f *Flash) Show(message string, typ Type, d time.Duration) {
	if d <= 0 {
		d = f.duration
	}

	f.mu.Lock()
	if !f.ensure() {
		f.mu.Unlock()
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	f.gen++
	gen := f.gen

	f.message.SetTextContent(message)
	f.message.SetClassName("flash-message flash-" + string(typ))
	f.container.SetDisplay("block")
	f.timer = time.AfterFunc(d, func() { f.expire(gen) })
	f.mu.Unlock()

	f.log.Debug("flash shown", slog.String("type", string(typ)), slog.String("message", message))
	for _, fn := range f.observers {
		fn(message, typ)
	}
}

func (f *Flash) expire(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return
	}
	f.hide()
}

// Success shows a success message for the default duration.
func (f *Flash) Success(message string) { f.Show(message, TypeSuccess, 0) }

// Error shows an error message for the default duration.
func (f *Flash) Error(message string) { f.Show(message, TypeError, 0) }

// Info shows an info message for the default duration.
func (f *Flash) Info(message string) { f.Show(message, TypeInfo, 0) }

// Warning shows a warning for the default duration.
func (f *Flash) Warning(message string) { f.Show(message, TypeWarning, 0) }

// Hide dismisses the current message.
func (f *Flash) Hide() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.gen++
	f.hide()
}

// hide requires f.mu.
func (f *Flash) hide() {
	if f.container != nil {
		f.container.SetDisplay("none")
	}
}

// Visible reports whether a message is currently displayed.
func (f *Flash) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.container != nil && f.container.Visible()
}

// Message returns the text of the current or last message.
func (f *Flash) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.message == nil {
		return ""
	}
	return f.message.TextContent()
}
