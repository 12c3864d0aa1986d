package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// ConfirmOption configures a Confirm.
type ConfirmOption func(*Confirm)

// WithLabels sets the button captions ("Cancel", "Confirm").
func WithLabels(cancel, confirm string) ConfirmOption {
	return func(c *Confirm) {
		if cancel != "" {
			c.cancelLabel = cancel
		}
		if confirm != "" {
			c.confirmLabel = confirm
		}
	}
}

// WithConfirmLogger sets the logger.
func WithConfirmLogger(log *slog.Logger) ConfirmOption {
	return func(c *Confirm) {
		if log != nil {
			c.log = log
		}
	}
}

// Confirm is a modal yes/no dialog. Confirming runs onConfirm; the cancel
// button, a click outside the dialog and Escape run onCancel.
type Confirm struct {
	doc          dom.Document
	log          *slog.Logger
	cancelLabel  string
	confirmLabel string

	mu        sync.Mutex
	built     bool
	open      bool
	onConfirm func()
	onCancel  func()
}

// NewConfirm creates a dialog bound to doc. Its markup is created on the
// first Show.
func NewConfirm(doc dom.Document, opts ...ConfirmOption) *Confirm {
	c := &Confirm{
		doc:          doc,
		log:          logger.Discard(),
		cancelLabel:  "Cancel",
		confirmLabel: "Confirm",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// build requires c.mu.
func (c *Confirm) build() bool {
	if c.built && c.doc.ElementByID(ConfirmContainerID) != nil {
		return true
	}
	markup, err := dom.RenderString(context.Background(), confirmView(c.cancelLabel, c.confirmLabel))
	if err == nil {
		err = c.doc.AppendToBody(markup)
	}
	if err != nil {
		c.log.Error("confirm markup", logger.Error(err))
		return false
	}

	container := c.doc.ElementByID(ConfirmContainerID)
	confirm := c.doc.ElementByID(ConfirmButtonID)
	cancel := c.doc.ElementByID(ConfirmCancelID)
	if container == nil || confirm == nil || cancel == nil {
		return false
	}

	confirm.AddEventListener(dom.EventClick, func(*dom.Event) { c.resolve(true) })
	cancel.AddEventListener(dom.EventClick, func(*dom.Event) { c.resolve(false) })
	container.AddEventListener(dom.EventClick, func(e *dom.Event) {
		if e.Target != nil && e.Target.ID() == ConfirmContainerID {
			c.resolve(false)
		}
	})
	if !c.built {
		c.doc.AddEventListener(dom.EventKeyDown, func(e *dom.Event) {
			if e.Key == "Escape" {
				c.resolve(false)
			}
		})
	}
	c.built = true
	return true
}

// Show opens the dialog with message. onCancel may be nil. A dialog that is
// already open has its callbacks replaced.
func (c *Confirm) Show(message string, onConfirm, onCancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.build() {
		return
	}
	c.onConfirm, c.onCancel = onConfirm, onCancel
	c.open = true

	if el := c.doc.ElementByID(ConfirmMessageID); el != nil {
		el.SetTextContent(message)
	}
	if el := c.doc.ElementByID(ConfirmContainerID); el != nil {
		el.SetDisplay("flex")
	}
}

// resolve closes an open dialog and runs the chosen callback.
func (c *Confirm) resolve(confirmed bool) {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return
	}
	fn := c.onCancel
	if confirmed {
		fn = c.onConfirm
	}
	c.hide()
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Hide closes the dialog without running any callback.
func (c *Confirm) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hide()
}

// hide requires c.mu.
func (c *Confirm) hide() {
	c.open = false
	c.onConfirm, c.onCancel = nil, nil
	if el := c.doc.ElementByID(ConfirmContainerID); el != nil {
		el.SetDisplay("none")
	}
}

// Visible reports whether the dialog is open.
func (c *Confirm) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}
