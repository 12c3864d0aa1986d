package notify

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Element ids of the flash and confirm markup.
const (
	FlashContainerID = "flash-message-container"
	FlashMessageID   = "flash-message"

	ConfirmContainerID = "confirm-dialog-container"
	ConfirmMessageID   = "confirm-dialog-message"
	ConfirmCancelID    = "confirm-dialog-cancel"
	ConfirmButtonID    = "confirm-dialog-confirm"
)

func flashView() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="`+FlashContainerID+`" class="flash-message-container" style="display: none;">`+
			`<div id="`+FlashMessageID+`" class="flash-message"></div></div>`)
		return err
	})
}

func confirmView(cancelLabel, confirmLabel string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="`+ConfirmContainerID+`" class="confirm-dialog-container" style="display: none;">`+
			`<div class="confirm-dialog">`+
			`<p id="`+ConfirmMessageID+`" class="confirm-dialog-message"></p>`+
			`<div class="confirm-dialog-buttons">`+
			`<button type="button" id="`+ConfirmCancelID+`" class="btn btn-secondary">`+templ.EscapeString(cancelLabel)+`</button>`+
			`<button type="button" id="`+ConfirmButtonID+`" class="btn btn-danger">`+templ.EscapeString(confirmLabel)+`</button>`+
			`</div></div></div>`)
		return err
	})
}
