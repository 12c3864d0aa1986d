package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/neuralwired/internal/headless"
	"github.com/dmitrymomot/neuralwired/notify"
)

type outcome struct{ confirmed, cancelled int }

func (o *outcome) callbacks() (func(), func()) {
	return func() { o.confirmed++ }, func() { o.cancelled++ }
}

func TestConfirm_LazyMarkup(t *testing.T) {
	t.Parallel()
	doc := headless.New()
	c := notify.NewConfirm(doc)
	assert.Nil(t, doc.ElementByID(notify.ConfirmContainerID))

	c.Show("Delete this page?", nil, nil)
	require.NotNil(t, doc.ElementByID(notify.ConfirmContainerID))
	assert.True(t, doc.ElementByID(notify.ConfirmContainerID).Visible())
	assert.Equal(t, "Delete this page?", doc.ElementByID(notify.ConfirmMessageID).TextContent())
	assert.Equal(t, "Confirm", doc.ElementByID(notify.ConfirmButtonID).TextContent())
}

func TestConfirm_Paths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		act  func(doc *headless.Document)
		want outcome
	}{
		{"confirm button", func(doc *headless.Document) { doc.Click(doc.ElementByID(notify.ConfirmButtonID)) }, outcome{confirmed: 1}},
		{"cancel button", func(doc *headless.Document) { doc.Click(doc.ElementByID(notify.ConfirmCancelID)) }, outcome{cancelled: 1}},
		{"outside click", func(doc *headless.Document) { doc.Click(doc.ElementByID(notify.ConfirmContainerID)) }, outcome{cancelled: 1}},
		{"escape", func(doc *headless.Document) { doc.KeyDown("Escape") }, outcome{cancelled: 1}},
		{"inside click", func(doc *headless.Document) { doc.Click(doc.ElementByID(notify.ConfirmMessageID)) }, outcome{}},
		{"other key", func(doc *headless.Document) { doc.KeyDown("Enter") }, outcome{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := headless.New()
			c := notify.NewConfirm(doc)
			var got outcome
			onConfirm, onCancel := got.callbacks()
			c.Show("Sure?", onConfirm, onCancel)

			tt.act(doc)
			assert.Equal(t, tt.want, got)

			closed := tt.want.confirmed+tt.want.cancelled > 0
			assert.Equal(t, !closed, c.Visible())
			assert.Equal(t, !closed, doc.ElementByID(notify.ConfirmContainerID).Visible())
		})
	}
}

func TestConfirm_NilCancelAndReuse(t *testing.T) {
	t.Parallel()
	doc := headless.New()
	c := notify.NewConfirm(doc, notify.WithLabels("No", "Yes"))

	confirmed := 0
	c.Show("First?", func() { confirmed++ }, nil)
	doc.KeyDown("Escape")
	assert.False(t, c.Visible())

	c.Show("Second?", func() { confirmed++ }, nil)
	assert.Len(t, doc.QuerySelectorAll("#"+notify.ConfirmContainerID), 1)
	assert.Equal(t, "Yes", doc.ElementByID(notify.ConfirmButtonID).TextContent())
	doc.Click(doc.ElementByID(notify.ConfirmButtonID))
	assert.Equal(t, 1, confirmed)

	// Escape on a closed dialog does nothing.
	doc.KeyDown("Escape")
	assert.Equal(t, 1, confirmed)
}
