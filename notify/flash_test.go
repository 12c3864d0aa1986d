package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/neuralwired/internal/headless"
	"github.com/dmitrymomot/neuralwired/notify"
)

func TestFlash_LazyMarkup(t *testing.T) {
	t.Parallel()
	doc := headless.New()
	f := notify.NewFlash(doc)

	assert.Nil(t, doc.ElementByID(notify.FlashContainerID))
	assert.False(t, f.Visible())

	f.Success("Saved")
	require.NotNil(t, doc.ElementByID(notify.FlashContainerID))
	assert.True(t, f.Visible())
	assert.Equal(t, "Saved", f.Message())

	class, _ := doc.ElementByID(notify.FlashMessageID).Attr("class")
	assert.Equal(t, "flash-message flash-success", class)

	f.Error("Broken")
	assert.Len(t, doc.QuerySelectorAll("#"+notify.FlashContainerID), 1)
	class, _ = doc.ElementByID(notify.FlashMessageID).Attr("class")
	assert.Equal(t, "flash-message flash-error", class)
}

func TestFlash_Expires(t *testing.T) {
	t.Parallel()
	doc := headless.New()
	f := notify.NewFlash(doc)

	f.Show("hello", notify.TypeInfo, 100*time.Millisecond)
	assert.True(t, f.Visible())

	time.Sleep(150 * time.Millisecond)
	assert.False(t, f.Visible())
}

func TestFlash_ShowResetsTimer(t *testing.T) {
	t.Parallel()
	doc := headless.New()
	f := notify.NewFlash(doc)

	f.Show("first", notify.TypeInfo, 200*time.Millisecond)
	time.Sleep(120 * time.Millisecond)
	f.Show("second", notify.TypeWarning, 200*time.Millisecond)

	time.Sleep(130 * time.Millisecond)
	assert.True(t, f.Visible(), "first timer must not hide the second message")
	assert.Equal(t, "second", f.Message())

	assert.Eventually(t, func() bool { return !f.Visible() }, time.Second, 10*time.Millisecond)
}

func TestFlash_DefaultDurationAndClick(t *testing.T) {
	t.Parallel()
	doc := headless.New()
	var seen []notify.Type
	f := notify.NewFlash(doc,
		notify.WithDuration(50*time.Millisecond),
		notify.WithObserver(func(_ string, typ notify.Type) { seen = append(seen, typ) }),
	)

	f.Warning("careful")
	assert.Eventually(t, func() bool { return !f.Visible() }, time.Second, 5*time.Millisecond)

	f.Info("click me")
	assert.True(t, f.Visible())
	doc.Click(doc.ElementByID(notify.FlashMessageID))
	assert.False(t, f.Visible())

	assert.Equal(t, []notify.Type{notify.TypeWarning, notify.TypeInfo}, seen)
}

func TestFlash_Hide(t *testing.T) {
	t.Parallel()
	f := notify.NewFlash(headless.New())
	f.Hide()
	f.Success("x")
	f.Hide()
	assert.False(t, f.Visible())
}
