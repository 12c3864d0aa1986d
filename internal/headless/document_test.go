package headless_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/internal/headless"
)

func mount(t *testing.T, d *headless.Document, markup string) {
	t.Helper()
	el := d.ElementByID(dom.RegionContent)
	require.NotNil(t, el)
	el.SetInnerHTML(markup)
}

func TestDocument_Shell(t *testing.T) {
	d := headless.New()
	for _, id := range []string{dom.RegionHeader, dom.RegionContent, dom.RegionFooter} {
		assert.NotNil(t, d.ElementByID(id), id)
	}
	assert.Nil(t, d.ElementByID("missing"))
	assert.Equal(t, "/", d.Path())
	assert.Equal(t, "html", d.Root().TagName())
}

func TestDocument_QueryAndMarkup(t *testing.T) {
	d := headless.New()
	mount(t, d, `<ul><li class="a">one</li><li class="a b">two</li></ul><p id="p">x &amp; y</p>`)

	items := d.QuerySelectorAll("li.a")
	require.Len(t, items, 2)
	assert.True(t, items[1].HasClass("b"))
	assert.Equal(t, "two", items[1].TextContent())

	p := d.ElementByID("p")
	assert.Equal(t, "x & y", p.TextContent())
	assert.Equal(t, "x &amp; y", p.InnerHTML())

	assert.Nil(t, d.QuerySelectorAll("li[")) // invalid selector
	assert.Contains(t, d.Region(dom.RegionContent), `<li class="a">one</li>`)
}

func TestDocument_FormValues(t *testing.T) {
	d := headless.New()
	mount(t, d, `<form id="f">
		<input id="title" value="Hello">
		<input id="flag" type="checkbox" checked>
		<textarea id="body">&lt;p&gt;hi&lt;/p&gt;</textarea>
		<select id="size"><option value="1">S</option><option value="3" selected>M</option></select>
	</form>`)

	assert.Equal(t, "Hello", d.ElementByID("title").Value())
	assert.True(t, d.ElementByID("flag").Checked())
	assert.Equal(t, "<p>hi</p>", d.ElementByID("body").Value())
	assert.Equal(t, "3", d.ElementByID("size").Value())

	d.Fill(d.ElementByID("title"), "World")
	d.ElementByID("body").SetValue("<b>x</b>")
	d.ElementByID("size").SetValue("1")

	assert.Equal(t, "World", d.ElementByID("title").Value())
	assert.Equal(t, "<b>x</b>", d.ElementByID("body").Value())
	assert.Equal(t, "1", d.ElementByID("size").Value())
}

func TestDocument_Visibility(t *testing.T) {
	d := headless.New()
	mount(t, d, `<div id="wrap" style="display: none;"><input id="inner"></div><p id="p" style="color: red">x</p>`)

	assert.False(t, d.ElementByID("wrap").Visible())
	assert.False(t, d.ElementByID("inner").Visible())
	assert.True(t, d.ElementByID("p").Visible())

	d.ElementByID("wrap").SetDisplay("block")
	assert.True(t, d.ElementByID("inner").Visible())

	p := d.ElementByID("p")
	p.SetDisplay("none")
	style, _ := p.Attr("style")
	assert.Equal(t, "color: red; display: none;", style)
}

func TestDocument_EventBubbling(t *testing.T) {
	d := headless.New()
	mount(t, d, `<div id="outer"><a id="link" href="/x"><span id="inner">go</span></a></div>`)

	var order []string
	d.ElementByID("link").AddEventListener(dom.EventClick, func(e *dom.Event) {
		order = append(order, "link")
		assert.Equal(t, "inner", e.Target.ID())
	})
	d.ElementByID("outer").AddEventListener(dom.EventClick, func(*dom.Event) { order = append(order, "outer") })
	d.AddEventListener(dom.EventClick, func(e *dom.Event) {
		order = append(order, "document")
		anchor := e.Target.Closest("a")
		require.NotNil(t, anchor)
		href, _ := anchor.Attr("href")
		assert.Equal(t, "/x", href)
		e.PreventDefault()
	})

	ran := d.Click(d.ElementByID("inner"))
	assert.False(t, ran)
	assert.Equal(t, []string{"link", "outer", "document"}, order)
}

func TestDocument_CheckboxAndSubmit(t *testing.T) {
	d := headless.New()
	mount(t, d, `<form id="f"><input id="c" type="checkbox"><button id="save" type="submit">Save</button><button id="cancel" type="button">Cancel</button></form>`)

	var changed, submitted int
	d.ElementByID("c").AddEventListener(dom.EventChange, func(e *dom.Event) {
		changed++
		assert.True(t, e.Target.Checked())
	})
	d.ElementByID("f").AddEventListener(dom.EventSubmit, func(e *dom.Event) {
		e.PreventDefault()
		submitted++
	})

	d.Click(d.ElementByID("c"))
	assert.True(t, d.ElementByID("c").Checked())
	assert.Equal(t, 1, changed)

	d.Click(d.ElementByID("cancel"))
	assert.Equal(t, 0, submitted)
	d.Click(d.ElementByID("save"))
	assert.Equal(t, 1, submitted)
}

func TestDocument_ListenersDroppedOnReplace(t *testing.T) {
	d := headless.New()
	mount(t, d, `<button id="b" type="button">x</button>`)
	calls := 0
	d.ElementByID("b").AddEventListener(dom.EventClick, func(*dom.Event) { calls++ })

	mount(t, d, `<button id="b" type="button">x</button>`)
	d.Click(d.ElementByID("b"))
	assert.Equal(t, 0, calls)
}

func TestDocument_PanicsReported(t *testing.T) {
	d := headless.New()
	mount(t, d, `<button id="b" type="button">x</button>`)

	var reported []error
	d.OnUncaughtError(func(err error) { reported = append(reported, err) })

	boom := errors.New("boom")
	after := false
	d.ElementByID("b").AddEventListener(dom.EventClick, func(*dom.Event) { panic(boom) })
	d.AddEventListener(dom.EventClick, func(*dom.Event) { after = true })

	d.Click(d.ElementByID("b"))
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], boom)
	assert.True(t, after)
}

func TestDocument_History(t *testing.T) {
	d := headless.New(headless.WithURL("/start?x=1"))
	assert.Equal(t, "/start", d.Path())

	pops := 0
	d.OnPopState(func() { pops++ })

	d.PushState("/a")
	d.PushState("/b")
	assert.Equal(t, "/b", d.Path())

	require.True(t, d.Back())
	assert.Equal(t, "/a", d.Path())
	assert.Equal(t, 1, pops)

	d.PushState("/c")
	assert.Equal(t, []string{"/start?x=1", "/a", "/c"}, d.History())

	d.ScrollTo(0, 0)
	x, y := d.Scroll()
	assert.Zero(t, x+y)
}

func TestDocument_KeyDownAndRemove(t *testing.T) {
	d := headless.New()
	require.NoError(t, d.AppendToBody(`<div id="overlay"><span id="msg">hi</span></div>`))

	var keys []string
	d.AddEventListener(dom.EventKeyDown, func(e *dom.Event) { keys = append(keys, e.Key) })
	d.KeyDown("Escape")
	assert.Equal(t, []string{"Escape"}, keys)

	overlay := d.ElementByID("overlay")
	assert.True(t, overlay.Contains(d.ElementByID("msg")))
	assert.False(t, d.ElementByID("msg").Contains(overlay))

	overlay.Remove()
	assert.Nil(t, d.ElementByID("overlay"))
}

func TestDocument_RichText(t *testing.T) {
	d := headless.New()
	mount(t, d, `<div id="ed" contenteditable="true"><p>text</p></div>`)
	ed := d.ElementByID("ed")

	ed.Focus()
	d.ExecCommand("bold", "")
	assert.Equal(t, []headless.Command{{Name: "bold", Target: "ed"}}, d.Commands())

	d.InsertAtCursor(ed, `<span class="image-placeholder">Uploading a.png...</span>`)
	ph := d.Query(".image-placeholder")
	require.NotNil(t, ph)

	ph.ReplaceWith(`<img src="/u/a.png" alt="a.png">`)
	assert.Equal(t, `<p>text</p><img src="/u/a.png" alt="a.png"/>`, ed.InnerHTML())
}

func TestDocument_PromptAndFiles(t *testing.T) {
	d := headless.New()
	_, ok := d.Prompt("url?", "https://")
	assert.False(t, ok)

	d.SetPrompt(func(msg, def string) (string, bool) { return def + "example.com", true })
	v, ok := d.Prompt("url?", "https://")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", v)

	_, err := d.PickFile(context.Background(), "image/*")
	assert.ErrorIs(t, err, dom.ErrNoFileSelected)

	d.QueueFile(&dom.File{Name: "a.png", Body: strings.NewReader("png")})
	f, err := d.PickFile(context.Background(), "image/*")
	require.NoError(t, err)
	assert.Equal(t, "a.png", f.Name)
}
