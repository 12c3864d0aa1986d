package component_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/neuralwired/component"
	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/internal/backendtest"
	"github.com/dmitrymomot/neuralwired/internal/headless"
)

func submitButton(t *testing.T, h *harness, formID string) dom.Element {
	t.Helper()
	btn := h.doc.Query("#" + formID + ` button[type="submit"]`)
	require.NotNil(t, btn)
	return btn
}

func tool(t *testing.T, h *harness, selector string) dom.Element {
	t.Helper()
	el := h.doc.Query(`.editor-toolbar ` + selector)
	require.NotNil(t, el, selector)
	return el
}

func TestEditor_BlogOptionsToggleInPlace(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ed := component.NewEditor(h.deps)
	h.show(t, "editor", ed, "")
	assert.Equal(t, component.ModeCreate, ed.Mode())

	options := h.doc.QuerySelectorAll("." + component.BlogOptionClass)
	require.Len(t, options, 2)
	for _, o := range options {
		assert.False(t, o.Visible())
	}
	assert.False(t, h.el(t, component.ExcerptEditorID).Visible())
	form := h.el(t, component.PageFormID)

	h.doc.Click(h.el(t, component.IsBlogID))
	for _, o := range h.doc.QuerySelectorAll("." + component.BlogOptionClass) {
		assert.True(t, o.Visible())
	}
	assert.True(t, ed.Draft().IsBlog)
	assert.True(t, form.Contains(h.el(t, component.ExcerptEditorID)), "toggled without re-render")

	h.doc.Click(h.el(t, component.IsBlogID))
	for _, o := range h.doc.QuerySelectorAll("." + component.BlogOptionClass) {
		assert.False(t, o.Visible())
	}
}

func TestEditor_CreateRoundTrip(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	h.show(t, "editor", component.NewEditor(h.deps), "")

	assert.NotNil(t, h.doc.ElementByID(component.SlugInputID))
	h.doc.Fill(h.el(t, component.TitleInputID), "Hello World")
	h.doc.Fill(h.el(t, component.ContentEditorID), `<p>Hello <b>world</b></p>`)
	h.doc.Click(submitButton(t, h, component.PageFormID))

	assert.Equal(t, `<p>Hello <b>world</b></p>`, h.el(t, component.ContentFieldID).Value())

	page, ok := h.backend.Page("hello-world")
	require.True(t, ok)
	assert.Equal(t, `<p>Hello <b>world</b></p>`, page.Content)
	assert.False(t, page.IsBlog)

	body := h.backend.LastBody(http.MethodPost, "/api/pages")
	assert.NotContains(t, body, "excerpt")
	assert.NotContains(t, body, "slug")

	assert.Equal(t, "/manage", h.nav.last())
	assert.Equal(t, "Page created successfully", h.flash.Message())
	assert.Empty(t, h.reported)
}

func TestEditor_CreateBlogPostExcerpt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		excerpt     string
		wantExcerpt bool
	}{
		{"written excerpt", `<p>Short <i>summary</i></p>`, true},
		{"blank excerpt", `<p><br></p>`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.login(t)
			h.show(t, "editor", component.NewEditor(h.deps), "")

			h.doc.Fill(h.el(t, component.TitleInputID), "Post")
			h.doc.Fill(h.el(t, component.SlugInputID), " custom-slug ")
			h.doc.Click(h.el(t, component.IsBlogID))
			h.doc.Click(h.el(t, component.FeaturedID))
			h.doc.Fill(h.el(t, component.ExcerptEditorID), tt.excerpt)
			h.doc.Fill(h.el(t, component.ContentEditorID), `<p>Body</p>`)
			h.doc.Click(submitButton(t, h, component.PageFormID))

			body := h.backend.LastBody(http.MethodPost, "/api/pages")
			require.NotNil(t, body)
			assert.Equal(t, "custom-slug", body["slug"])
			assert.Equal(t, true, body["is_blog"])
			assert.Equal(t, true, body["featured"])
			if tt.wantExcerpt {
				assert.Equal(t, `<p>Short <i>summary</i></p>`, body["excerpt"])
			} else {
				assert.NotContains(t, body, "excerpt")
			}

			page, ok := h.backend.Page("custom-slug")
			require.True(t, ok)
			assert.True(t, page.Featured)
		})
	}
}

func TestEditor_EditRoundTrip(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	h.backend.AddPage(backendtest.Page{Title: "Old", Slug: "old", Content: "<p>old</p>", IsBlog: true, Excerpt: "<p>ex</p>"})

	ed := component.NewEditor(h.deps)
	h.show(t, "editor", ed, "old")
	assert.Equal(t, component.ModeEdit, ed.Mode())
	assert.Nil(t, h.doc.ElementByID(component.SlugInputID))
	assert.Equal(t, "Old", h.el(t, component.TitleInputID).Value())
	assert.True(t, h.el(t, component.IsBlogID).Checked())
	assert.True(t, h.el(t, component.ExcerptEditorID).Visible())
	assert.Equal(t, "<p>old</p>", h.el(t, component.ContentEditorID).InnerHTML())

	h.doc.Fill(h.el(t, component.ContentEditorID), "<p>new</p>")
	h.doc.Click(submitButton(t, h, component.PageFormID))

	page, ok := h.backend.Page("old")
	require.True(t, ok)
	assert.Equal(t, "<p>new</p>", page.Content)
	assert.Equal(t, "<p>ex</p>", page.Excerpt)
	assert.Equal(t, "/manage", h.nav.last())
	assert.Equal(t, "Page updated successfully", h.flash.Message())
}

func TestEditor_FailureRerendersInPlace(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	h.backend.AddPage(backendtest.Page{Title: "Old", Slug: "old", Content: "<p>old</p>"})
	h.backend.Fail(http.MethodPut, "/api/pages/old", http.StatusInternalServerError, "db down")

	h.show(t, "editor", component.NewEditor(h.deps), "old")
	h.doc.Fill(h.el(t, component.TitleInputID), "New title")
	h.doc.Fill(h.el(t, component.ContentEditorID), "<p>draft</p>")
	h.doc.Click(submitButton(t, h, component.PageFormID))

	require.Len(t, h.reported, 1)
	assert.Equal(t, "db down", h.reported[0].Err.Error())
	assert.Empty(t, h.nav.paths)
	assert.Equal(t, "New title", h.el(t, component.TitleInputID).Value())
	assert.Equal(t, "<p>draft</p>", h.el(t, component.ContentEditorID).InnerHTML())

	h.backend.Fail(http.MethodPut, "/api/pages/old", 0, "")
	h.doc.Click(submitButton(t, h, component.PageFormID))
	page, _ := h.backend.Page("old")
	assert.Equal(t, "New title", page.Title)
	assert.Equal(t, "/manage", h.nav.last())
}

func TestEditor_Introduction(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)

	ed := component.NewEditor(h.deps)
	h.show(t, "editor", ed, component.IntroductionArg)
	assert.Equal(t, component.ModeIntro, ed.Mode())
	assert.True(t, ed.Draft().IsIntroduction)
	assert.Equal(t, "Welcome to the blog", h.el(t, component.IntroEditorID).InnerHTML())
	assert.Nil(t, h.doc.Query(`[data-command="insertImage"]`))
	assert.Nil(t, h.doc.Query(`[data-command="formatBlock"]`))
	assert.NotNil(t, h.doc.Query(`[data-command="insertOrderedList"]`))

	h.doc.Fill(h.el(t, component.IntroEditorID), "<p>New intro</p>")
	h.doc.Click(submitButton(t, h, component.IntroFormID))

	assert.Equal(t, "<p>New intro</p>", h.backend.Intro())
	assert.Equal(t, "<p>New intro</p>", h.el(t, component.IntroTextareaID).Value())
	assert.Equal(t, "/", h.nav.last())
	assert.Equal(t, "Introduction updated successfully", h.flash.Message())
}

func TestEditor_MissingPageShowsLoading(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ed := component.NewEditor(h.deps)
	h.show(t, "editor", ed, "nope")

	assert.Nil(t, ed.Draft())
	assert.Equal(t, `<div class="loading">Loading...</div>`, h.content())
}

func TestEditor_Cancel(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.show(t, "editor", component.NewEditor(h.deps), "")
	h.doc.Click(h.el(t, component.CancelButtonID))
	assert.Equal(t, "/manage", h.nav.last())

	h.show(t, "editor", component.NewEditor(h.deps), component.IntroductionArg)
	h.doc.Click(h.el(t, component.CancelButtonID))
	assert.Equal(t, "/", h.nav.last())
}

func TestEditor_ToolbarCommands(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.show(t, "editor", component.NewEditor(h.deps), "")

	h.doc.Click(tool(t, h, `[data-command="bold"]`))
	h.doc.Click(tool(t, h, `[data-value="H1"]`))

	h.doc.Click(tool(t, h, `[data-command="createLink"]`)) // prompt cancelled
	h.doc.SetPrompt(func(_, def string) (string, bool) { return def + "go.dev", true })
	h.doc.Click(tool(t, h, `[data-command="createLink"]`))

	sel := tool(t, h, "select."+component.ToolbarSelClass)
	h.doc.Fill(sel, "5")
	h.doc.Change(sel)
	assert.Empty(t, sel.Value())

	target := component.ContentEditorID
	assert.Equal(t, []headless.Command{
		{Name: "bold", Target: target},
		{Name: "formatBlock", Value: "H1", Target: target},
		{Name: "createLink", Value: "https://go.dev", Target: target},
		{Name: "fontSize", Value: "5", Target: target},
	}, h.doc.Commands())
}

func TestEditor_ImageUpload(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	h.show(t, "editor", component.NewEditor(h.deps), "")
	h.doc.Fill(h.el(t, component.ContentEditorID), "<p>text</p>")

	// No file chosen: nothing happens.
	h.doc.Click(tool(t, h, `[data-command="insertImage"]`))
	assert.Equal(t, "<p>text</p>", h.el(t, component.ContentEditorID).InnerHTML())

	h.doc.QueueFile(&dom.File{Name: "cat.png", ContentType: "image/png", Body: strings.NewReader("png")})
	h.doc.Click(tool(t, h, `[data-command="insertImage"]`))
	assert.Equal(t,
		`<p>text</p><img src="/static/uploads/cat.png" alt="cat.png" style="max-width: 100%"/>`,
		h.el(t, component.ContentEditorID).InnerHTML())
	assert.Nil(t, h.doc.Query(".image-placeholder"))

	h.backend.Fail(http.MethodPost, "/api/upload-image", http.StatusInternalServerError, "")
	h.doc.QueueFile(&dom.File{Name: "dog.png", Body: strings.NewReader("png")})
	h.doc.Click(tool(t, h, `[data-command="insertImage"]`))
	assert.Nil(t, h.doc.Query(".image-placeholder"))
	assert.NotContains(t, h.el(t, component.ContentEditorID).InnerHTML(), "dog.png")
	require.Len(t, h.reported, 1)
	assert.Equal(t, "Image upload failed", h.reported[0].Err.Error())
}
