package component_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/neuralwired/component"
	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/internal/backendtest"
	"github.com/dmitrymomot/neuralwired/notify"
)

func seedPosts(b *backendtest.Backend) {
	b.AddPage(backendtest.Page{Title: "First", Slug: "first", IsBlog: true, Featured: true,
		Content: "<p>The first post body</p>", PublishedDate: "2024-01-01 09:00:00"})
	b.AddPage(backendtest.Page{Title: "Second", Slug: "second", IsBlog: true, Excerpt: "<p>Hand written</p>",
		Content: "<p>ignored</p>", PublishedDate: "2024-02-01 09:00:00"})
	b.AddPage(backendtest.Page{Title: "About", Slug: "about", Content: "<p>About me</p>"})
}

func TestHome_Render(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	seedPosts(h.backend)

	home := component.NewHome(h.deps)
	b := h.show(t, "home", home, "")
	out := h.content()

	assert.Contains(t, out, "Welcome to the blog")
	assert.Contains(t, out, "Featured Posts")
	assert.Contains(t, out, `<a href="/blog/first">First</a>`)
	assert.Contains(t, out, "<p>Hand written</p>")
	assert.Contains(t, out, "The first post body")
	assert.Contains(t, out, `<p class="post-date">2024-02-01</p>`)
	assert.NotContains(t, out, "About me")
	assert.NotContains(t, out, "edit-intro-link")

	reqs := h.backend.Requests()
	var queries []string
	for _, r := range reqs {
		if r.Path == "/api/posts" {
			queries = append(queries, r.Query)
		}
	}
	assert.Equal(t, []string{"featured=true&limit=3", "limit=5"}, queries)

	require.True(t, b.SetAuthenticated(true))
	require.NoError(t, dom.Mount(context.Background(), h.doc, dom.RegionContent, b.Render()))
	assert.Contains(t, h.content(), `href="/edit-intro"`)
}

func TestHome_DegradesOnFailure(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.backend.Fail(http.MethodGet, "/api/content", http.StatusInternalServerError, "down")
	h.backend.Fail(http.MethodGet, "/api/posts", http.StatusInternalServerError, "down")

	h.show(t, "home", component.NewHome(h.deps), "")
	out := h.content()
	assert.Contains(t, out, "No posts yet.")
	assert.NotContains(t, out, "Featured Posts")
}

func TestBlogIndex(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.show(t, "blog", component.NewBlogIndex(h.deps), "")
	assert.Contains(t, h.content(), "No posts yet.")

	seedPosts(h.backend)
	h.show(t, "blog", component.NewBlogIndex(h.deps), "")
	out := h.content()
	assert.Contains(t, out, `href="/blog/first"`)
	assert.Contains(t, out, `href="/blog/second"`)
	assert.NotContains(t, out, `/blog/about`)

	h.backend.Fail(http.MethodGet, "/api/posts", http.StatusInternalServerError, "down")
	err := component.NewBlogIndex(h.deps).FetchData(context.Background(), "")
	assert.EqualError(t, err, "down")
}

func TestBlogPost(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	seedPosts(h.backend)

	post := component.NewBlogPost(h.deps)
	b := h.show(t, "blog-post", post, "first")
	assert.False(t, b.Missing())
	out := h.content()
	assert.Contains(t, out, "<h1>First</h1>")
	assert.Contains(t, out, "Published 2024-01-01")
	assert.Contains(t, out, "<p>The first post body</p>")
	assert.Contains(t, out, `<a href="" class="back-link">`)
	assert.NotContains(t, out, "edit-link")

	b.SetAuthenticated(true)
	require.NoError(t, dom.Mount(context.Background(), h.doc, dom.RegionContent, b.Render()))
	assert.Contains(t, h.content(), `<a href="/edit/first" class="edit-link">Edit</a>`)

	missing := h.show(t, "blog-post", component.NewBlogPost(h.deps), "missing")
	assert.True(t, missing.Missing())
	assert.Contains(t, h.content(), "Page Not Found")

	page := h.show(t, "blog-post", component.NewBlogPost(h.deps), "about")
	assert.False(t, page.Missing())
	assert.Contains(t, h.content(), "<p>About me</p>")

	h.backend.Fail(http.MethodGet, "/api/pages/first", http.StatusInternalServerError, "down")
	assert.Error(t, component.NewBlogPost(h.deps).FetchData(context.Background(), "first"))
}

func TestPage(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	seedPosts(h.backend)

	b := h.show(t, "page", component.NewPage(h.deps), "about")
	assert.False(t, b.Missing())
	assert.Empty(t, b.Redirect())
	assert.Contains(t, h.content(), "<p>About me</p>")

	b = h.show(t, "page", component.NewPage(h.deps), "first")
	assert.Equal(t, "/blog/first", b.Redirect())

	b = h.show(t, "page", component.NewPage(h.deps), "nope")
	assert.True(t, b.Missing())
}

func TestLogin(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	var events []bool
	h.client.OnAuthStateChanged(func(a bool) { events = append(events, a) })

	h.show(t, "login", component.NewLogin(h.deps), "")
	h.doc.Fill(h.el(t, component.UsernameID), "admin")
	h.doc.Fill(h.el(t, component.PasswordID), "wrong")
	h.doc.Click(h.doc.Query(`#login-form button[type="submit"]`))

	assert.True(t, h.el(t, component.UsernameID).HasClass("input-error"))
	assert.True(t, h.el(t, component.PasswordID).HasClass("input-error"))
	assert.Equal(t, "Login failed: Invalid username or password", h.flash.Message())
	assert.Empty(t, h.nav.paths)
	assert.Empty(t, events)

	h.doc.Fill(h.el(t, component.PasswordID), backendtest.Password)
	h.doc.Submit(h.el(t, component.LoginFormID))
	assert.Equal(t, "Logged in successfully", h.flash.Message())
	assert.Equal(t, []string{"/"}, h.nav.paths)
	assert.Equal(t, []bool{true}, events)
}

func TestManagePages_Delete(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	seedPosts(h.backend)

	h.show(t, "manage", component.NewManagePages(h.deps), "")
	buttons := h.doc.QuerySelectorAll("." + component.DeleteButtonClass)
	require.Len(t, buttons, 3)
	assert.Contains(t, h.content(), "Blog Post (featured)")

	del := h.doc.Query(`.delete-page-btn[data-slug="about"]`)
	require.NotNil(t, del)

	// Cancelled: nothing deleted.
	h.doc.Click(del)
	assert.Contains(t, h.el(t, notify.ConfirmMessageID).TextContent(), `"About"`)
	h.doc.Click(h.el(t, notify.ConfirmCancelID))
	_, ok := h.backend.Page("about")
	assert.True(t, ok)

	h.doc.Click(del)
	h.doc.Click(h.el(t, notify.ConfirmButtonID))
	_, ok = h.backend.Page("about")
	assert.False(t, ok)
	assert.Equal(t, "Page deleted successfully", h.flash.Message())
	assert.Len(t, h.doc.QuerySelectorAll("."+component.DeleteButtonClass), 2, "table refetched and re-rendered")

	// Rewired after re-render.
	h.doc.Click(h.doc.Query(`.delete-page-btn[data-slug="first"]`))
	h.doc.Click(h.el(t, notify.ConfirmButtonID))
	assert.Len(t, h.doc.QuerySelectorAll("."+component.DeleteButtonClass), 1)
}

func TestManagePages_DeleteFailure(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	seedPosts(h.backend)
	h.backend.Fail(http.MethodDelete, "/api/pages/about", http.StatusInternalServerError, "locked")

	h.show(t, "manage", component.NewManagePages(h.deps), "")
	h.doc.Click(h.doc.Query(`.delete-page-btn[data-slug="about"]`))
	h.doc.Click(h.el(t, notify.ConfirmButtonID))

	require.Len(t, h.reported, 1)
	assert.Equal(t, "locked", h.reported[0].Err.Error())
	assert.Len(t, h.doc.QuerySelectorAll("."+component.DeleteButtonClass), 3)
}

func TestHeader(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	header := component.NewHeader(h.deps)
	b := component.Bind("header", header)
	ctx := context.Background()

	mount := func() {
		require.NoError(t, dom.Mount(ctx, h.doc, dom.RegionHeader, b.Render()))
		b.PostRender(ctx)
	}

	mount()
	region := h.doc.Region(dom.RegionHeader)
	assert.Contains(t, region, `href="/login"`)
	assert.NotContains(t, region, component.LogoutButtonID)

	component.ApplyTheme(h.doc, "")
	theme, _ := h.doc.Root().Attr("data-theme")
	assert.Equal(t, component.ThemeLight, theme)
	h.doc.Click(h.el(t, component.ThemeToggleID))
	theme, _ = h.doc.Root().Attr("data-theme")
	assert.Equal(t, component.ThemeDark, theme)
	stored, _ := h.doc.LocalStorage().Get(component.ThemeKey)
	assert.Equal(t, component.ThemeDark, stored)

	h.login(t)
	b.SetAuthenticated(true)
	mount()
	region = h.doc.Region(dom.RegionHeader)
	assert.Contains(t, region, `href="/manage"`)
	assert.NotContains(t, region, `href="/login"`)

	assert.False(t, h.doc.Click(h.el(t, component.LogoutButtonID)))
	assert.Equal(t, "Logged out successfully", h.flash.Message())
	assert.Equal(t, "/", h.nav.last())
	assert.False(t, h.client.CheckAuth(ctx).Authenticated)
}

func TestApplyTheme(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	assert.Equal(t, component.ThemeDark, component.ApplyTheme(h.doc, component.ThemeDark))

	h.doc.LocalStorage().Set(component.ThemeKey, component.ThemeLight)
	assert.Equal(t, component.ThemeLight, component.ApplyTheme(h.doc, component.ThemeDark))

	h.doc.LocalStorage().Set(component.ThemeKey, "neon")
	assert.Equal(t, component.ThemeLight, component.ApplyTheme(h.doc, ""))
}
