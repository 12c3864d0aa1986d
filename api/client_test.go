package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/internal/backendtest"
)

func newClient(t *testing.T) (*api.Client, *backendtest.Backend) {
	t.Helper()
	b := backendtest.New(t)
	return api.New(b.URL()), b
}

func TestRequest_NoContent(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ping", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	raw, err := api.New(srv.URL).Request(context.Background(), http.MethodPost, "/ping", map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestRequest_ErrorBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad"}`))
	}))
	defer srv.Close()

	_, err := api.New(srv.URL).Request(context.Background(), http.MethodGet, "/x", nil)
	require.Error(t, err)
	assert.Equal(t, "bad", err.Error())

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode())
	assert.True(t, api.IsStatus(err, http.StatusBadRequest))
}

func TestRequest_FallbackMessage(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := api.New(srv.URL).Request(context.Background(), http.MethodGet, "/x", nil)
	require.Error(t, err)
	assert.Equal(t, "API request failed with status: 500", err.Error())
}

func TestRequest_InvalidJSON(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := api.New(srv.URL).Request(context.Background(), http.MethodGet, "/x", nil)
	assert.ErrorIs(t, err, api.ErrInvalidResponse)
}

func TestRequest_Transport(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := api.New(url).Request(context.Background(), http.MethodGet, "/x", nil)
	assert.ErrorIs(t, err, api.ErrTransport)
}

func TestRequest_CancelledContext(t *testing.T) {
	t.Parallel()
	c, b := newClient(t)
	b.Delay(http.MethodGet, "/api/pages", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := c.GetAllPages(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRequest_RequestID(t *testing.T) {
	t.Parallel()
	c, b := newClient(t)

	_, err := c.GetSiteContent(context.Background())
	require.NoError(t, err)
	_, err = c.GetSiteContent(context.Background())
	require.NoError(t, err)

	reqs := b.Requests()
	require.Len(t, reqs, 2)
	first := reqs[0].Header.Get(api.RequestIDHeader)
	_, err = uuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, reqs[1].Header.Get(api.RequestIDHeader))
}

func TestAuth_Events(t *testing.T) {
	t.Parallel()
	c, b := newClient(t)
	ctx := context.Background()

	var events []bool
	remove := c.OnAuthStateChanged(func(authed bool) { events = append(events, authed) })

	assert.False(t, c.CheckAuth(ctx).Authenticated)

	_, err := c.Login(ctx, "admin", "wrong")
	require.Error(t, err)
	assert.True(t, api.IsStatus(err, http.StatusUnauthorized))

	res, err := c.Login(ctx, backendtest.Username, backendtest.Password)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, c.CheckAuth(ctx).Authenticated)

	_, err = c.Logout(ctx)
	require.NoError(t, err)
	assert.False(t, c.CheckAuth(ctx).Authenticated)

	assert.Equal(t, []bool{false, true, true, false, false}, events)

	remove()
	b.Fail(http.MethodGet, "/api/check-auth", http.StatusInternalServerError, "down")
	assert.False(t, c.CheckAuth(ctx).Authenticated)
	assert.Len(t, events, 5)
}

func TestAuth_ListenerPanicDoesNotBreakLogin(t *testing.T) {
	t.Parallel()
	c, _ := newClient(t)

	got := false
	c.OnAuthStateChanged(func(bool) { panic("listener") })
	c.OnAuthStateChanged(func(authed bool) { got = authed })

	_, err := c.Login(context.Background(), backendtest.Username, backendtest.Password)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestPages_CRUD(t *testing.T) {
	t.Parallel()
	c, b := newClient(t)
	ctx := context.Background()

	_, err := c.CreatePage(ctx, api.PageInput{Title: "About"})
	require.Error(t, err)
	assert.Equal(t, "Authentication required", err.Error())

	_, err = c.Login(ctx, backendtest.Username, backendtest.Password)
	require.NoError(t, err)

	res, err := c.CreatePage(ctx, api.PageInput{Title: "About Me", Content: "<p>hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, "about-me", res.Slug)

	body := b.LastBody(http.MethodPost, "/api/pages")
	assert.NotContains(t, body, "slug")
	assert.NotContains(t, body, "excerpt")

	page, err := c.GetPageBySlug(ctx, "about-me")
	require.NoError(t, err)
	assert.Equal(t, "About Me", page.Title)
	assert.Equal(t, "<p>hi</p>", page.Content)

	_, err = c.UpdatePage(ctx, "about-me", api.PageInput{Title: "About", Content: "<p>new</p>", IsBlog: true, Excerpt: "short"})
	require.NoError(t, err)
	page, err = c.GetPageBySlug(ctx, "about-me")
	require.NoError(t, err)
	assert.True(t, page.IsBlog)
	assert.Equal(t, "short", page.Excerpt)

	pages, err := c.GetAllPages(ctx)
	require.NoError(t, err)
	assert.Len(t, pages, 1)

	_, err = c.DeletePage(ctx, "about-me")
	require.NoError(t, err)

	_, err = c.GetPageBySlug(ctx, "about-me")
	assert.True(t, api.IsStatus(err, http.StatusNotFound))
	assert.Equal(t, "Page not found", err.Error())
}

func TestBlogPosts_Query(t *testing.T) {
	t.Parallel()
	c, b := newClient(t)
	b.AddPage(backendtest.Page{Title: "A", Slug: "a", IsBlog: true, Featured: true, PublishedDate: "2024-01-01 10:00:00"})
	b.AddPage(backendtest.Page{Title: "B", Slug: "b", IsBlog: true, PublishedDate: "2024-02-01 10:00:00"})
	b.AddPage(backendtest.Page{Title: "C", Slug: "c", IsBlog: true, Featured: true, PublishedDate: "2024-03-01 10:00:00"})
	b.AddPage(backendtest.Page{Title: "Static", Slug: "static"})

	posts, err := c.GetBlogPosts(context.Background(), api.PostsQuery{})
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "c", posts[0].Slug)

	posts, err = c.GetBlogPosts(context.Background(), api.PostsQuery{Featured: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "c", posts[0].Slug)

	reqs := b.Requests()
	assert.Equal(t, "featured=true&limit=1", reqs[len(reqs)-1].Query)
}

func TestContent_Introduction(t *testing.T) {
	t.Parallel()
	c, b := newClient(t)
	ctx := context.Background()

	_, err := c.Login(ctx, backendtest.Username, backendtest.Password)
	require.NoError(t, err)
	_, err = c.UpdateIntroduction(ctx, "<p>Hello</p>")
	require.NoError(t, err)

	content, err := c.GetSiteContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello</p>", content.Introduction)
	assert.Equal(t, "<p>Hello</p>", b.Intro())
}

func TestUploadImage(t *testing.T) {
	t.Parallel()
	c, b := newClient(t)
	ctx := context.Background()

	_, err := c.UploadImage(ctx, "", strings.NewReader("x"))
	assert.ErrorIs(t, err, api.ErrEmptyFile)

	_, err = c.Login(ctx, backendtest.Username, backendtest.Password)
	require.NoError(t, err)

	u, err := c.UploadImage(ctx, "cat.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/cat.png", u)

	b.Fail(http.MethodPost, "/api/upload-image", http.StatusInternalServerError, "")
	_, err = c.UploadImage(ctx, "cat.png", strings.NewReader("png-bytes"))
	require.Error(t, err)
	assert.Equal(t, "Image upload failed", err.Error())
	assert.False(t, errors.Is(err, api.ErrTransport))
}
