package component

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/neuralwired/api"
)

// BlogIndex lists every blog post.
type BlogIndex struct {
	deps  Deps
	posts []api.Page
}

// NewBlogIndex creates the blog index.
func NewBlogIndex(deps Deps) *BlogIndex {
	return &BlogIndex{deps: deps}
}

// FetchData loads all blog posts.
func (b *BlogIndex) FetchData(ctx context.Context, _ string) error {
	posts, err := b.deps.API.GetBlogPosts(ctx, api.PostsQuery{})
	if err != nil {
		return err
	}
	b.posts = posts
	return nil
}

// Render lists the posts in the order the backend returns them.
func (b *BlogIndex) Render() templ.Component {
	return view(func(m *markup) {
		m.raw(`<div class="blog-index"><h1>Blog</h1>`)
		m.child(postList(b.posts, "No posts yet."))
		m.raw(`</div>`)
	})
}

// BlogPost shows a single post. Any existing page is shown, blog post or
// not, so old /blog links keep working when a post is turned into a page.
type BlogPost struct {
	deps   Deps
	authed bool
	post   *api.Page
}

// NewBlogPost creates the post view.
func NewBlogPost(deps Deps) *BlogPost {
	return &BlogPost{deps: deps}
}

// SetAuthenticated shows or hides the edit link.
func (b *BlogPost) SetAuthenticated(authenticated bool) { b.authed = authenticated }

// FetchData loads the page stored under slug. A 404 is not an error.
func (b *BlogPost) FetchData(ctx context.Context, slug string) error {
	b.post = nil
	p, err := b.deps.API.GetPageBySlug(ctx, slug)
	switch {
	case api.IsStatus(err, http.StatusNotFound):
		return nil
	case err != nil:
		return err
	}
	b.post = &p
	return nil
}

// Found reports whether the last fetch returned a page.
func (b *BlogPost) Found() bool { return b.post != nil }

// Render returns the post, or the not-found view.
func (b *BlogPost) Render() templ.Component {
	if b.post == nil {
		return NewNotFound().Render()
	}
	p := *b.post
	return view(func(m *markup) {
		m.raw(`<article class="blog-post"><header class="post-header"><h1>`)
		m.text(p.Title)
		m.raw(`</h1><p class="post-date">Published `)
		m.text(displayDate(p.PublishedDate))
		m.raw(`</p>`)
		if b.authed {
			m.child(editLink(p.Slug))
		}
		m.raw(`</header><div class="post-content">`, p.Content, `</div>`,
			`<p><a href="" class="back-link">&larr; Back</a></p></article>`)
	})
}
