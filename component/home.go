package component

import (
	"context"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// Home page limits.
const (
	FeaturedLimit = 3
	RecentLimit   = 5
)

// Home shows the introduction with featured and recent posts. Failed
// fetches leave the corresponding section empty.
type Home struct {
	deps Deps

	authed   bool
	intro    string
	featured []api.Page
	recent   []api.Page
}

// NewHome creates the home page.
func NewHome(deps Deps) *Home {
	return &Home{deps: deps}
}

// SetAuthenticated shows or hides the edit-intro link.
func (h *Home) SetAuthenticated(authenticated bool) { h.authed = authenticated }

// FetchData loads the introduction and the post lists. Each part degrades to empty on failure.
func (h *Home) FetchData(ctx context.Context, _ string) error {
	log := h.deps.logger().With(logger.Component("home"))

	content, err := h.deps.API.GetSiteContent(ctx)
	if err != nil {
		log.WarnContext(ctx, "site content unavailable", logger.Error(err))
	}
	h.intro = content.Introduction

	h.featured, err = h.deps.API.GetBlogPosts(ctx, api.PostsQuery{Featured: true, Limit: FeaturedLimit})
	if err != nil {
		log.WarnContext(ctx, "featured posts unavailable", logger.Error(err))
		h.featured = nil
	}

	h.recent, err = h.deps.API.GetBlogPosts(ctx, api.PostsQuery{Limit: RecentLimit})
	if err != nil {
		log.WarnContext(ctx, "recent posts unavailable", logger.Error(err))
		h.recent = nil
	}
	return nil
}

// Render returns the introduction, featured posts and recent posts.
func (h *Home) Render() templ.Component {
	return view(func(m *markup) {
		m.raw(`<div class="home">`, `<section class="intro">`, h.intro, `</section>`)
		if h.authed {
			m.raw(`<p><a href="/edit-intro" class="edit-intro-link">Edit Introduction</a></p>`)
		}
		if len(h.featured) > 0 {
			m.raw(`<section class="featured-posts"><h2>Featured Posts</h2>`)
			m.child(postList(h.featured, ""))
			m.raw(`</section>`)
		}
		m.raw(`<section class="recent-posts"><h2>Recent Posts</h2>`)
		m.child(postList(h.recent, "No posts yet."))
		m.raw(`<p><a href="/blog" class="all-posts-link">All posts</a></p></section></div>`)
	})
}
