package component

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// DeleteButtonClass marks the per-row delete buttons.
const DeleteButtonClass = "delete-page-btn"

// ManagePages is the admin table of all pages.
type ManagePages struct {
	deps  Deps
	pages []api.Page
}

// NewManagePages creates the admin table.
func NewManagePages(deps Deps) *ManagePages {
	return &ManagePages{deps: deps}
}

// FetchData loads every page.
func (mp *ManagePages) FetchData(ctx context.Context, _ string) error {
	pages, err := mp.deps.API.GetAllPages(ctx)
	if err != nil {
		return err
	}
	mp.pages = pages
	return nil
}

// Render returns the pages table.
func (mp *ManagePages) Render() templ.Component {
	pages := mp.pages
	return view(func(m *markup) {
		m.raw(`<div class="manage-pages"><div class="manage-header"><h1>Manage Pages</h1>`,
			`<div class="manage-actions"><a href="/edit-intro" class="btn btn-secondary">Edit Introduction</a>`,
			`<a href="/new" class="btn btn-primary">New Page</a></div></div>`)
		if len(pages) == 0 {
			m.raw(`<p class="empty">No pages yet.</p></div>`)
			return
		}
		m.raw(`<table class="pages-table"><thead><tr>`,
			`<th>Title</th><th>Slug</th><th>Type</th><th>Updated</th><th>Actions</th>`,
			`</tr></thead><tbody>`)
		for _, p := range pages {
			kind := "Page"
			if p.IsBlog {
				kind = "Blog Post"
				if p.Featured {
					kind = "Blog Post (featured)"
				}
			}
			m.raw(`<tr><td>`)
			m.text(p.Title)
			m.raw(`</td><td>`)
			m.text(p.Slug)
			m.raw(`</td><td>`, kind, `</td><td>`)
			m.text(displayDate(p.UpdatedAt))
			m.raw(`</td><td class="actions">`,
				`<a href="/edit/`, esc(p.Slug), `" class="btn btn-small">Edit</a>`,
				`<button type="button" class="btn btn-small btn-danger `+DeleteButtonClass+`" data-slug="`, esc(p.Slug), `">Delete</button>`,
				`</td></tr>`)
		}
		m.raw(`</tbody></table></div>`)
	})
}

// PostRender wires the delete buttons to the confirm dialog.
func (mp *ManagePages) PostRender(ctx context.Context) {
	ctx = detach(ctx)
	for _, btn := range mp.deps.Doc.QuerySelectorAll("." + DeleteButtonClass) {
		slug, _ := btn.Attr("data-slug")
		btn.AddEventListener(dom.EventClick, func(*dom.Event) {
			mp.confirmDelete(ctx, slug)
		})
	}
}

func (mp *ManagePages) title(slug string) string {
	for _, p := range mp.pages {
		if p.Slug == slug {
			return p.Title
		}
	}
	return slug
}

func (mp *ManagePages) confirmDelete(ctx context.Context, slug string) {
	msg := fmt.Sprintf("Are you sure you want to delete %q? This cannot be undone.", mp.title(slug))
	mp.deps.Confirm.Show(msg, func() { mp.delete(ctx, slug) }, nil)
}

func (mp *ManagePages) delete(ctx context.Context, slug string) {
	log := mp.deps.logger().With(logger.Component("manage"), logger.Slug(slug))
	if _, err := mp.deps.API.DeletePage(ctx, slug); err != nil {
		log.WarnContext(ctx, "delete failed", logger.Error(err))
		mp.deps.report(err, "delete-page")
		return
	}
	mp.deps.Flash.Success("Page deleted successfully")

	if len(mp.deps.Doc.QuerySelectorAll(".manage-pages")) == 0 {
		return
	}
	if err := mp.FetchData(ctx, ""); err != nil {
		mp.deps.report(err, "manage-pages")
		return
	}
	mp.deps.remount(ctx, mp)
}
