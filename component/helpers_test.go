package component_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/component"
	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/errhandler"
	"github.com/dmitrymomot/neuralwired/internal/backendtest"
	"github.com/dmitrymomot/neuralwired/internal/headless"
	"github.com/dmitrymomot/neuralwired/notify"
)

type navigator struct{ paths []string }

func (n *navigator) Navigate(url string) { n.paths = append(n.paths, url) }

func (n *navigator) last() string {
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

type harness struct {
	doc      *headless.Document
	backend  *backendtest.Backend
	client   *api.Client
	nav      *navigator
	flash    *notify.Flash
	confirm  *notify.Confirm
	deps     component.Deps
	reported []errhandler.Report
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		doc:     headless.New(),
		backend: backendtest.New(t),
		nav:     &navigator{},
	}
	h.client = api.New(h.backend.URL())
	h.flash = notify.NewFlash(h.doc, notify.WithDuration(time.Minute))
	h.confirm = notify.NewConfirm(h.doc)

	errs := errhandler.New()
	errs.AddListener(func(r errhandler.Report) { h.reported = append(h.reported, r) })

	h.deps = component.Deps{
		Doc:     h.doc,
		API:     h.client,
		Router:  h.nav,
		Flash:   h.flash,
		Confirm: h.confirm,
		Errors:  errs,
	}
	return h
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	_, err := h.client.Login(context.Background(), backendtest.Username, backendtest.Password)
	require.NoError(t, err)
}

// show runs the full lifecycle of r in the content region.
func (h *harness) show(t *testing.T, name string, r component.Renderer, arg string) *component.Bound {
	t.Helper()
	ctx := context.Background()
	b := component.Bind(name, r)
	require.NoError(t, b.Fetch(ctx, arg))
	require.NoError(t, dom.Mount(ctx, h.doc, dom.RegionContent, b.Render()))
	b.PostRender(ctx)
	return b
}

func (h *harness) content() string {
	return h.doc.Region(dom.RegionContent)
}

func (h *harness) el(t *testing.T, id string) dom.Element {
	t.Helper()
	el := h.doc.ElementByID(id)
	require.NotNil(t, el, "#%s", id)
	return el
}
