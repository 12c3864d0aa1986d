package component

import (
	"context"
	"errors"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/dmitrymomot/neuralwired/api"
	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
	"github.com/dmitrymomot/neuralwired/pkg/sanitizer"
	"github.com/dmitrymomot/neuralwired/pkg/slug"
)

// IntroductionArg makes FetchData load the site introduction.
const IntroductionArg = "introduction"

// Mode selects what the editor works on.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
	ModeIntro
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	case ModeIntro:
		return "editIntro"
	}
	return "unknown"
}

// Draft is the working copy being edited.
type Draft struct {
	Title          string
	Slug           string
	Content        string
	Excerpt        string
	IsBlog         bool
	Featured       bool
	IsIntroduction bool
}

// Editor creates and edits pages and the site introduction.
type Editor struct {
	deps  Deps
	mode  Mode
	slug  string
	draft *Draft
}

// NewEditor creates an editor in create mode.
func NewEditor(deps Deps) *Editor {
	return &Editor{deps: deps}
}

// Mode returns the current mode.
func (e *Editor) Mode() Mode { return e.mode }

// Draft returns a copy of the working copy, or nil when none is loaded.
func (e *Editor) Draft() *Draft {
	if e.draft == nil {
		return nil
	}
	d := *e.draft
	return &d
}

// FetchData loads the working copy: the introduction for IntroductionArg,
// a blank page for "" and the page with slug arg otherwise. A page that
// cannot be loaded leaves no working copy.
func (e *Editor) FetchData(ctx context.Context, arg string) error {
	e.draft = nil
	e.slug = ""

	switch arg {
	case IntroductionArg:
		e.mode = ModeIntro
		content, err := e.deps.API.GetSiteContent(ctx)
		if err != nil {
			return err
		}
		e.draft = &Draft{Content: content.Introduction, IsIntroduction: true}
	case "":
		e.mode = ModeCreate
		e.draft = &Draft{}
	default:
		e.mode = ModeEdit
		e.slug = arg
		p, err := e.deps.API.GetPageBySlug(ctx, arg)
		if err != nil {
			e.deps.logger().WarnContext(ctx, "page not loaded", logger.Component("editor"), logger.Slug(arg), logger.Error(err))
			return nil
		}
		e.draft = &Draft{
			Title:    p.Title,
			Slug:     p.Slug,
			Content:  p.Content,
			Excerpt:  p.Excerpt,
			IsBlog:   p.IsBlog,
			Featured: p.Featured,
		}
	}
	return nil
}

// Render returns the form for the current mode.
func (e *Editor) Render() templ.Component {
	switch {
	case e.draft == nil:
		return Loading()
	case e.mode == ModeIntro:
		return introForm(e.draft)
	default:
		return pageForm(e.draft, e.mode == ModeCreate)
	}
}

// PostRender binds the editable surfaces, the toolbar and the form buttons.
func (e *Editor) PostRender(ctx context.Context) {
	if e.draft == nil {
		return
	}
	ctx = detach(ctx)
	doc := e.deps.Doc

	formID := PageFormID
	if e.mode == ModeIntro {
		formID = IntroFormID
	}
	if form := doc.ElementByID(formID); form != nil {
		form.AddEventListener(dom.EventSubmit, func(ev *dom.Event) {
			ev.PreventDefault()
			e.submit(ctx)
		})
	}
	if btn := doc.ElementByID(CancelButtonID); btn != nil {
		btn.AddEventListener(dom.EventClick, func(*dom.Event) {
			e.deps.Router.Navigate(e.exitPath())
		})
	}
	if cb := doc.ElementByID(IsBlogID); cb != nil {
		cb.AddEventListener(dom.EventChange, func(ev *dom.Event) {
			e.setBlogOptions(ev.Target.Checked())
		})
	}
	e.wireToolbars(ctx)
}

func (e *Editor) exitPath() string {
	if e.mode == ModeIntro {
		return "/"
	}
	return "/manage"
}

// setBlogOptions shows or hides the fields that only apply to blog posts.
func (e *Editor) setBlogOptions(show bool) {
	display := "none"
	if show {
		display = "block"
	}
	for _, el := range e.deps.Doc.QuerySelectorAll("." + BlogOptionClass) {
		el.SetDisplay(display)
	}
	if e.draft != nil {
		e.draft.IsBlog = show
	}
}

func (e *Editor) wireToolbars(ctx context.Context) {
	doc := e.deps.Doc
	for _, bar := range doc.QuerySelectorAll(".editor-toolbar") {
		targetID, _ := bar.Attr("data-target")
		prefix := `.editor-toolbar[data-target="` + targetID + `"] `

		for _, btn := range doc.QuerySelectorAll(prefix + "." + ToolbarBtnClass) {
			cmd, _ := btn.Attr("data-command")
			value, _ := btn.Attr("data-value")
			btn.AddEventListener(dom.EventClick, func(ev *dom.Event) {
				ev.PreventDefault()
				e.command(ctx, targetID, cmd, value)
			})
		}
		for _, sel := range doc.QuerySelectorAll(prefix + "." + ToolbarSelClass) {
			cmd, _ := sel.Attr("data-command")
			sel.AddEventListener(dom.EventChange, func(ev *dom.Event) {
				value := ev.Target.Value()
				if value == "" {
					return
				}
				e.command(ctx, targetID, cmd, value)
				ev.Target.SetValue("")
			})
		}
	}
}

func (e *Editor) command(ctx context.Context, targetID, cmd, value string) {
	doc := e.deps.Doc
	target := doc.ElementByID(targetID)
	if target == nil {
		return
	}
	target.Focus()

	switch cmd {
	case "createLink":
		url, ok := doc.Prompt("Enter the URL:", "https://")
		if !ok || strings.TrimSpace(url) == "" {
			return
		}
		doc.ExecCommand(cmd, url)
	case "insertImage":
		e.insertImage(ctx, target)
	default:
		doc.ExecCommand(cmd, value)
	}
}

// insertImage uploads a picked file, showing a placeholder at the cursor
// until the upload finishes.
func (e *Editor) insertImage(ctx context.Context, target dom.Element) {
	doc := e.deps.Doc
	log := e.deps.logger().With(logger.Component("editor"))

	f, err := doc.PickFile(ctx, "image/*")
	if err != nil {
		if !errors.Is(err, dom.ErrNoFileSelected) {
			log.WarnContext(ctx, "file picker failed", logger.Error(err))
		}
		return
	}

	id := "upload-" + uuid.NewString()
	doc.InsertAtCursor(target, imagePlaceholder(id, f.Name))

	url, err := e.deps.API.UploadImage(ctx, f.Name, f.Body)
	placeholder := doc.ElementByID(id)
	if err != nil {
		log.WarnContext(ctx, "image upload failed", logger.Error(err))
		if placeholder != nil {
			placeholder.Remove()
		}
		e.deps.report(err, "image-upload")
		return
	}
	if placeholder != nil {
		placeholder.ReplaceWith(imageTag(url, f.Name))
	}
}

func (e *Editor) binding(surfaceID, fieldID string) Binding {
	var b Binding
	if el := e.deps.Doc.ElementByID(surfaceID); el != nil {
		b.Surface = el
	}
	if el := e.deps.Doc.ElementByID(fieldID); el != nil {
		b.Field = el
	}
	return b
}

func (e *Editor) submit(ctx context.Context) {
	if e.mode == ModeIntro {
		e.submitIntro(ctx)
		return
	}

	in := e.readForm()

	var err error
	msg := "Page updated successfully"
	if e.mode == ModeCreate {
		msg = "Page created successfully"
		_, err = e.deps.API.CreatePage(ctx, in)
	} else {
		_, err = e.deps.API.UpdatePage(ctx, e.slug, in)
	}
	if err != nil {
		e.fail(ctx, err)
		return
	}
	e.deps.Flash.Success(msg)
	e.deps.Router.Navigate("/manage")
}

// readForm syncs the rich-text surfaces, stores the form state in the draft
// and builds the request body.
func (e *Editor) readForm() api.PageInput {
	doc := e.deps.Doc
	e.binding(ContentEditorID, ContentFieldID).Sync()
	e.binding(ExcerptEditorID, ExcerptFieldID).Sync()

	value := func(id string) string {
		if el := doc.ElementByID(id); el != nil {
			return el.Value()
		}
		return ""
	}
	isChecked := func(id string) bool {
		el := doc.ElementByID(id)
		return el != nil && el.Checked()
	}

	d := &Draft{
		Title:    value(TitleInputID),
		Slug:     strings.TrimSpace(value(SlugInputID)),
		Content:  value(ContentFieldID),
		Excerpt:  value(ExcerptFieldID),
		IsBlog:   isChecked(IsBlogID),
		Featured: isChecked(FeaturedID),
	}
	if e.mode == ModeEdit {
		d.Slug = e.slug
	}
	e.draft = d

	in := api.PageInput{
		Title:    d.Title,
		Content:  d.Content,
		IsBlog:   d.IsBlog,
		Featured: d.IsBlog && d.Featured,
	}
	if e.mode == ModeCreate {
		// The backend derives a slug from the title when none is sent.
		in.Slug = slug.Make(d.Slug, slug.KeepCase())
	}
	if d.IsBlog && !sanitizer.IsBlankMarkup(d.Excerpt) {
		in.Excerpt = d.Excerpt
	}
	return in
}

func (e *Editor) submitIntro(ctx context.Context) {
	b := e.binding(IntroEditorID, IntroTextareaID)
	b.Sync()
	content := b.Value()
	e.draft = &Draft{Content: content, IsIntroduction: true}

	if _, err := e.deps.API.UpdateIntroduction(ctx, content); err != nil {
		e.fail(ctx, err)
		return
	}
	e.deps.Flash.Success("Introduction updated successfully")
	e.deps.Router.Navigate("/")
}

// fail re-renders the form with the submitted values and reports err.
func (e *Editor) fail(ctx context.Context, err error) {
	e.deps.logger().WarnContext(ctx, "save failed",
		logger.Component("editor"), logger.State(e.mode.String()), logger.Error(err))
	e.deps.remount(ctx, e)
	e.deps.report(err, "editor")
}
