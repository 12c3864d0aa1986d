package component

import "github.com/a-h/templ"

// Element ids and classes of the editor forms.
const (
	IntroFormID     = "intro-editor-form"
	IntroEditorID   = "intro-content-editor"
	IntroTextareaID = "intro-content-textarea"

	PageFormID      = "page-editor-form"
	TitleInputID    = "title-input"
	SlugInputID     = "slug-input"
	IsBlogID        = "is_blog"
	FeaturedID      = "featured"
	ExcerptEditorID = "excerpt-editor"
	ExcerptFieldID  = "excerpt"
	ContentEditorID = "content-editor"
	ContentFieldID  = "content-textarea"
	CancelButtonID  = "cancel-btn"

	BlogOptionClass = "blog-option"
	ToolbarBtnClass = "toolbar-btn"
	ToolbarSelClass = "toolbar-select"
)

type tool struct {
	command string
	value   string
	title   string
	label   string
}

var (
	inlineTools = []tool{
		{"bold", "", "Bold", "<b>B</b>"},
		{"italic", "", "Italic", "<i>I</i>"},
		{"underline", "", "Underline", "<u>U</u>"},
		{"justifyLeft", "", "Align left", "Left"},
		{"justifyCenter", "", "Align center", "Center"},
		{"justifyRight", "", "Align right", "Right"},
		{"createLink", "", "Insert link", "Link"},
	}
	imageTool = tool{"insertImage", "", "Insert image", "Image"}
	listTools = []tool{
		{"insertUnorderedList", "", "Bulleted list", "&bull; List"},
		{"insertOrderedList", "", "Numbered list", "1. List"},
	}
	blockTools = []tool{
		{"formatBlock", "H1", "Heading 1", "H1"},
		{"formatBlock", "H2", "Heading 2", "H2"},
		{"formatBlock", "blockquote", "Quote", "Quote"},
	}
	fontSizes = [][2]string{{"1", "Small"}, {"3", "Normal"}, {"5", "Large"}, {"7", "Huge"}}
)

func toolButton(m *markup, t tool) {
	m.raw(`<button type="button" class="`+ToolbarBtnClass+`" data-command="`, t.command, `"`)
	if t.value != "" {
		m.raw(` data-value="`, esc(t.value), `"`)
	}
	m.raw(` title="`, t.title, `">`, t.label, `</button>`)
}

// toolbar renders the formatting controls for the editor with id target.
// Full toolbars add image insertion and block formats.
func toolbar(target string, full bool) templ.Component {
	return view(func(m *markup) {
		m.raw(`<div class="editor-toolbar" data-target="`, target, `">`)
		for _, t := range inlineTools {
			toolButton(m, t)
		}
		if full {
			toolButton(m, imageTool)
		}
		m.raw(`<select class="`+ToolbarSelClass+`" data-command="fontSize" title="Font size">`,
			`<option value="">Size</option>`)
		for _, fs := range fontSizes {
			m.raw(`<option value="`, fs[0], `">`, fs[1], `</option>`)
		}
		m.raw(`</select>`)
		for _, t := range listTools {
			toolButton(m, t)
		}
		if full {
			for _, t := range blockTools {
				toolButton(m, t)
			}
		}
		m.raw(`</div>`)
	})
}

func introForm(d *Draft) templ.Component {
	return view(func(m *markup) {
		m.raw(`<div class="editor-container"><h1>Edit Introduction</h1>`,
			`<form id="`+IntroFormID+`" class="editor-form">`,
			`<div class="form-group"><label for="`+IntroEditorID+`">Introduction</label>`)
		m.child(toolbar(IntroEditorID, false))
		m.raw(`<div id="`+IntroEditorID+`" class="rich-editor" contenteditable="true">`, d.Content, `</div>`,
			`<textarea id="`+IntroTextareaID+`" name="content" style="display: none;">`)
		m.text(d.Content)
		m.raw(`</textarea></div>`,
			`<div class="form-actions">`,
			`<button type="submit" class="btn btn-primary">Save</button>`,
			`<button type="button" id="`+CancelButtonID+`" class="btn btn-secondary">Cancel</button>`,
			`</div></form></div>`)
	})
}

func pageForm(d *Draft, create bool) templ.Component {
	heading, submit := "Edit Page", "Save"
	if create {
		heading, submit = "Create New Page", "Create"
	}
	return view(func(m *markup) {
		m.raw(`<div class="editor-container"><h1>`, heading, `</h1>`,
			`<form id="`+PageFormID+`" class="editor-form">`,
			`<div class="form-group"><label for="`+TitleInputID+`">Title</label>`,
			`<input type="text" id="`+TitleInputID+`" name="title" value="`, esc(d.Title), `" required></div>`)
		if create {
			m.raw(`<div class="form-group"><label for="`+SlugInputID+`">Slug</label>`,
				`<input type="text" id="`+SlugInputID+`" name="slug" value="`, esc(d.Slug), `" placeholder="generated from the title when empty"></div>`)
		}
		m.raw(`<div class="form-group form-check"><label>`,
			`<input type="checkbox" id="`+IsBlogID+`" name="is_blog"`, checked(d.IsBlog), `> Blog post</label></div>`,
			`<div class="form-group form-check `+BlogOptionClass+`"`, hiddenUnless(d.IsBlog), `><label>`,
			`<input type="checkbox" id="`+FeaturedID+`" name="featured"`, checked(d.Featured), `> Featured</label></div>`,
			`<div class="form-group `+BlogOptionClass+`"`, hiddenUnless(d.IsBlog), `>`,
			`<label for="`+ExcerptEditorID+`">Excerpt</label>`,
			`<div id="`+ExcerptEditorID+`" class="rich-editor excerpt-editor" contenteditable="true">`, d.Excerpt, `</div>`,
			`<textarea id="`+ExcerptFieldID+`" name="excerpt" style="display: none;">`)
		m.text(d.Excerpt)
		m.raw(`</textarea></div>`,
			`<div class="form-group"><label for="`+ContentEditorID+`">Content</label>`)
		m.child(toolbar(ContentEditorID, true))
		m.raw(`<div id="`+ContentEditorID+`" class="rich-editor" contenteditable="true">`, d.Content, `</div>`,
			`<textarea id="`+ContentFieldID+`" name="content" style="display: none;">`)
		m.text(d.Content)
		m.raw(`</textarea></div>`,
			`<div class="form-actions">`,
			`<button type="submit" class="btn btn-primary">`, submit, `</button>`,
			`<button type="button" id="`+CancelButtonID+`" class="btn btn-secondary">Cancel</button>`,
			`</div></form></div>`)
	})
}

func imagePlaceholder(id, name string) string {
	return `<span id="` + esc(id) + `" class="image-placeholder">Uploading ` + esc(name) + `...</span>`
}

func imageTag(url, name string) string {
	return `<img src="` + esc(url) + `" alt="` + esc(name) + `" style="max-width: 100%">`
}
