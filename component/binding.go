package component

// Surface is a rich-text editing region.
type Surface interface {
	InnerHTML() string
	SetInnerHTML(markup string)
}

// Field is the serializable form control mirroring a Surface.
type Field interface {
	Value() string
	SetValue(value string)
}

// Binding keeps a rich-text surface and its form field in step. Only the
// field value is ever submitted.
type Binding struct {
	Surface Surface
	Field   Field
}

// Sync copies the surface markup into the field and returns it.
func (b Binding) Sync() string {
	if b.Surface == nil || b.Field == nil {
		return ""
	}
	v := b.Surface.InnerHTML()
	b.Field.SetValue(v)
	return v
}

// Load copies the field value into the surface.
func (b Binding) Load() {
	if b.Surface == nil || b.Field == nil {
		return
	}
	b.Surface.SetInnerHTML(b.Field.Value())
}

// Value is the markup that would be submitted.
func (b Binding) Value() string {
	if b.Field == nil {
		return ""
	}
	return b.Field.Value()
}
