package dom

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// RenderString renders a component to markup.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Mount renders c and replaces the contents of the element with id region.
func Mount(ctx context.Context, doc Document, region string, c templ.Component) error {
	el := doc.ElementByID(region)
	if el == nil {
		return fmt.Errorf("%w: #%s", ErrRegionNotFound, region)
	}
	markup, err := RenderString(ctx, c)
	if err != nil {
		return fmt.Errorf("render into #%s: %w", region, err)
	}
	el.SetInnerHTML(markup)
	return nil
}
