// Package component holds the views of the application.
//
// A component is any value with a Render method returning a templ.Component.
// It may also fetch data before rendering, wire event listeners after its
// markup is mounted, and react to authentication changes. Bind resolves
// these optional capabilities once:
//
//	b := component.Bind("blog-post", component.NewBlogPost(deps))
//	if err := b.Fetch(ctx, slug); err != nil { ... }
//	dom.Mount(ctx, doc, dom.RegionContent, b.Render())
//	b.PostRender(ctx)
//
// Render is pure: it only reads the state left by FetchData and produces
// markup. Anything touching the document happens in PostRender.
package component
