// Package dom is the platform boundary of the client runtime.
//
// Components never touch a browser directly. They produce templ components
// (pure markup) and, after mounting, attach behaviour through the Document
// and Element interfaces defined here. Two implementations exist: the
// headless document in internal/headless, used by tests and the CLI, and the
// syscall/js binding in package browser for GOOS=js builds.
//
// Mount renders a component and splices it into a region:
//
//	if err := dom.Mount(ctx, doc, dom.RegionContent, view); err != nil {
//	    return err
//	}
//
// Event listeners receive *Event values. Calling PreventDefault on a click
// tells outer listeners (such as the router's link interception) that the
// click has been handled.
package dom
