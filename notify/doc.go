// Package notify provides the transient UI primitives of the application:
// auto-dismissing flash messages and a modal confirm dialog.
//
// Both create their markup lazily, appended to the document body, so they
// survive remounts of the shell regions.
//
//	flash := notify.NewFlash(doc, notify.WithDuration(3*time.Second))
//	flash.Success("Page created successfully")
//
//	confirm := notify.NewConfirm(doc)
//	confirm.Show("Delete this page?", func() { ... }, nil)
package notify
