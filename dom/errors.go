package dom

import "errors"

var (
	// ErrRegionNotFound is returned by Mount when the target container is missing.
	ErrRegionNotFound = errors.New("dom: region not found")

	// ErrNoFileSelected is returned by PickFile when the user dismisses the picker.
	ErrNoFileSelected = errors.New("dom: no file selected")
)
