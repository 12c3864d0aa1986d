package app

import "errors"

var (
	// ErrInitFailed is returned by Init after the fatal page was mounted.
	ErrInitFailed = errors.New("app: initialization failed")
	// ErrAlreadyInitialized is returned when Init runs twice.
	ErrAlreadyInitialized = errors.New("app: already initialized")
)
