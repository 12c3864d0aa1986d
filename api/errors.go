package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport wraps failures to reach the backend at all.
	ErrTransport = errors.New("api: transport failure")
	// ErrInvalidResponse is returned when a 2xx body is not valid JSON.
	ErrInvalidResponse = errors.New("api: invalid response body")
	// ErrEmptyFile is returned by UploadImage for a file without a name.
	ErrEmptyFile = errors.New("api: no file provided")
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
}

// Error returns the backend message.
func (e *Error) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status of the response.
func (e *Error) StatusCode() int {
	return e.Status
}

func statusError(status int, message, fallback string) *Error {
	if message == "" {
		message = fallback
		if message == "" {
			message = fmt.Sprintf("API request failed with status: %d", status)
		}
	}
	return &Error{Status: status, Message: message}
}

// IsStatus reports whether err is an *Error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
