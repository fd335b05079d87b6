package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the backend. Message holds the
// server-provided message when the body carried one, otherwise it is
// empty and callers fall back to a generic string.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// UserMessage returns the text suitable for showing to the user:
// the server's message verbatim when present, else a generic fallback.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Status {
	case http.StatusUnauthorized:
		return "Please log in to continue"
	case http.StatusNotFound:
		return "Not found"
	default:
		return "Something went wrong, please try again"
	}
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
