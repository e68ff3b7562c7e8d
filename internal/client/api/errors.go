package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// ConflictError is an HTTP 409 rejection for uniqueness-constrained fields.
// Message is the backend's text, extracted from either a plain-string body
// or an {"error": ...} / {"message": ...} object. Match with errors.As.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

// StatusError is any other non-2xx response. Message carries whatever text
// could be extracted from the body; it may be empty.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Message)
}
