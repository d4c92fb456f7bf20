// Package apperror defines the typed error carried from business logic to
// the HTTP layer. Every domain failure maps to one of these; anything else
// is treated as an unexpected server error.
package apperror

import "net/http"

// Error is a domain failure with an HTTP status and a user-facing message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with the given status and message.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// BadRequest is a 400 failure.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized is a 401 failure.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// NotFound is a 404 failure.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}
