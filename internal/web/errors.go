// internal/web/errors.go
//
// Error taxonomy for the API surface.
//
// Context
// -------
// Handlers and middleware return *Error values for anything a client may
// see.  The dispatch layer maps them to status codes and a stable JSON
// envelope; everything else (database faults, transport problems) is
// logged and collapsed to a generic 500 so internals never leak.
package web

import (
	"errors"
	"net/http"
	"strings"
)

// Error is a client-visible failure.  Status selects the HTTP code; Code
// is a stable machine-readable tag; Message is safe to show to users.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

// envelope is the wire shape of every error response.
type envelope struct {
	Error *Error `json:"error"`
}

// BadRequest tags malformed input (invalid JSON, failed validation).
func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "bad_request", Message: msg}
}

// Unauthorized deliberately carries one fixed message for every auth
// failure so callers cannot distinguish unknown accounts from wrong
// passwords.
func Unauthorized() *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "invalid_credentials", Message: "invalid credentials"}
}

// NotFound covers unknown routes and missing resources.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Message: msg}
}

// MethodNotAllowed carries the Allow list for the matched path.
func MethodNotAllowed(allow []string) *Error {
	return &Error{
		Status:  http.StatusMethodNotAllowed,
		Code:    "method_not_allowed",
		Message: "method not allowed; allowed: " + strings.Join(allow, ", "),
	}
}

// Internal is the generic 500; details stay in the log.
func Internal() *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "internal", Message: "internal error"}
}

// WriteError stages err onto res.  *Error values keep their status and
// message; anything else becomes Internal().
func WriteError(res *Response, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Internal()
	}
	res.SetStatus(apiErr.Status)
	res.SetBody(envelope{Error: apiErr})
}
