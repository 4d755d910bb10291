// Package apperr defines the typed error values exchanged between the
// service layer and the HTTP boundary, together with the uniform JSON
// envelope every failure is rendered into. Business-rule errors
// (validation, not-found, bad credentials) are constructed explicitly
// with the constructors below; infrastructure failures are wrapped via
// Internal so the underlying cause is logged but never echoed to the
// client.
package apperr

import "net/http"

// Stable machine codes returned in the error envelope. Clients switch on
// these, never on the human message.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeAuthRequired    = "AUTH_REQUIRED"
	CodeAuthInvalid     = "AUTH_INVALID"
	CodeTokenExpired    = "TOKEN_EXPIRED"
	CodeRouteNotFound   = "ROUTE_NOT_FOUND"
	CodeRateLimited     = "RATE_LIMITED"
	CodeRequestTimeout  = "REQUEST_TIMEOUT"
	CodeInternal        = "INTERNAL_ERROR"
	CodeProductNotFound = "PRODUCT_NOT_FOUND"
)

// Error is the typed failure carried up from services and middleware to
// the central HTTP error handler. Err holds the underlying cause for
// server-side logs only; it is never serialized.
type Error struct {
	Status  int      // HTTP status code
	Code    string   // stable machine code
	Message string   // human-readable message, returned verbatim
	Details []string // optional per-field messages (validation)
	Err     error    // wrapped cause, logged server-side only
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with an explicit status and code.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// Validation builds the 400 aggregate carrying every rule violation
// collected for the request.
func Validation(details []string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: "validation failed",
		Details: details,
	}
}

// Unauthorized builds a 401 with a caller-chosen code so expired and
// malformed tokens stay distinguishable.
func Unauthorized(code, message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: code, Message: message}
}

// NotFound builds a 404 with a resource-specific code.
func NotFound(code, message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: code, Message: message}
}

// Conflict builds a 409 for uniqueness violations.
func Conflict(code, message string) *Error {
	return &Error{Status: http.StatusConflict, Code: code, Message: message}
}

// Internal wraps an infrastructure failure under a stable code. The
// generic message is what the client sees; cause stays in the logs.
func Internal(code, message string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: code, Message: message, Err: cause}
}
