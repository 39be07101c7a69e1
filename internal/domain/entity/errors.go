package entity

import "net/http"

// Error is a domain failure carrying the HTTP status hint the transport
// adapter maps it to. Use cases raise these; only the transport layer
// inspects them.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status code hint for this failure.
func (e *Error) Status() int { return e.Code }

var (
	ErrUserNotFound       = &Error{Code: http.StatusNotFound, Message: "user not found"}
	ErrInvalidCredentials = &Error{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	ErrUserDisabled       = &Error{Code: http.StatusForbidden, Message: "account is disabled"}
	ErrEmailNotValidated  = &Error{Code: http.StatusForbidden, Message: "e-mail not validated"}
	ErrEmailAlreadyInUse  = &Error{Code: http.StatusConflict, Message: "email already in use"}
)

// NewValidationError wraps a field-level failure raised by entity setters or
// use-case input checks. Always user-input-caused, always a 400.
func NewValidationError(msg string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: msg}
}
