package apperror

import (
	"errors"
	"net/http"
	"strconv"
)

// Kind classifies an operational error
type Kind string

const (
	KindValidation      Kind = "validation"
	KindConflict        Kind = "conflict"
	KindAuthentication  Kind = "authentication"
	KindUnauthenticated Kind = "unauthenticated"
	KindAuthorization   Kind = "authorization"
	KindNotFound        Kind = "not_found"
	KindRateLimited     Kind = "rate_limited"
	KindUnexpected      Kind = "unexpected"
)

// GenericMessage is returned for every non-operational failure
const GenericMessage = "Something really went wrong"

// Error is an anticipated, user-facing failure. Message and Code are shown to the client as-is.
type Error struct {
	Kind    Kind
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status is "error" for 4xx codes and "fail" otherwise.
func (e *Error) Status() string {
	return StatusFor(e.Code)
}

// Operational reports whether the error may be shown to the client verbatim.
func (e *Error) Operational() bool {
	return e.Kind != KindUnexpected
}

func StatusFor(code int) string {
	if s := strconv.Itoa(code); len(s) > 0 && s[0] == '4' {
		return "error"
	}
	return "fail"
}

func New(kind Kind, code int, message string) *Error {
	return &Error{Kind: kind, Message: message, Code: code}
}

func Validation(message string, code int) *Error {
	if code == 0 {
		code = http.StatusUnprocessableEntity
	}
	return New(KindValidation, code, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, http.StatusBadRequest, message)
}

func Authentication(message string) *Error {
	return New(KindAuthentication, http.StatusUnauthorized, message)
}

func Unauthenticated(message string) *Error {
	return New(KindUnauthenticated, http.StatusUnauthorized, message)
}

func Authorization(message string) *Error {
	return New(KindAuthorization, http.StatusBadRequest, message)
}

func NotFound(message string, code int) *Error {
	if code == 0 {
		code = http.StatusNotFound
	}
	return New(KindNotFound, code, message)
}

// Unexpected wraps an internal fault. Its message never reaches the client.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: GenericMessage, Code: http.StatusInternalServerError, Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == kind
}
