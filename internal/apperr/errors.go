// Package apperr defines the typed errors returned by the game engine.
//
// Every failure carries a Kind (the coarse class a transport maps to a status
// code) and a Code (the specific condition). Callers branch on Kind with
// KindOf and on the precise condition with errors.Is against the sentinels in
// codes.go.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the failure class of an Error.
type Kind string

const (
	KindNotFound         Kind = "NotFound"
	KindInvalidState     Kind = "InvalidState"
	KindUnauthenticated  Kind = "Unauthenticated"
	KindForbidden        Kind = "Forbidden"
	KindValidationFailed Kind = "ValidationFailed"
	KindConflict         Kind = "Conflict"
	KindUnexpected       Kind = "Unexpected"
)

// HTTPStatus maps the kind to the status code the REST layer answers with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState, KindValidationFailed:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified engine error.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates an error of the given kind and code.
func New(kind Kind, code Code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap creates an error that keeps cause in the chain.
func Wrap(kind Kind, code Code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Cause: cause}
}

// WithCause returns a copy of e that keeps cause in the chain.
func (e *Error) WithCause(cause error) *Error {
	return Wrap(e.Kind, e.Code, e.Message, cause)
}

// Unexpected classifies an otherwise unknown failure.
func Unexpected(message string, cause error) *Error {
	return Wrap(KindUnexpected, CodeInternal, message, cause)
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports the kind of err. Errors that were never classified are
// KindUnexpected; nil has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindUnexpected
}

// CodeOf reports the code of err, CodeInternal for unclassified errors.
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return CodeInternal
}
