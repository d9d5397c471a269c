// Package apperr holds the closed set of business error kinds shared by every
// bounded context. Each context declares its own Codes; the transport layer
// only ever looks at the Code carried by an *Error.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidState
	KindForbidden
	KindValidationFailed
	KindLimitExceeded
	KindExternalFailure
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "internal"
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindForbidden:
		return "forbidden"
	case KindValidationFailed:
		return "validation_failed"
	case KindLimitExceeded:
		return "limit_exceeded"
	case KindExternalFailure:
		return "external_failure"
	case KindConflict:
		return "conflict"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Code is a stable, machine readable error identity with its status class.
type Code struct {
	Name    string
	Kind    Kind
	Status  int
	Message string
}

var (
	Internal = Code{
		Name:    "INTERNAL_SERVER_ERROR",
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Message: "internal server error",
	}
	ValidationFailed = Code{
		Name:    "VALIDATION_FAILED",
		Kind:    KindValidationFailed,
		Status:  http.StatusBadRequest,
		Message: "invalid request",
	}
)

// Error is the typed business error returned by domain and application code.
type Error struct {
	Code   Code
	Detail string
	cause  error
	masked bool
}

// New returns a bare error for code. Package level sentinels are built with it.
func New(code Code) *Error {
	return &Error{Code: code}
}

// Wrap attaches cause so callers can still reach it with errors.Is / errors.As.
func Wrap(code Code, cause error) *Error {
	return &Error{Code: code, cause: cause}
}

// Mask keeps cause for logging only, Unwrap does not expose it.
func Mask(code Code, cause error) *Error {
	return &Error{Code: code, cause: cause, masked: true}
}

// Validation returns a ValidationFailed error whose detail is shown to the caller.
func Validation(detail string) *Error {
	return &Error{Code: ValidationFailed, Detail: detail}
}

func (e *Error) Error() string {
	msg := e.Code.Name + ": " + e.Code.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e.masked {
		return nil
	}
	return e.cause
}

// Cause returns the underlying error, masked or not.
func (e *Error) Cause() error {
	return e.cause
}

// Is reports a match when target is an *Error carrying the same code name.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code.Name == e.Code.Name
}

// Message is what callers get to see.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Code.Message
}

// From extracts the first *Error in err's chain.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns KindInternal for errors outside the taxonomy.
func KindOf(err error) Kind {
	if appErr, ok := From(err); ok {
		return appErr.Code.Kind
	}
	return KindInternal
}
