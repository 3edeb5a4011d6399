// Package dErrors defines coded domain errors shared by services and
// transport. Stores return sentinel errors (pkg/sentinel); services translate
// them into coded errors here; handlers translate codes into HTTP statuses.
package dErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping and caller branching.
type Code string

const (
	// CodeNotFound signals an unknown record id.
	CodeNotFound Code = "not_found"
	// CodeInvalidState signals an operation attempted from a lifecycle state
	// that forbids it (e.g. purge on a non-trashed domain).
	CodeInvalidState Code = "invalid_state"
	// CodeValidation signals rejected input after parsing succeeded.
	CodeValidation Code = "validation_error"
	// CodeBadRequest signals a malformed request body or parameters.
	CodeBadRequest Code = "bad_request"
	// CodeConflict signals a uniqueness or concurrency conflict.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation signals a broken model invariant. Services
	// usually convert these to CodeValidation before they reach transport.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal signals an unexpected failure; details stay server-side.
	CodeInternal Code = "internal_error"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with no cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// uncoded errors so transport never leaks raw failure details.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HTTPStatus maps a code to its HTTP response status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidState, CodeConflict:
		return http.StatusConflict
	case CodeValidation, CodeBadRequest, CodeInvariantViolation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
