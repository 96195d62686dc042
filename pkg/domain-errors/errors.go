package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure so transport layers can translate it
// without inspecting message text.
type Code string

const (
	// CodeValidation covers malformed input: bad addresses, bad thresholds,
	// missing required fields.
	CodeValidation Code = "validation"

	// CodeNotFound means the referenced entity does not exist.
	CodeNotFound Code = "not_found"

	// CodeConflict means the operation would violate a uniqueness invariant
	// and the caller must resolve the conflict explicitly.
	CodeConflict Code = "conflict"

	// CodeForbidden means the caller lacks the privilege for the operation.
	CodeForbidden Code = "forbidden"

	// CodeUnavailable means an upstream dependency failed; the caller may
	// retry the whole flow.
	CodeUnavailable Code = "unavailable"

	// CodeInternal is an unexpected failure. Details are never surfaced to
	// external callers.
	CodeInternal Code = "internal"

	// CodeInvariantViolation marks a broken model invariant. Services usually
	// convert these to CodeValidation before they reach a handler.
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is a coded domain error. Message is safe to show to callers for all
// codes except CodeInternal; Details carries optional upstream diagnostics.
type Error struct {
	Code    Code
	Message string
	Details string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// WithDetails attaches upstream diagnostic text and returns the error.
func (e *Error) WithDetails(details string) *Error {
	e.Details = details
	return e
}

// New builds a coded error with a caller-facing message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message while preserving the cause chain.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost coded error, or CodeInternal when
// the chain carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the caller-facing message of the outermost coded error,
// or an empty string for uncoded errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// DetailsOf returns attached upstream diagnostics, if any.
func DetailsOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Details
	}
	return ""
}
