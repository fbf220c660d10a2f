// Package domainerrors defines the coded error type used at service boundaries.
//
// Stores report infrastructure facts via pkg/platform/sentinel; services wrap
// those facts (or validation failures) into a coded Error carrying a message
// that is safe to show to callers. The HTTP layer maps codes to status codes
// and never exposes wrapped causes.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport mapping and policy decisions.
type Code string

const (
	CodeBadRequest    Code = "bad_request"
	CodeUnauthorized  Code = "unauthorized"
	CodeForbidden     Code = "forbidden"
	CodeNotFound      Code = "not_found"
	CodeConflict      Code = "conflict"
	CodeLimitExceeded Code = "limit_exceeded"
	CodeUnavailable   Code = "unavailable"
	CodeInternal      Code = "internal_error"
)

// Error is a coded domain error. Message is safe for external callers; the
// wrapped cause (if any) is for server-side logs only.
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

// Is matches another *Error by code, and by message when the target carries one.
// This lets tests assert with errors.Is against New(code, message) values.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// New builds a coded error with a caller-safe message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a cause to a coded error. The cause is never shown to callers.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) is a coded error with the
// given code.
func HasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// CodeOf extracts the code from err, defaulting to CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-safe message from err. Uncoded errors yield an
// empty message so transport layers fall back to a generic one.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
