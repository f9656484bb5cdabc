// Package errors defines the typed error taxonomy the API surfaces.
// Services wrap failures with a Code, and the response layer maps the
// code to an HTTP status and a public message.
package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	// request-shape and domain validation failures, including rejected
	// uploads and password policy violations
	CodeValidation Code = "VALIDATION_ERROR"

	// auth failures
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"

	// lookup and uniqueness failures
	CodeNotFound Code = "NOT_FOUND"
	CodeConflict Code = "CONFLICT"

	// a follow-up action transition the workflow disallows, e.g.
	// completing a cancelled action or starting one with open blockers
	CodeStateConflict Code = "STATE_CONFLICT"

	// an Idempotency-Key replayed with a different request body
	CodeIdempotency Code = "IDEMPOTENCY_KEY_REUSED"

	CodeRateLimit  Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal   Code = "INTERNAL_ERROR"
	CodeDependency Code = "DEPENDENCY_ERROR"
)

// Metadata drives how the response layer renders a code.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

func meta(status int, msg string) Metadata {
	return Metadata{HTTPStatus: status, PublicMessage: msg}
}

func (m Metadata) withDetails() Metadata {
	m.DetailsAllowed = true
	return m
}

func (m Metadata) retryable() Metadata {
	m.Retryable = true
	return m
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:    meta(http.StatusBadRequest, "validation failed").withDetails(),
	CodeUnauthorized:  meta(http.StatusUnauthorized, "authentication required"),
	CodeForbidden:     meta(http.StatusForbidden, "access denied"),
	CodeNotFound:      meta(http.StatusNotFound, "resource not found"),
	CodeConflict:      meta(http.StatusConflict, "conflict detected"),
	CodeStateConflict: meta(http.StatusUnprocessableEntity, "state transition disallowed").withDetails(),
	CodeIdempotency:   meta(http.StatusConflict, "idempotency key reused").withDetails(),
	CodeRateLimit:     meta(http.StatusTooManyRequests, "rate limit exceeded"),
	CodeInternal:      meta(http.StatusInternalServerError, "internal server error").retryable(),
	CodeDependency:    meta(http.StatusServiceUnavailable, "dependency unavailable").retryable().withDetails(),
}

// MetadataFor resolves the rendering metadata for a code. Unknown codes
// fall back to the internal-error shape so nothing leaks by accident.
func MetadataFor(code Code) Metadata {
	if m, ok := metadataByCode[code]; ok {
		return m
	}
	return metadataByCode[CodeInternal]
}

// Error is the typed error every service returns across package
// boundaries.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap attaches a code and context message to an underlying cause.
func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

// WithDetails attaches structured context, e.g. the offending field or
// the blocking dependency IDs. Rendered only when the code allows it.
func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts the typed error from a chain, or nil when the chain holds
// none.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
