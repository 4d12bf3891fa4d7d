// Package errs defines the three error kinds the AML core surfaces to every
// caller, per spec.md §7: NotFound, Invalid, Conflict.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a CoreError for callers/collaborators (e.g. the HTTP layer
// maps NotFound -> 404).
type Kind string

const (
	KindNotFound Kind = "NOT_FOUND"
	KindInvalid  Kind = "INVALID"
	KindConflict Kind = "CONFLICT"
)

// CoreError is the single error type returned across package boundaries.
type CoreError struct {
	Kind    Kind
	Message string
	Wrapped error
}

func (e *CoreError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error { return e.Wrapped }

// Is allows errors.Is(err, errs.NotFound) style checks against sentinels
// built with the same Kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NotFound builds a NotFound CoreError.
func NotFound(msg string) error { return &CoreError{Kind: KindNotFound, Message: msg} }

// Invalid builds an Invalid CoreError.
func Invalid(msg string) error { return &CoreError{Kind: KindInvalid, Message: msg} }

// Conflict builds a Conflict CoreError.
func Conflict(msg string) error { return &CoreError{Kind: KindConflict, Message: msg} }

// Wrap builds a CoreError of the given kind, wrapping an underlying error.
func Wrap(kind Kind, msg string, err error) error {
	return &CoreError{Kind: kind, Message: msg, Wrapped: err}
}

// IsNotFound reports whether err is (or wraps) a NotFound CoreError.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsInvalid reports whether err is (or wraps) an Invalid CoreError.
func IsInvalid(err error) bool { return hasKind(err, KindInvalid) }

// IsConflict reports whether err is (or wraps) a Conflict CoreError.
func IsConflict(err error) bool { return hasKind(err, KindConflict) }

func hasKind(err error, k Kind) bool {
	var ce *CoreError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Kind == k
}
