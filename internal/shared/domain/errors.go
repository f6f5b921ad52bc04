package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so adapters can map them without knowing
// every package's sentinels.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindResourceConflict  ErrorKind = "resource_conflict"
	KindPartialFailure    ErrorKind = "partial_failure"
	KindInvalidTransition ErrorKind = "invalid_transition"
)

// Kind-level sentinels. errors.Is(err, ErrNotFound) matches every not-found
// error regardless of which package produced it.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrResourceConflict  = &Error{Kind: KindResourceConflict}
	ErrPartialFailure    = &Error{Kind: KindPartialFailure}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
)

// Error is a kinded domain error.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewError creates a kinded sentinel.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind to an underlying cause.
func Wrap(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation wraps a field-level validation error.
func Validation(err error) error {
	if err == nil {
		return nil
	}
	return Wrap(KindValidation, "invalid input", err)
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error        { return e.Err }
func (e *Error) ErrorKind() ErrorKind { return e.Kind }

// Is matches kind-level sentinels (those without a message).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

type kinded interface {
	ErrorKind() ErrorKind
}

// KindOf returns the kind of the outermost kinded error in the chain.
func KindOf(err error) (ErrorKind, bool) {
	var k kinded
	if errors.As(err, &k) {
		return k.ErrorKind(), true
	}
	return "", false
}
