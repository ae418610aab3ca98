package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for HTTP mapping and retry decisions
type Kind int

const (
	// KindUnknown is anything not produced through this package
	KindUnknown Kind = iota
	// KindValidation - malformed input, rejected before any external call
	KindValidation
	// KindPrecondition - document state does not permit the operation
	KindPrecondition
	// KindNotFound - the referenced record does not exist
	KindNotFound
	// KindEngine - the external analysis engine call failed
	KindEngine
	// KindPayload - the engine responded but the payload was malformed
	KindPayload
	// KindConflict - a compare-and-set write lost against a concurrent update
	KindConflict
)

// Error carries a kind alongside a human-readable message
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the classification of this error
func (e *Error) Kind() Kind { return e.kind }

// New creates a classified error with a formatted message
func New(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an existing error, keeping it in the chain
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

// KindOf extracts the kind from anywhere in an error chain
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
