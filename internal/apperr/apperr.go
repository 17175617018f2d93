// Package apperr defines the error kinds shared by every service in this
// repository. Transport wrappers (HTTP/gRPC, out of scope here) map these
// kinds onto status codes. Errors the core classifies are built with this
// package and may be wrapped further with fmt.Errorf("...: %w", err); other
// errors (plain fmt.Errorf values) carry no Kind, and Is reports false for
// them.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers and transport wrappers can decide
// how to respond without parsing message text.
type Kind int

const (
	// KindInternal is an unexpected error; message text must never reach
	// the client, only the log.
	KindInternal Kind = iota
	// KindInvalidArgument is a malformed or out-of-range request.
	KindInvalidArgument
	// KindNotFound is a referenced entity that does not exist.
	KindNotFound
	// KindSchemaVersionMismatch is a stored schema version outside a
	// service's compatibility set.
	KindSchemaVersionMismatch
	// KindDependencyUnavailable is a failed store or peer-service call.
	KindDependencyUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid-argument"
	case KindNotFound:
		return "not-found"
	case KindSchemaVersionMismatch:
		return "schema-version-mismatch"
	case KindDependencyUnavailable:
		return "dependency-unavailable"
	default:
		return "internal"
	}
}

// Error is an error annotated with a Kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a Kind-classified error for op, wrapping err (which may be nil).
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// NotFound builds a KindNotFound error.
func NotFound(op string, err error) *Error { return New(KindNotFound, op, err) }

// InvalidArgument builds a KindInvalidArgument error.
func InvalidArgument(op string, err error) *Error { return New(KindInvalidArgument, op, err) }

// Internal builds a KindInternal error.
func Internal(op string, err error) *Error { return New(KindInternal, op, err) }

// DependencyUnavailable builds a KindDependencyUnavailable error.
func DependencyUnavailable(op string, err error) *Error {
	return New(KindDependencyUnavailable, op, err)
}

// SchemaVersionMismatch builds a KindSchemaVersionMismatch error.
func SchemaVersionMismatch(op string, err error) *Error {
	return New(KindSchemaVersionMismatch, op, err)
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
