// Package errors provides structured error reporting for the listkit model layer.
//
// Nothing in the model tree or the bus returns these errors to ordinary
// callers. Structural misuse is reported through [Assert], which forwards to
// the global [ErrorHandler] and then either panics or continues depending on
// the configured [Policy].
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindStructure indicates tree misuse such as a self-add or a foreign node variant.
	KindStructure
	// KindLookup indicates an anchor or member that was not found.
	KindLookup
	// KindPayload indicates a typed payload that did not match the declared type.
	KindPayload
	// KindConfig indicates an invalid configuration value.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindStructure:
		return "structure"
	case KindLookup:
		return "lookup"
	case KindPayload:
		return "payload"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors wrapped by ModelError.
var (
	ErrNilNode        = stderrors.New("nil node")
	ErrSelfReference  = stderrors.New("node cannot be its own child")
	ErrInvalidVariant = stderrors.New("node is neither a cell nor a container")
	ErrAnchorNotFound = stderrors.New("anchor node not found among children")
	ErrParentCycle    = stderrors.New("parent chain does not terminate")
)

// ModelError represents a structured error in the model layer.
type ModelError struct {
	// Op is the operation that failed (e.g., "model.AddSubmodel").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Tag is the variant tag of the node or bus involved, if any.
	Tag string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ModelError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s [%s] tag=%s: %v", e.Op, e.Kind, e.Tag, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "bus.SendEvent").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the model layer.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ModelError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is reports whether any error in err's chain matches target.
// It mirrors the standard library so callers need a single errors import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
