package fault

import (
	"fmt"
	"strings"
)

// Phase indicates which delegate operation the fault belongs to
type Phase string

const (
	PhaseStore    Phase = "store"    // payload construction/assignment
	PhaseCopy     Phase = "copy"     // duplicating a payload
	PhaseMove     Phase = "move"     // transferring a payload
	PhaseCall     Phase = "call"     // invocation
	PhaseRegistry Phase = "registry" // dispatch table operations
)

// Kind categorizes the fault
type Kind string

const (
	KindCapacity    Kind = "capacity"     // payload exceeds buffer size
	KindAlignment   Kind = "alignment"    // payload alignment incompatible with buffer
	KindIllegalCopy Kind = "illegal_copy" // copy of a move-only payload
	KindEmptyCall   Kind = "empty_call"   // invocation of an empty delegate
	KindNilCallable Kind = "nil_callable" // nil function supplied at construction
	KindNotFound    Kind = "not_found"    // registry lookup miss
	KindDuplicate   Kind = "duplicate"    // registry name already taken
	KindClosed      Kind = "closed"       // operation on a closed table
)

// Error is the structured fault type used throughout the library.
// Contract violations in the delegate core panic with a *Error; the
// registry returns them as ordinary errors.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.GoType != "" {
		b.WriteString(": payload type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this fault by phase and kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured fault construction
type Builder struct {
	err Error
}

// New creates a new fault builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// GoType sets the payload type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed fault
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the faults the core raises

// Capacity creates a fault for a payload that exceeds the storage size
func Capacity(goType string, size, max uintptr) *Error {
	return &Error{
		Phase:  PhaseStore,
		Kind:   KindCapacity,
		GoType: goType,
		Detail: fmt.Sprintf("payload is %d bytes, storage holds %d", size, max),
	}
}

// Alignment creates a fault for a payload the buffer cannot align
func Alignment(goType string, align, max uintptr) *Error {
	return &Error{
		Phase:  PhaseStore,
		Kind:   KindAlignment,
		GoType: goType,
		Detail: fmt.Sprintf("payload requires %d-byte alignment, storage provides %d", align, max),
	}
}

// IllegalCopy creates a fault for a copy of a move-only payload
func IllegalCopy(goType string) *Error {
	return &Error{
		Phase:  PhaseCopy,
		Kind:   KindIllegalCopy,
		GoType: goType,
		Detail: "payload is move-only",
	}
}

// EmptyCall creates a fault for invoking an empty delegate
func EmptyCall() *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindEmptyCall,
		Detail: "delegate holds no callable",
	}
}

// NilCallable creates a fault for constructing a delegate from a nil function
func NilCallable() *Error {
	return &Error{
		Phase:  PhaseStore,
		Kind:   KindNilCallable,
		Detail: "callable is nil",
	}
}

// NotFound creates a registry lookup fault
func NotFound(name string) *Error {
	return &Error{
		Phase:  PhaseRegistry,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("delegate %q not registered", name),
	}
}

// Duplicate creates a registry name collision fault
func Duplicate(name string) *Error {
	return &Error{
		Phase:  PhaseRegistry,
		Kind:   KindDuplicate,
		Detail: fmt.Sprintf("delegate %q already registered", name),
	}
}

// Closed creates a fault for operations on a closed table
func Closed() *Error {
	return &Error{
		Phase:  PhaseRegistry,
		Kind:   KindClosed,
		Detail: "table is closed",
	}
}
