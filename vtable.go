package delegate

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/bdiamand/delegate/fault"
	"github.com/bdiamand/delegate/internal/slot"
)

// Dropper is optionally implemented by captured state that needs cleanup
// when its delegate is destroyed, overwritten, or moved over.
type Dropper interface {
	Drop()
}

// NoCopy marks captured state as move-only. Embed it in state that must
// never be duplicated, such as a uniquely owned handle:
//
//	type conn struct {
//	    delegate.NoCopy
//	    fd int
//	}
//
// State carrying the marker is rejected by the copyable constructors and
// by Promote, and can only live inside a MoveFunc.
type NoCopy struct{}

func (NoCopy) mustNotCopy() {}

var (
	noCopyType  = reflect.TypeOf((*interface{ mustNotCopy() })(nil)).Elem()
	dropperType = reflect.TypeOf((*Dropper)(nil)).Elem()
)

// ops is the dispatch record: one immutable instance per concrete payload
// type, shared by reference across every delegate that ever holds that
// type. It is the manual substitute for runtime polymorphism - beyond the
// call pointer a delegate needs copy, move, and destroy, and keeping them
// in one shared record keeps the delegate itself small.
type ops struct {
	typ     reflect.Type
	copy    func(dst, src *slot.Buffer)
	move    func(dst, src *slot.Buffer)
	destroy func(b *slot.Buffer)
}

// opsCache holds the process-lifetime records, keyed by payload type.
var opsCache sync.Map // reflect.Type -> *ops

// opsFor returns the dispatch record for payload type T, compiling it on
// first use. Later calls return the identical pointer.
//
// destroy overrides the default destroy operation; pass nil for the
// default (Dropper hook if T implements it, otherwise zeroing).
func opsFor[T any](canCopy bool, destroy func(*slot.Buffer)) *ops {
	rt := reflect.TypeFor[T]()
	if cached, ok := opsCache.Load(rt); ok {
		return cached.(*ops)
	}

	o := &ops{typ: rt, move: typedMove[T]}
	if canCopy {
		o.copy = typedCopy[T]
	} else {
		// Defensive abort. The copyable variant's construction gating is
		// what keeps this unreachable; the record shape is uniform across
		// both variants so the field must hold something.
		o.copy = failCopy(rt)
	}
	switch {
	case destroy != nil:
		o.destroy = destroy
	case rt.Implements(dropperType) || reflect.PointerTo(rt).Implements(dropperType):
		o.destroy = dropDestroy[T]
	default:
		o.destroy = zeroDestroy
	}

	actual, loaded := opsCache.LoadOrStore(rt, o)
	if !loaded {
		Logger().Debug("compiled dispatch record",
			zap.String("payload", rt.String()),
			zap.Bool("copyable", canCopy))
	}
	return actual.(*ops)
}

func typedCopy[T any](dst, src *slot.Buffer) {
	slot.Put(dst, *slot.At[T](src))
}

func typedMove[T any](dst, src *slot.Buffer) {
	slot.Put(dst, *slot.At[T](src))
	src.Zero()
}

func failCopy(rt reflect.Type) func(dst, src *slot.Buffer) {
	return func(dst, src *slot.Buffer) {
		panic(fault.IllegalCopy(rt.String()))
	}
}

func zeroDestroy(b *slot.Buffer) {
	b.Zero()
}

// dropDestroy runs the payload's Drop hook before clearing the storage.
// Only installed for types that implement Dropper.
func dropDestroy[T any](b *slot.Buffer) {
	if d, ok := any(slot.At[T](b)).(Dropper); ok {
		d.Drop()
	} else if d, ok := any(*slot.At[T](b)).(Dropper); ok {
		d.Drop()
	}
	b.Zero()
}

// copyable reports whether state of type S may be duplicated.
func copyable[S any]() bool {
	return !reflect.TypeFor[S]().Implements(noCopyType)
}

func implementsDropper[S any]() bool {
	rt := reflect.TypeFor[S]()
	return rt.Implements(dropperType) || reflect.PointerTo(rt).Implements(dropperType)
}

// ensureFits panics with a capacity or alignment fault when a value of
// type T cannot occupy the storage buffer. There is no fallback
// allocation path: oversized payloads are a construction error.
func ensureFits[T any]() {
	if slot.Fits[T]() {
		return
	}
	rt := reflect.TypeFor[T]()
	if rt.Size() > slot.Size {
		panic(fault.Capacity(rt.String(), rt.Size(), slot.Size))
	}
	panic(fault.Alignment(rt.String(), uintptr(rt.Align()), slot.Align))
}

// emptyPayload is the sentinel an empty delegate logically holds. It keeps
// the dispatch pointer non-nil in every state.
type emptyPayload struct{}

var emptyOps = &ops{
	typ:     reflect.TypeOf(emptyPayload{}),
	copy:    func(dst, src *slot.Buffer) { dst.Zero() },
	move:    func(dst, src *slot.Buffer) { dst.Zero() },
	destroy: zeroDestroy,
}

// emptyCall is the sentinel call: invoking an empty delegate is
// well-defined and fails fast.
func emptyCall[In, Out any](*slot.Buffer, In) Out {
	panic(fault.EmptyCall())
}
