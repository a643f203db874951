package delegate

import (
	"reflect"

	"github.com/bdiamand/delegate/fault"
)

// Func is the copyable delegate variant, built by capability widening over
// MoveFunc: invocation, the boolean test, and move behavior are inherited
// unchanged, and duplication is added on top. Only payloads without the
// NoCopy marker can enter a Func.
//
// The embedded MoveFunc field is the free, lossless move-only view: a
// *Func can be handed to anything expecting a *MoveFunc via &f.MoveFunc.
// The reverse direction goes through Promote.
type Func[In, Out any] struct {
	MoveFunc[In, Out]
}

// New creates a copyable delegate from a function value.
func New[In, Out any](fn func(In) Out) Func[In, Out] {
	var out Func[In, Out]
	out.Set(fn)
	return out
}

// NewThunk creates a copyable delegate from a no-argument function.
func NewThunk[Out any](fn func() Out) Func[struct{}, Out] {
	if fn == nil {
		panic(fault.NilCallable())
	}
	return Capture(fn, func(fn *func() Out, _ struct{}) Out {
		return (*fn)()
	})
}

// Capture creates a copyable delegate holding a copy of state inline. fn
// is invoked with a pointer to the stored copy on every call. State
// carrying the NoCopy marker is rejected; use CaptureMove for it.
func Capture[S, In, Out any](state S, fn func(*S, In) Out) Func[In, Out] {
	if fn == nil {
		panic(fault.NilCallable())
	}
	if !copyable[S]() {
		panic(fault.IllegalCopy(reflect.TypeFor[S]().String()))
	}
	var out Func[In, Out]
	storeBound(&out.MoveFunc, state, fn, true)
	return out
}

// Clone duplicates the delegate through its payload's dispatch record.
// Original and clone hold independent values afterward.
func (f *Func[In, Out]) Clone() Func[In, Out] {
	var out Func[In, Out]
	if f.ops == nil {
		f.reset()
	}
	f.ops.copy(&out.buf, &f.buf)
	out.call = f.call
	out.ops = f.ops
	return out
}

// CopyFrom replaces f's payload with an independent copy of src's,
// destroying the previous payload first. Copying from itself is a no-op.
func (f *Func[In, Out]) CopyFrom(src *Func[In, Out]) {
	if f == src {
		return
	}
	if src.ops == nil {
		src.reset()
	}
	if f.ops != nil {
		f.ops.destroy(&f.buf)
	}
	src.ops.copy(&f.buf, &src.buf)
	f.call = src.call
	f.ops = src.ops
}

// MoveFrom transfers src's payload into f, keeping the copyable interface
// closed over Func sources. Shadows the embedded method so a move-only
// payload cannot silently enter a Func through assignment; the embedded
// view remains reachable as f.MoveFunc.MoveFrom for callers who know what
// they are doing, backed by the record's defensive copy abort.
func (f *Func[In, Out]) MoveFrom(src *Func[In, Out]) {
	f.MoveFunc.MoveFrom(&src.MoveFunc)
}

// Promote constructs a copyable delegate by duplicating a move-only one.
// Legal only while the payload actually held is copyable: the payload's
// dispatch record fully determines whether copy is legal, and a move-only
// payload fails fast with an illegal-copy fault. m itself is unchanged.
func Promote[In, Out any](m *MoveFunc[In, Out]) Func[In, Out] {
	var out Func[In, Out]
	if m.ops == nil {
		m.reset()
	}
	m.ops.copy(&out.buf, &m.buf)
	out.call = m.call
	out.ops = m.ops
	return out
}
