package delegate

import (
	"github.com/bdiamand/delegate/fault"
	"github.com/bdiamand/delegate/internal/slot"
)

// MoveFunc is the move-only delegate variant: a fixed-size callable value
// whose payload can be transferred between instances but never duplicated.
// Use it when the captured state forbids duplication; for everything else
// Func is the common choice.
//
// The zero value is a valid, empty delegate: OK reports false and Call
// fails fast. An instance is not safe for concurrent use; see the package
// documentation.
type MoveFunc[In, Out any] struct {
	buf  slot.Buffer
	call func(*slot.Buffer, In) Out
	ops  *ops
}

// NewMove creates a move-only delegate from a function value.
func NewMove[In, Out any](fn func(In) Out) MoveFunc[In, Out] {
	var out MoveFunc[In, Out]
	out.Set(fn)
	return out
}

// CaptureMove creates a move-only delegate holding state inline. fn is
// invoked with a pointer to the stored copy of state on every call. state
// is moved in: if it embeds NoCopy the resulting delegate cannot be
// promoted to a Func, and its record's copy operation is the defensive
// abort.
func CaptureMove[S, In, Out any](state S, fn func(*S, In) Out) MoveFunc[In, Out] {
	if fn == nil {
		panic(fault.NilCallable())
	}
	var out MoveFunc[In, Out]
	storeBound(&out, state, fn, copyable[S]())
	return out
}

// Set replaces the payload with a plain function value, destroying the
// previous payload first through its own dispatch record.
func (f *MoveFunc[In, Out]) Set(fn func(In) Out) {
	if fn == nil {
		panic(fault.NilCallable())
	}
	store(f, fn, funcCall[In, Out], true, nil)
}

// Call invokes the stored callable. Well-defined in every state: an empty
// delegate panics with an empty-call fault rather than dereferencing
// anything. Callers that cannot rule out the empty state should test OK
// first.
func (f *MoveFunc[In, Out]) Call(in In) Out {
	if f.call == nil {
		panic(fault.EmptyCall())
	}
	return f.call(&f.buf, in)
}

// OK reports whether the delegate currently holds a callable.
func (f *MoveFunc[In, Out]) OK() bool {
	return f.ops != nil && f.ops != emptyOps
}

// MoveFrom transfers src's payload into f. f's previous payload is
// destroyed first; src transitions back to empty. Moving from itself is a
// no-op.
func (f *MoveFunc[In, Out]) MoveFrom(src *MoveFunc[In, Out]) {
	if f == src {
		return
	}
	if src.ops == nil {
		src.reset()
	}
	if f.ops != nil {
		f.ops.destroy(&f.buf)
	}
	src.ops.move(&f.buf, &src.buf)
	f.call = src.call
	f.ops = src.ops
	src.reset()
}

// Move transfers the payload into a new instance, leaving f empty.
func (f *MoveFunc[In, Out]) Move() MoveFunc[In, Out] {
	var out MoveFunc[In, Out]
	out.MoveFrom(f)
	return out
}

// Close destroys the current payload and leaves the delegate empty. Safe
// to call on an empty delegate, and idempotent.
func (f *MoveFunc[In, Out]) Close() {
	if f.ops != nil {
		f.ops.destroy(&f.buf)
	}
	f.reset()
}

// reset installs the sentinel payload so the call and dispatch pointers
// stay non-nil after explicit state transitions. The zero value reaches
// the same behavior through the nil checks in Call/OK/Close.
func (f *MoveFunc[In, Out]) reset() {
	f.buf.Zero()
	f.call = emptyCall[In, Out]
	f.ops = emptyOps
}

// store places a payload of concrete type T into f, binding the call and
// dispatch pointers for that exact type. Single code path through which
// every payload enters a delegate; this is what upholds the slot.At
// owner-knows-the-type contract.
func store[T, In, Out any](f *MoveFunc[In, Out], payload T, call func(*slot.Buffer, In) Out, canCopy bool, destroy func(*slot.Buffer)) {
	ensureFits[T]()
	if f.ops != nil {
		f.ops.destroy(&f.buf)
	}
	slot.Put(&f.buf, payload)
	f.call = call
	f.ops = opsFor[T](canCopy, destroy)
}

// funcCall is the invocation trampoline for plain function payloads.
func funcCall[In, Out any](b *slot.Buffer, in In) Out {
	return (*slot.At[func(In) Out](b))(in)
}

// bound is the payload shape for delegates created by Capture and
// CaptureMove: the target function plus the captured state, stored
// together in the buffer.
type bound[S, In, Out any] struct {
	fn    func(*S, In) Out
	state S
}

func boundCall[S, In, Out any](b *slot.Buffer, in In) Out {
	p := slot.At[bound[S, In, Out]](b)
	return p.fn(&p.state, in)
}

// boundDestroy forwards Drop to the captured state. Installed only when S
// implements Dropper; bound itself cannot promote methods from a type
// parameter field.
func boundDestroy[S, In, Out any](b *slot.Buffer) {
	p := slot.At[bound[S, In, Out]](b)
	if d, ok := any(&p.state).(Dropper); ok {
		d.Drop()
	} else if d, ok := any(p.state).(Dropper); ok {
		d.Drop()
	}
	b.Zero()
}

func storeBound[S, In, Out any](f *MoveFunc[In, Out], state S, fn func(*S, In) Out, canCopy bool) {
	var destroy func(*slot.Buffer)
	if implementsDropper[S]() {
		destroy = boundDestroy[S, In, Out]
	}
	store(f, bound[S, In, Out]{fn: fn, state: state}, boundCall[S, In, Out], canCopy, destroy)
}
