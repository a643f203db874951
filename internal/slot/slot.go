package slot

import (
	"unsafe"
)

// Words is the number of pointer-sized words of payload storage. It is a
// build-wide constant: every delegate in a process shares the same buffer
// geometry, and it is deliberately not part of any delegate's type.
const Words = 6

// Size is the payload capacity in bytes.
const Size = Words * unsafe.Sizeof(uintptr(0))

// Align is the guaranteed alignment of the buffer.
const Align = unsafe.Alignof(uintptr(0))

// Buffer is the type-erased storage a delegate keeps its payload in.
//
// The storage is declared as pointer words rather than raw bytes so the
// collector scans it: references captured inside a payload stay reachable
// for as long as the payload is stored. Scalar payload words are simply
// words that do not point into the heap.
type Buffer struct {
	words [Words]unsafe.Pointer
}

// Ptr returns the address of the storage.
func (b *Buffer) Ptr() unsafe.Pointer {
	return unsafe.Pointer(&b.words[0])
}

// Zero clears the storage. Used for the empty state and before a payload
// smaller than the previous one is stored.
func (b *Buffer) Zero() {
	for i := range b.words {
		b.words[i] = nil
	}
}

// Fits reports whether a value of type T can occupy a Buffer.
func Fits[T any]() bool {
	var v T
	return unsafe.Sizeof(v) <= Size && Align%unsafe.Alignof(v) == 0
}

// Put stores v into the buffer, replacing whatever words were there.
// The previous payload, if any, must already have been destroyed.
func Put[T any](b *Buffer, v T) {
	b.Zero()
	*(*T)(b.Ptr()) = v
}

// At reinterprets the buffer as a *T.
//
// There is no embedded type tag: the result is only valid when the last
// payload logically stored in b was a T. Every caller in this module goes
// through a dispatch record or call pointer that was bound to T at store
// time, which is what upholds the contract.
func At[T any](b *Buffer) *T {
	return (*T)(b.Ptr())
}
