// Package delegate provides bounded-size, non-allocating callable values:
// an alternative to storing closures behind an interface when the number
// of live callables is large or allocation is unwelcome, such as in
// dispatch tables, timer wheels, and event queues.
//
// # Variants
//
// Two capability variants share one representation:
//
//	Func[In, Out]      copyable delegate, the common case
//	MoveFunc[In, Out]  move-only delegate, for uniquely owned captures
//
// A Func is a MoveFunc with duplication added by embedding, so a *Func
// can be used anywhere a *MoveFunc is expected (&f.MoveFunc) with
// identical behavior. The opposite direction goes through Promote and is
// only legal while the held payload is copyable.
//
// Captured state enters a delegate through Capture or CaptureMove and is
// stored inline:
//
//	type counter struct{ n, step int }
//
//	d := delegate.Capture(counter{step: 2}, func(c *counter, _ struct{}) int {
//	    c.n += c.step
//	    return c.n
//	})
//	d.Call(struct{}{}) // 2
//	d.Call(struct{}{}) // 4
//
// # Storage
//
// Every delegate in a build owns the same fixed buffer: a small number of
// pointer-sized words configured process-wide, not per instance. A payload
// that does not fit is rejected when the delegate is constructed; there is
// no fallback heap allocation. Each concrete payload type gets one shared
// dispatch record (copy/move/destroy), compiled lazily on first use and
// cached for the life of the process.
//
// # Failure model
//
// Misuse fails fast with a *fault.Error panic: invoking an empty delegate,
// duplicating a move-only payload, or constructing from a payload that
// exceeds the buffer. None of these leave partial state behind. Callers
// are expected to test OK before invoking a delegate that may be empty,
// and to pick MoveFunc statically when the capture cannot be copied.
// Capture sizes are fixed at build time, so the capacity fault is a bug in
// the calling code, not a runtime condition to handle.
//
// Captured state may implement Dropper to run cleanup when its delegate is
// destroyed or overwritten, and may embed NoCopy to forbid duplication.
//
// # Thread safety
//
// Delegate instances have single-threaded value semantics with no internal
// synchronization; sharing one instance across goroutines requires
// external serialization. The process-wide dispatch-record cache is safe
// for concurrent use. The registry subpackage provides a synchronized
// dispatch table for shared use.
package delegate
