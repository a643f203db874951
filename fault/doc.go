// Package fault defines the structured fault values raised by the
// delegate library.
//
// The delegate core treats its contract violations as unrecoverable:
// invoking an empty delegate or copying a move-only payload panics with
// a *Error. The registry package, whose failures come from caller input
// rather than broken invariants, returns the same type as an ordinary
// error so callers can match on it with errors.Is.
//
// Faults carry the phase they occurred in, a machine-readable kind, and
// the payload's Go type where one is involved:
//
//	defer func() {
//	    if r := recover(); r != nil {
//	        if f, ok := r.(*fault.Error); ok && f.Kind == fault.KindEmptyCall {
//	            // delegate was never assigned
//	        }
//	    }
//	}()
package fault
