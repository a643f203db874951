package delegate

import (
	"testing"

	"github.com/bdiamand/delegate/fault"
	"github.com/bdiamand/delegate/internal/slot"
)

func TestOpsRecordIsShared(t *testing.T) {
	type payload struct{ a, b int }
	r1 := opsFor[payload](true, nil)
	r2 := opsFor[payload](true, nil)
	if r1 != r2 {
		t.Error("dispatch record not shared across lookups for the same type")
	}

	type other struct{ a, b int }
	r3 := opsFor[other](true, nil)
	if r3 == r1 {
		t.Error("distinct types share a dispatch record")
	}
}

func TestFailCopyAborts(t *testing.T) {
	type sealed struct {
		NoCopy
		v int
	}
	rec := opsFor[sealed](false, nil)

	var src, dst slot.Buffer
	slot.Put(&src, sealed{v: 7})

	wantFault(t, fault.IllegalCopy(""), func() { rec.copy(&dst, &src) })

	// Move and destroy remain legal for the same record.
	rec.move(&dst, &src)
	if got := slot.At[sealed](&dst).v; got != 7 {
		t.Errorf("moved value = %d, want 7", got)
	}
	rec.destroy(&dst)
}

func TestDropDestroy(t *testing.T) {
	drops := 0
	rec := opsFor[dropCounter](true, nil)

	var b slot.Buffer
	slot.Put(&b, dropCounter{drops: &drops})
	rec.destroy(&b)
	if drops != 1 {
		t.Errorf("Drop ran %d times, want 1", drops)
	}
}

func TestCopyablePredicate(t *testing.T) {
	type plain struct{ v int }
	type sealed struct {
		NoCopy
		v int
	}
	if !copyable[plain]() {
		t.Error("plain struct reported move-only")
	}
	if copyable[sealed]() {
		t.Error("NoCopy struct reported copyable")
	}
	if !copyable[func(int) int]() {
		t.Error("function type reported move-only")
	}
}

func TestEnsureFitsBoundary(t *testing.T) {
	type exact struct{ a, b, c, d, e, f uintptr }
	type over struct{ a, b, c, d, e, f, g uintptr }

	ensureFits[exact]() // must not panic

	wantFault(t, fault.Capacity("", 0, 0), func() { ensureFits[over]() })
}
