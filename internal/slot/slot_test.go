package slot

import (
	"testing"
	"unsafe"
)

func TestFits(t *testing.T) {
	type exact struct{ a, b, c, d, e, f uintptr }
	type over struct{ a, b, c, d, e, f, g uintptr }

	if unsafe.Sizeof(exact{}) != Size {
		t.Fatalf("test fixture is %d bytes, want %d", unsafe.Sizeof(exact{}), Size)
	}
	if !Fits[exact]() {
		t.Error("payload exactly at the boundary rejected")
	}
	if Fits[over]() {
		t.Error("payload one word over the boundary accepted")
	}
	if !Fits[byte]() || !Fits[func()]() || !Fits[struct{}]() {
		t.Error("small payloads rejected")
	}
}

func TestPutAt(t *testing.T) {
	type pair struct {
		a uint64
		b string
	}

	var b Buffer
	Put(&b, pair{a: 42, b: "hello"})

	got := At[pair](&b)
	if got.a != 42 || got.b != "hello" {
		t.Errorf("read back %+v, want {42 hello}", *got)
	}

	got.a = 99
	if At[pair](&b).a != 99 {
		t.Error("At does not alias the stored value")
	}
}

func TestPutClearsPreviousWords(t *testing.T) {
	type full struct{ a, b, c, d, e, f uintptr }

	var b Buffer
	Put(&b, full{1, 2, 3, 4, 5, 6})
	Put(&b, uintptr(7))

	words := At[full](&b)
	if words.a != 7 {
		t.Errorf("first word = %d, want 7", words.a)
	}
	for i, w := range []uintptr{words.b, words.c, words.d, words.e, words.f} {
		if w != 0 {
			t.Errorf("stale word %d = %d after smaller store", i+1, w)
		}
	}
}

func TestZero(t *testing.T) {
	var b Buffer
	Put(&b, [Words]uintptr{1, 2, 3, 4, 5, 6})
	b.Zero()
	for i, w := range *At[[Words]uintptr](&b) {
		if w != 0 {
			t.Errorf("word %d = %d after Zero", i, w)
		}
	}
}
