package delegate

import (
	"testing"
)

func BenchmarkRawClosure(b *testing.B) {
	n := 3
	fn := func(x int) int { return x + n }
	acc := 0
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		acc = fn(acc)
	}
	sink = acc
}

func BenchmarkCallPlain(b *testing.B) {
	f := New(func(x int) int { return x + 3 })
	acc := 0
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		acc = f.Call(acc)
	}
	sink = acc
}

func BenchmarkCallCaptured(b *testing.B) {
	f := Capture(counter{step: 3}, func(c *counter, x int) int {
		c.n += c.step
		return x + c.n
	})
	acc := 0
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		acc = f.Call(acc)
	}
	sink = acc
}

func BenchmarkClone(b *testing.B) {
	f := Capture(counter{step: 1}, func(c *counter, x int) int { return x + c.step })
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := f.Clone()
		sink = c.Call(i)
	}
}

func BenchmarkCapture(b *testing.B) {
	type state struct{ a, b, c uint64 }
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f := CaptureMove(state{1, 2, 3}, func(s *state, _ struct{}) uint64 {
			return s.a + s.b + s.c
		})
		sink = int(f.Call(struct{}{}))
	}
}

var sink int
