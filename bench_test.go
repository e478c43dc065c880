package regionarena

import (
	"runtime"
	"testing"
)

// BenchmarkRealisticUsage tests scenarios where the arena should excel
func BenchmarkRealisticUsage(b *testing.B) {
	b.Run("ManySmallAllocs/Arena", func(b *testing.B) {
		a, _ := New(64 * 1024)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 100; j++ {
				_, _ = a.AllocBytes(64)
			}
			// Simulates request cleanup
			a.Reset()
		}
	})

	b.Run("ManySmallAllocs/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			objects := make([][]byte, 100)
			for j := 0; j < 100; j++ {
				objects[j] = make([]byte, 64)
			}
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	type record struct {
		ID   int64
		Data [56]byte
	}

	b.Run("StructAllocs/Arena", func(b *testing.B) {
		a, _ := New(64 * 1024)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 50; j++ {
				r, _ := Alloc[record](a)
				r.ID = int64(j)
			}
			a.Reset()
		}
	})

	b.Run("Checkpoint/Arena", func(b *testing.B) {
		a, _ := New(64 * 1024)
		_, _ = a.AllocBytes(4096) // long-lived header
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			m := a.Mark()
			for j := 0; j < 10; j++ {
				_, _ = a.AllocBytes(512)
			}
			_ = a.ResetToMark(m)
		}
	})

	b.Run("GrowingBuffer/Realloc", func(b *testing.B) {
		a, _ := New(64 * 1024)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			buf, _ := a.AllocBytes(16)
			for n := 32; n <= 4096; n *= 2 {
				buf, _ = a.Realloc(buf, n)
			}
			a.Reset()
		}
	})

	b.Run("Aligned/Arena", func(b *testing.B) {
		a, _ := New(1024 * 1024)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_, _ = a.AllocAligned(48, 64)
			if i%1000 == 999 {
				a.Reset()
			}
		}
	})
}
