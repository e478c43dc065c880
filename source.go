package regionarena

import (
	"github.com/pkg/errors"

	"github.com/pavanmanishd/regionarena/internal/mmap"
)

// maxChunkShift is 40 on 64-bit platforms and 31 on 32-bit ones.
const maxChunkShift = 31 + 9*(^uint(0)>>63)

// MaxChunkSize is the largest single buffer HeapSource will reserve
// (1 TiB on 64-bit platforms).
const MaxChunkSize = 1<<maxChunkShift - 1

// Source reserves and releases the buffers that back arena chunks.
// Reserve must return a slice whose length is exactly n. Free receives
// the exact slice Reserve returned.
//
// The arena reports every Reserve failure as ErrAllocationFailure. A cause
// that does not already wrap it keeps only its message, so errors.Is
// matches ErrAllocationFailure and not the source's own error.
type Source interface {
	Reserve(n int) ([]byte, error)
	Free(b []byte) error
}

// HeapSource reserves chunks from the Go heap.
type HeapSource struct{}

// Reserve allocates n bytes with make. Requests above MaxChunkSize fail
// instead of aborting the process.
func (HeapSource) Reserve(n int) ([]byte, error) {
	if n <= 0 || n > MaxChunkSize {
		return nil, errors.Wrapf(ErrAllocationFailure, "heap reserve %d bytes", n)
	}
	return make([]byte, n), nil
}

// Free drops the reference; the garbage collector reclaims the buffer.
func (HeapSource) Free([]byte) error { return nil }

// MmapSource reserves chunks as anonymous private mappings outside the Go
// heap. Buffers are unmapped on Free, so views into a released or resized
// chunk must not be touched afterwards.
type MmapSource struct{}

// Reserve maps n bytes of zero-filled memory.
func (MmapSource) Reserve(n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrAllocationFailure, "mmap reserve %d bytes", n)
	}
	b, err := mmap.Anonymous(n)
	if err != nil {
		return nil, errors.Wrapf(ErrAllocationFailure, "mmap reserve %d bytes: %v", n, err)
	}
	return b, nil
}

// Free unmaps b.
func (MmapSource) Free(b []byte) error {
	return errors.WithMessage(mmap.Unmap(b), "munmap")
}

// LimitSource caps the number of bytes outstanding from an underlying
// Source. It is not safe for concurrent use.
type LimitSource struct {
	src   Source
	limit int
	used  int
}

// NewLimitSource wraps src so that at most limit bytes are reserved at once.
func NewLimitSource(src Source, limit int) *LimitSource {
	if src == nil {
		src = HeapSource{}
	}
	return &LimitSource{src: src, limit: limit}
}

func (l *LimitSource) Reserve(n int) ([]byte, error) {
	if n > l.limit-l.used {
		return nil, errors.Wrapf(ErrAllocationFailure, "budget exceeded: %d requested, %d of %d in use", n, l.used, l.limit)
	}
	b, err := l.src.Reserve(n)
	if err != nil {
		return nil, err
	}
	l.used += len(b)
	return b, nil
}

func (l *LimitSource) Free(b []byte) error {
	l.used -= len(b)
	return l.src.Free(b)
}

// Used returns the number of bytes currently reserved through l.
func (l *LimitSource) Used() int { return l.used }

// Limit returns the configured budget.
func (l *LimitSource) Limit() int { return l.limit }
