package regionarena

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Realloc resizes b, a slice previously returned by this arena, to n bytes.
// If b is the most recent allocation and the chunk has room, it is resized
// in place and the same memory is returned. Otherwise a new region is
// allocated and min(len(b), n) bytes are copied into it; the old region is
// not reclaimed. An empty b behaves like AllocBytes(n).
func (a *Arena) Realloc(b []byte, n int) ([]byte, error) {
	if len(b) == 0 {
		return a.AllocBytes(n)
	}
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "reallocation size %d", n)
	}

	if a.isLast(b) {
		c := a.chunks[a.last.chunk]
		if end := a.last.start + n; end <= c.capacity() {
			if n > a.last.size {
				c.requested += n - a.last.size
			}
			c.off = end
			if c.off > c.peak {
				c.peak = c.off
			}
			a.last.size = n
			return c.buf[a.last.start:end:end], nil
		}
	}

	nb, err := a.AllocBytes(n)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	return nb, nil
}

// isLast reports whether b is exactly the most recent allocation.
func (a *Arena) isLast(b []byte) bool {
	if !a.last.ok || len(b) != a.last.size {
		return false
	}
	c := a.chunks[a.last.chunk]
	return unsafe.SliceData(b) == &c.buf[a.last.start]
}
