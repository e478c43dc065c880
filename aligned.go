package regionarena

import (
	"unsafe"

	"github.com/pkg/errors"
)

// AllocAligned returns n uninitialized bytes whose first byte sits at an
// address that is a multiple of align. align must be a power of two.
// Padding skipped to reach the boundary counts as used.
func (a *Arena) AllocAligned(n, align int) ([]byte, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "allocation size %d", n)
	}
	if !isPowerOfTwo(align) {
		return nil, errors.Wrapf(ErrInvalidAlignment, "alignment %d", align)
	}

	c := a.chunks[a.active]
	if pad, ok := c.fit(n, align); ok {
		return a.bump(c, pad, n), nil
	}
	return a.allocSlow(n, align)
}

// fit reports the padding needed to place n bytes at align in c and
// whether they fit in what is left of the buffer.
func (c *chunk) fit(n, align int) (pad int, ok bool) {
	if align > 1 {
		addr := uintptr(unsafe.Pointer(unsafe.SliceData(c.buf))) + uintptr(c.off)
		pad = int(alignForward(addr, uintptr(align)) - addr)
	}
	free := c.capacity() - c.off - pad
	return pad, free >= 0 && n <= free
}

// alignForward rounds p up to the next multiple of align.
func alignForward(p, align uintptr) uintptr {
	mask := align - 1
	return (p + mask) &^ mask
}

func isPowerOfTwo(x int) bool {
	return x > 0 && x&(x-1) == 0
}
