package regionarena

import "github.com/pkg/errors"

// Resize changes the capacity of the head chunk. See ResizeChunk.
func (a *Arena) Resize(n int) error {
	return a.ResizeChunk(0, n)
}

// ResizeChunk changes the capacity of chunk i (0 is the head) to n bytes.
// The live bytes are copied into a new buffer and the old one is returned
// to the source, so slices previously taken from the chunk are invalidated.
// It fails without changing anything if n is below the chunk's usage.
// Growth never calls it.
func (a *Arena) ResizeChunk(i, n int) error {
	if err := a.checkLive(); err != nil {
		return err
	}
	if i < 0 || i >= len(a.chunks) {
		return errors.Wrapf(ErrInvalidArgument, "chunk %d of %d", i, len(a.chunks))
	}
	c := a.chunks[i]
	if n <= 0 || n < c.off {
		return errors.Wrapf(ErrInvalidArgument, "resize chunk %d to %d bytes with %d in use", i, n, c.off)
	}
	if n == c.capacity() {
		return nil
	}

	buf, err := a.reserve(n)
	if err != nil {
		a.log.Warn("regionarena: failed to resize chunk", "chunk", i, "size", n, errAttr(err))
		return err
	}
	copy(buf, c.buf[:c.off])
	old := c.buf
	c.buf = buf
	c.peak = min(c.peak, n)
	if a.last.chunk == i {
		a.last = lastAlloc{}
	}
	if err := a.src.Free(old); err != nil {
		a.log.Warn("regionarena: failed to free resized chunk", "chunk", i, "size", len(old), errAttr(err))
	}
	return nil
}
