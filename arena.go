package regionarena

import (
	"log/slog"
	"math"

	"github.com/pkg/errors"
)

// DefaultCapacity is a reasonable head chunk size for general use (64 KiB).
const DefaultCapacity = 1 << 16

// chunk is a single owned buffer within an arena.
type chunk struct {
	buf       []byte // backing memory; capacity is len(buf)
	off       int    // cursor
	peak      int    // high-water mark of off
	allocs    int    // allocations served since last reset
	requested int    // bytes consumed including padding since last reset
}

func (c *chunk) capacity() int { return len(c.buf) }

// lastAlloc records the most recent allocation so Realloc can extend it in
// place. It lives in the active chunk whenever ok is set.
type lastAlloc struct {
	ok    bool
	chunk int
	start int
	size  int
}

// Arena is a chain of chunks handing out successive slices of their
// buffers. Not goroutine-safe; use SafeArena or one arena per goroutine.
type Arena struct {
	chunks []*chunk // creation order, append-only
	active int      // chunk holding the cursor; later chunks are empty
	last   lastAlloc
	src    Source
	log    *slog.Logger
}

// Option configures an Arena.
type Option func(*Arena)

// WithSource sets where chunk buffers are reserved from. The default is
// HeapSource.
func WithSource(src Source) Option {
	return func(a *Arena) {
		if src != nil {
			a.src = src
		}
	}
}

// WithLogger sets the logger that receives diagnostics such as reservation
// failures. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Arena) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates an arena whose head chunk holds capacity bytes.
func New(capacity int, opts ...Option) (*Arena, error) {
	a := &Arena{src: HeapSource{}, log: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "arena capacity %d", capacity)
	}
	buf, err := a.reserve(capacity)
	if err != nil {
		a.log.Warn("regionarena: failed to create arena", "capacity", capacity, errAttr(err))
		return nil, err
	}
	a.chunks = []*chunk{{buf: buf}}
	return a, nil
}

// AllocBytes returns n uninitialized bytes from the arena. The slice is
// capped at n so appending to it never overwrites a neighbouring allocation.
func (a *Arena) AllocBytes(n int) ([]byte, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "allocation size %d", n)
	}

	// Fast path: room in the active chunk
	c := a.chunks[a.active]
	if n <= c.capacity()-c.off {
		return a.bump(c, 0, n), nil
	}
	return a.allocSlow(n, 1)
}

// allocSlow moves to a chunk that can hold n bytes at align, growing the
// chain if necessary, and allocates from it.
func (a *Arena) allocSlow(n, align int) ([]byte, error) {
	if err := a.advance(n, align); err != nil {
		return nil, err
	}
	c := a.chunks[a.active]
	pad, _ := c.fit(n, align)
	return a.bump(c, pad, n), nil
}

// bump carves pad+n bytes off c and returns the last n of them.
func (a *Arena) bump(c *chunk, pad, n int) []byte {
	start := c.off + pad
	c.off = start + n
	c.allocs++
	c.requested += pad + n
	if c.off > c.peak {
		c.peak = c.off
	}
	a.last = lastAlloc{ok: true, chunk: a.active, start: start, size: n}
	return c.buf[start:c.off:c.off]
}

// advance makes the first chunk able to hold n bytes at align the active
// one. Already reserved chunks after the active chunk are reused before a
// new one is appended.
func (a *Arena) advance(n, align int) error {
	for i := a.active + 1; i < len(a.chunks); i++ {
		if _, ok := a.chunks[i].fit(n, align); ok {
			a.active = i
			return nil
		}
	}
	return a.grow(n, align)
}

// grow appends a chunk of max(2*tail, 2*need) bytes, where need includes
// the alignment for aligned requests.
func (a *Arena) grow(n, align int) error {
	need := n
	if align > 1 {
		if need > math.MaxInt-align {
			return errors.Wrapf(ErrAllocationFailure, "aligned request %d+%d overflows", n, align)
		}
		need += align
	}
	tail := a.chunks[len(a.chunks)-1].capacity()
	if need > math.MaxInt/2 || tail > math.MaxInt/2 {
		return errors.Wrapf(ErrAllocationFailure, "growth for %d bytes overflows", n)
	}
	size := max(2*tail, 2*need)

	buf, err := a.reserve(size)
	if err != nil {
		a.log.Warn("regionarena: failed to grow arena", "chunks", len(a.chunks), "size", size, errAttr(err))
		return err
	}
	a.chunks = append(a.chunks, &chunk{buf: buf})
	a.active = len(a.chunks) - 1
	a.log.Debug("regionarena: grew arena", "chunks", len(a.chunks), "size", size, "request", n)
	return nil
}

// reserve asks the source for n bytes and normalizes its failures to
// ErrAllocationFailure.
func (a *Arena) reserve(n int) ([]byte, error) {
	buf, err := a.src.Reserve(n)
	if err != nil {
		if !errors.Is(err, ErrAllocationFailure) {
			err = errors.Wrapf(ErrAllocationFailure, "reserve %d bytes: %v", n, err)
		}
		return nil, err
	}
	if len(buf) != n {
		_ = a.src.Free(buf)
		return nil, errors.Wrapf(ErrAllocationFailure, "source returned %d bytes, want %d", len(buf), n)
	}
	return buf, nil
}

// EnsureCapacity makes sure the next n bytes can be allocated without
// growth, advancing to a later chunk or growing the arena now if needed.
func (a *Arena) EnsureCapacity(n int) error {
	if err := a.checkLive(); err != nil {
		return err
	}
	if n <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "capacity %d", n)
	}
	if _, ok := a.chunks[a.active].fit(n, 1); ok {
		return nil
	}
	if err := a.advance(n, 1); err != nil {
		return err
	}
	a.last = lastAlloc{}
	return nil
}

// Reset discards every allocation but keeps all chunks for reuse.
// All previously returned slices become invalid.
func (a *Arena) Reset() {
	if a == nil || a.chunks == nil {
		return
	}
	a.truncateAfter(-1)
	a.active = 0
}

// truncateAfter empties every chunk after index i.
func (a *Arena) truncateAfter(i int) {
	for _, c := range a.chunks[i+1:] {
		c.off = 0
		c.allocs = 0
		c.requested = 0
	}
	a.last = lastAlloc{}
}

// Release returns every chunk to the source and makes the arena unusable.
// Calling Release more than once, or on a nil arena, is a no-op.
func (a *Arena) Release() {
	if a == nil || a.chunks == nil {
		return
	}
	for i, c := range a.chunks {
		if err := a.src.Free(c.buf); err != nil {
			a.log.Warn("regionarena: failed to free chunk", "chunk", i, "size", c.capacity(), errAttr(err))
		}
		c.buf = nil
	}
	a.chunks = nil
	a.active = 0
	a.last = lastAlloc{}
}

func (a *Arena) checkLive() error {
	if a == nil || a.chunks == nil {
		return ErrReleased
	}
	return nil
}

// errAttr logs err by its message only; pkg/errors values otherwise print
// their stack traces through slog's %+v formatting.
func errAttr(err error) slog.Attr {
	return slog.String("err", err.Error())
}
