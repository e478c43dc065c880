// Package regionarena implements a chained region (bump) allocator for Go.
//
// # Overview
//
// An arena reserves a buffer up front and hands out successive slices of it
// by advancing a cursor. There is no per-object free: everything is
// discarded at once with Reset, rolled back to a checkpoint with
// ResetToMark, or returned to the system with Release. This suits
// batch-style work:
//
//   - One arena per request in a server
//   - One arena per frame in a simulation or game loop
//   - One arena per parse pass over an input
//
// # Basic Usage
//
//	a, err := regionarena.New(4096)
//	if err != nil {
//		return err
//	}
//	defer a.Release()
//
//	buf, err := a.AllocBytes(256)            // uninitialized bytes
//	vec, err := a.AllocAligned(64, 16)       // 16-byte aligned
//	n, err := regionarena.Alloc[int64](a)    // zeroed, aligned for T
//	path, err := regionarena.Join(a, "/", "var", "lib", "app")
//
//	a.Reset() // everything above is now invalid
//
// # Growth
//
// When the current chunk cannot satisfy a request the arena appends a new
// chunk of max(2 x last chunk, 2 x request) bytes. Earlier chunks are never
// moved, so slices already handed out stay valid. After Reset the existing
// chunks are reused in order before any new chunk is reserved.
//
// # Checkpoints
//
//	m := a.Mark()
//	scratch, _ := a.AllocBytes(1000)
//	_ = a.ResetToMark(m) // scratch is discarded, a.Mark() == m again
//
// Marks can only move the arena backwards. A mark beyond the current
// position (for example one taken before a Reset) is rejected with
// ErrInvalidMark.
//
// # Reallocation
//
// Realloc extends or shrinks the most recent allocation in place when the
// chunk has room. Any other slice is copied into a fresh allocation and its
// old space is left behind until the next Reset.
//
// # Memory Sources
//
// Chunks come from a Source: HeapSource (default), MmapSource for memory
// outside the Go heap, or a LimitSource wrapping either to enforce a budget.
//
// # Thread Safety
//
// Arena is not safe for concurrent use. Give each goroutine its own arena,
// or wrap one in a SafeArena.
//
// # Diagnostics
//
//	s := a.Stats()
//	fmt.Printf("%d chunks, %.2f%% used\n", s.NumChunks, s.Utilization*100)
//	a.PrintStats()
//
// Reservation failures are returned as ErrAllocationFailure and also
// logged through the arena's slog.Logger (see WithLogger). The metrics
// subpackage exports the same numbers to Prometheus.
package regionarena
