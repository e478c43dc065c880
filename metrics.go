package regionarena

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
)

// ChunkStats describes one chunk of an arena.
type ChunkStats struct {
	Capacity    int     // Bytes reserved
	Used        int     // Bytes consumed, including alignment padding
	Peak        int     // High-water mark of Used
	Allocations int     // Allocations served since the last reset
	Requested   int     // Bytes handed out plus padding since the last reset
	Utilization float64 // Used / Capacity (0.0-1.0)
}

// Stats contains statistical information about an arena.
type Stats struct {
	Chunks      []ChunkStats
	NumChunks   int
	Capacity    int
	Used        int
	Peak        int
	Allocations int
	Requested   int
	Utilization float64
}

// Stats returns a snapshot of per-chunk and aggregate usage.
func (a *Arena) Stats() Stats {
	var s Stats
	if a == nil || a.chunks == nil {
		return s
	}
	s.Chunks = make([]ChunkStats, 0, len(a.chunks))
	for _, c := range a.chunks {
		s.Chunks = append(s.Chunks, ChunkStats{
			Capacity:    c.capacity(),
			Used:        c.off,
			Peak:        c.peak,
			Allocations: c.allocs,
			Requested:   c.requested,
			Utilization: ratio(c.off, c.capacity()),
		})
		s.Capacity += c.capacity()
		s.Used += c.off
		s.Peak += c.peak
		s.Allocations += c.allocs
		s.Requested += c.requested
	}
	s.NumChunks = len(s.Chunks)
	s.Utilization = ratio(s.Used, s.Capacity)
	return s
}

// SizeInUse returns the total number of bytes currently consumed in the
// arena, including alignment padding.
func (a *Arena) SizeInUse() int {
	return int(a.Mark())
}

// NumChunks returns the number of chunks in the arena.
func (a *Arena) NumChunks() int {
	if a == nil {
		return 0
	}
	return len(a.chunks)
}

// Capacity returns the total capacity (in bytes) of all chunks in the arena.
func (a *Arena) Capacity() int {
	if a == nil {
		return 0
	}
	sum := 0
	for _, c := range a.chunks {
		sum += c.capacity()
	}
	return sum
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	return ratio(a.SizeInUse(), a.Capacity())
}

// WriteStats writes a human-readable usage report to w.
func (a *Arena) WriteStats(w io.Writer) error {
	s := a.Stats()
	ew := &errWriter{w: w}

	ew.printf("\n=== Arena Statistics ===\n")
	for i, c := range s.Chunks {
		ew.printf("Chunk %d:\n", i+1)
		ew.printf("  Size: %d bytes (%s)\n", c.Capacity, humanize.IBytes(uint64(c.Capacity)))
		ew.printf("  Used: %d bytes (%.2f%%)\n", c.Used, c.Utilization*100)
		ew.printf("  Peak: %d bytes\n", c.Peak)
		ew.printf("  Allocations: %d\n", c.Allocations)
	}
	ew.printf("\nTotal Summary:\n")
	ew.printf("  Chunks: %d\n", s.NumChunks)
	ew.printf("  Total Size: %d bytes (%s)\n", s.Capacity, humanize.IBytes(uint64(s.Capacity)))
	ew.printf("  Total Used: %d bytes (%.2f%%)\n", s.Used, s.Utilization*100)
	ew.printf("  Total Allocations: %d\n", s.Allocations)
	ew.printf("========================\n\n")
	return ew.err
}

// PrintStats writes the usage report to standard output.
func (a *Arena) PrintStats() {
	_ = a.WriteStats(os.Stdout)
}

func ratio(used, capacity int) float64 {
	if capacity == 0 {
		return 0
	}
	return float64(used) / float64(capacity)
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
