package regionarena

import "sync"

// SafeArena is a mutex-protected wrapper around Arena for callers that must
// share one arena between goroutines. Arena itself takes no locks.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena whose head chunk holds
// capacity bytes.
func NewSafeArena(capacity int, opts ...Option) (*SafeArena, error) {
	a, err := New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &SafeArena{a: a}, nil
}

// AllocBytes thread-safely allocates n bytes.
func (s *SafeArena) AllocBytes(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// AllocAligned thread-safely allocates n bytes aligned to align.
func (s *SafeArena) AllocAligned(n, align int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocAligned(n, align)
}

// Realloc thread-safely resizes b to n bytes.
func (s *SafeArena) Realloc(b []byte, n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Realloc(b, n)
}

// EnsureCapacity thread-safely ensures n bytes can be allocated without growth.
func (s *SafeArena) EnsureCapacity(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.EnsureCapacity(n)
}

// Mark thread-safely returns the current position.
func (s *SafeArena) Mark() Mark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Mark()
}

// ResetToMark thread-safely rolls the arena back to m.
func (s *SafeArena) ResetToMark(m Mark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.ResetToMark(m)
}

// Reset thread-safely discards all allocations.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Resize thread-safely changes the capacity of the head chunk.
func (s *SafeArena) Resize(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Resize(n)
}

// Release thread-safely returns all chunks and makes the arena unusable.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// Stats thread-safely returns a usage snapshot.
func (s *SafeArena) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Stats()
}

// SizeInUse thread-safely returns the number of bytes consumed.
func (s *SafeArena) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.SizeInUse()
}

// NumChunks thread-safely returns the number of chunks.
func (s *SafeArena) NumChunks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.NumChunks()
}

// Generic allocation functions for SafeArena

// SafeAlloc thread-safely returns a pointer to a zeroed T inside the arena.
func SafeAlloc[T any](s *SafeArena) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Alloc[T](s.a)
}

// SafeAllocSlice thread-safely allocates a slice of n elements of type T.
func SafeAllocSlice[T any](s *SafeArena, n int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSlice[T](s.a, n)
}
