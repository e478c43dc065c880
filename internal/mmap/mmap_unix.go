//go:build linux || darwin

package mmap

import "golang.org/x/sys/unix"

// Supported reports whether anonymous mappings are available on this platform.
const Supported = true

// Anonymous maps n bytes of private, zero-filled, read-write memory that is
// not backed by any file.
func Anonymous(n int) ([]byte, error) {
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

// Unmap releases a mapping returned by Anonymous. b must be the exact slice
// Anonymous returned.
func Unmap(b []byte) error {
	return unix.Munmap(b)
}
