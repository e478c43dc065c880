//go:build !linux && !darwin

package mmap

import "github.com/pkg/errors"

// Supported reports whether anonymous mappings are available on this platform.
const Supported = false

var errUnsupported = errors.New("mmap: anonymous mappings are not supported on this platform")

// Anonymous always fails on this platform.
func Anonymous(n int) ([]byte, error) {
	return nil, errUnsupported
}

// Unmap always fails on this platform.
func Unmap(b []byte) error {
	return errUnsupported
}
