package regionarena

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// Alloc returns a pointer to a zeroed T stored inside the arena, aligned for
// T. T must not contain Go pointers: arena memory is not scanned by the
// garbage collector. The pointer is valid until the arena is reset past it
// or released.
func Alloc[T any](a *Arena) (*T, error) {
	p, err := AllocUninitialized[T](a)
	if err != nil {
		return nil, err
	}
	var zero T
	*p = zero
	return p, nil
}

// AllocUninitialized returns a *T located in the arena without zeroing
// memory. The contents are whatever the chunk held before.
func AllocUninitialized[T any](a *Arena) (*T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		if err := a.checkLive(); err != nil {
			return nil, err
		}
		return new(T), nil
	}
	b, err := a.AllocAligned(size, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The slice elements are not initialized.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "slice length %d", n)
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		if err := a.checkLive(); err != nil {
			return nil, err
		}
		return make([]T, n), nil
	}
	if n > math.MaxInt/elemSize {
		return nil, errors.Wrapf(ErrInvalidArgument, "slice of %d elements of %d bytes overflows", n, elemSize)
	}
	b, err := a.AllocAligned(elemSize*n, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// AllocSliceZeroed allocates a slice of n zeroed elements of type T.
func AllocSliceZeroed[T any](a *Arena, n int) ([]T, error) {
	s, err := AllocSlice[T](a, n)
	if err != nil {
		return nil, err
	}
	clear(s)
	return s, nil
}

// CopyString copies s into the arena and returns a string backed by arena
// memory. The empty string is returned as is.
func CopyString(a *Arena, s string) (string, error) {
	return Concat(a, s)
}

// Concat builds the concatenation of parts inside the arena.
func Concat(a *Arena, parts ...string) (string, error) {
	return Join(a, "", parts...)
}

// Join concatenates elems with sep between them inside the arena, like
// strings.Join. It is handy for building paths and keys per request.
func Join(a *Arena, sep string, elems ...string) (string, error) {
	if err := a.checkLive(); err != nil {
		return "", err
	}
	n := 0
	for i, e := range elems {
		if i > 0 {
			n += len(sep)
		}
		n += len(e)
	}
	if n == 0 {
		return "", nil
	}

	b, err := a.AllocBytes(n)
	if err != nil {
		return "", err
	}
	w := 0
	for i, e := range elems {
		if i > 0 {
			w += copy(b[w:], sep)
		}
		w += copy(b[w:], e)
	}
	return unsafe.String(unsafe.SliceData(b), n), nil
}
