package regionarena

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	a int64
	b int32
	c int16
	d int8
}

func TestAlloc(t *testing.T) {
	a := newTestArena(t, 1024)

	ptr, err := Alloc[int](a)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	assert.Zero(t, *ptr)

	s, err := Alloc[testStruct](a)
	require.NoError(t, err)
	assert.Equal(t, testStruct{}, *s)

	*ptr = 42
	s.a = 100
	assert.Equal(t, 42, *ptr)
	assert.Equal(t, int64(100), s.a)
}

func TestAllocZeroesReusedMemory(t *testing.T) {
	a := newTestArena(t, 1024)

	b, err := a.AllocBytes(64)
	require.NoError(t, err)
	for i := range b {
		b[i] = 0xFF
	}
	a.Reset()

	s, err := Alloc[testStruct](a)
	require.NoError(t, err)
	assert.Equal(t, testStruct{}, *s)

	u, err := AllocUninitialized[int64](a)
	require.NoError(t, err)
	*u = 123
	assert.Equal(t, int64(123), *u)
}

func TestAllocAlignment(t *testing.T) {
	a := newTestArena(t, 1024)

	_, err := Alloc[int8](a)
	require.NoError(t, err)
	p64, err := Alloc[int64](a)
	require.NoError(t, err)
	_, err = Alloc[int8](a)
	require.NoError(t, err)
	p32, err := Alloc[int32](a)
	require.NoError(t, err)
	ps, err := Alloc[testStruct](a)
	require.NoError(t, err)

	assert.Zero(t, uintptr(unsafe.Pointer(p64))%unsafe.Alignof(int64(0)))
	assert.Zero(t, uintptr(unsafe.Pointer(p32))%unsafe.Alignof(int32(0)))
	assert.Zero(t, uintptr(unsafe.Pointer(ps))%unsafe.Alignof(testStruct{}))
}

func TestAllocZeroSizeType(t *testing.T) {
	a := newTestArena(t, 64)

	p, err := Alloc[struct{}](a)
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.Equal(t, Mark(0), a.Mark())

	s, err := AllocSlice[struct{}](a, 10)
	require.NoError(t, err)
	assert.Len(t, s, 10)
}

func TestAllocSlice(t *testing.T) {
	a := newTestArena(t, 1024)

	s, err := AllocSlice[int32](a, 10)
	require.NoError(t, err)
	assert.Len(t, s, 10)
	assert.Equal(t, 10, cap(s))
	for i := range s {
		s[i] = int32(i * i)
	}
	assert.Equal(t, int32(81), s[9])

	_, err = AllocSlice[int](a, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = AllocSlice[int](a, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = AllocSlice[int64](a, math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAllocSliceZeroed(t *testing.T) {
	a := newTestArena(t, 1024)

	b, err := a.AllocBytes(512)
	require.NoError(t, err)
	for i := range b {
		b[i] = 0xAB
	}
	a.Reset()

	s, err := AllocSliceZeroed[uint64](a, 64)
	require.NoError(t, err)
	for i, v := range s {
		require.Zero(t, v, "element %d", i)
	}
}

func TestAllocSliceGrowth(t *testing.T) {
	a := newTestArena(t, 64)

	s, err := AllocSlice[float64](a, 100)
	require.NoError(t, err)
	assert.Len(t, s, 100)
	assert.Equal(t, 2, a.NumChunks())
}

func TestStrings(t *testing.T) {
	a := newTestArena(t, 256)

	s, err := CopyString(a, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	c, err := Concat(a, "foo", "bar", "baz")
	require.NoError(t, err)
	assert.Equal(t, "foobarbaz", c)

	p, err := Join(a, "/", "usr", "local", "bin")
	require.NoError(t, err)
	assert.Equal(t, "usr/local/bin", p)

	empty, err := Join(a, ",")
	require.NoError(t, err)
	assert.Equal(t, "", empty)

	before := a.Mark()
	e, err := CopyString(a, "")
	require.NoError(t, err)
	assert.Equal(t, "", e)
	assert.Equal(t, before, a.Mark())

	assert.Equal(t, Mark(5+9+13), a.Mark())
}

func TestStringsAfterRelease(t *testing.T) {
	a, err := New(64)
	require.NoError(t, err)
	a.Release()

	_, err = CopyString(a, "x")
	assert.ErrorIs(t, err, ErrReleased)
	_, err = Alloc[int](a)
	assert.ErrorIs(t, err, ErrReleased)
	_, err = Alloc[struct{}](a)
	assert.ErrorIs(t, err, ErrReleased)
	_, err = AllocSlice[int](a, 4)
	assert.ErrorIs(t, err, ErrReleased)
}
