package regionarena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAlignedInvalidAlignment(t *testing.T) {
	a := newTestArena(t, 1024)

	for _, align := range []int{3, 0, -4, 6, 100} {
		_, err := a.AllocAligned(64, align)
		require.ErrorIs(t, err, ErrInvalidAlignment, "align %d", align)
		assert.ErrorIs(t, err, ErrInvalidArgument, "align %d", align)
	}
	assert.Equal(t, Mark(0), a.Mark(), "rejected requests consume nothing")

	_, err := a.AllocAligned(0, 8)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAllocAlignedAddress(t *testing.T) {
	a := newTestArena(t, 4096)

	for _, align := range []int{1, 2, 4, 8, 16, 32, 64, 128, 256, 1024} {
		// Knock the cursor off any natural boundary first.
		_, err := a.AllocBytes(3)
		require.NoError(t, err)

		b, err := a.AllocAligned(24, align)
		require.NoError(t, err)
		require.Len(t, b, 24)
		addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
		assert.Zero(t, addr%uintptr(align), "align %d: address %#x", align, addr)
	}
}

func TestAllocAlignedPaddingCounted(t *testing.T) {
	a := newTestArena(t, 1024)

	_, err := a.AllocBytes(1)
	require.NoError(t, err)
	b, err := a.AllocAligned(8, 64)
	require.NoError(t, err)

	c := a.chunks[0]
	start := offsetIn(b, c.buf)
	pad := start - 1
	assert.GreaterOrEqual(t, pad, 0)
	assert.Less(t, pad, 64)
	assert.Equal(t, start+8, c.off)
	assert.Equal(t, Mark(start+8), a.Mark())
	assert.Equal(t, 1+pad+8, c.requested, "padding counts as consumed")
	assert.Equal(t, 2, c.allocs)
}

func TestAllocAlignedGrowth(t *testing.T) {
	a := newTestArena(t, 64)

	_, err := a.AllocBytes(60)
	require.NoError(t, err)

	b, err := a.AllocAligned(100, 256)
	require.NoError(t, err)
	require.Equal(t, 2, a.NumChunks())
	assert.Equal(t, 2*(100+256), a.chunks[1].capacity(), "growth reserves room for the alignment")
	assert.True(t, within(b, a.chunks[1].buf))
	assert.Zero(t, uintptr(unsafe.Pointer(unsafe.SliceData(b)))%256)
}

func TestAlignForward(t *testing.T) {
	tests := []struct {
		p, align, want uintptr
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{17, 16, 32},
		{5, 1, 5},
		{4095, 4096, 4096},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, alignForward(tt.p, tt.align), "alignForward(%d, %d)", tt.p, tt.align)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, x := range []int{1, 2, 4, 64, 1 << 20} {
		assert.True(t, isPowerOfTwo(x), "%d", x)
	}
	for _, x := range []int{0, -1, -8, 3, 12, 1<<20 + 1} {
		assert.False(t, isPowerOfTwo(x), "%d", x)
	}
}
