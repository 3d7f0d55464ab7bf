package img

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forEachCoordinate enumerates all pixel coordinates of the image.
func forEachCoordinate(sizes Sizes, fn func(coords []int)) {
	coords := make([]int, len(sizes))
	for {
		fn(coords)
		i := 0
		for ; i < len(sizes); i++ {
			coords[i]++
			if coords[i] < sizes[i] {
				break
			}
			coords[i] = 0
		}
		if i == len(sizes) {
			return
		}
	}
}

func TestOffsetAndIndex(t *testing.T) {
	im := mustImage(t, Sizes{4, 3, 2}, 1, Uint8)

	off, err := im.Offset([]int{1, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, 1*1+2*4+1*12, off)

	idx, err := im.Index([]int{1, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, 1+2*4+1*12, idx, "index enumerates dimension 0 fastest")

	_, err = im.Offset([]int{4, 0, 0})
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = im.Offset([]int{0, 0})
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = im.Index([]int{0, -1, 0})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestOffsetUnchecked(t *testing.T) {
	im := mustImage(t, Sizes{4, 3}, 1, Uint8)
	off, err := im.OffsetUnchecked([]int{-1, 4})
	require.NoError(t, err)
	assert.Equal(t, -1+4*4, off)
}

func TestOffsetToCoordinatesRoundTrip(t *testing.T) {
	im := mustImage(t, Sizes{4, 3, 2}, 1, Uint8)
	cc, err := im.OffsetToCoordinatesComputer()
	require.NoError(t, err)

	forEachCoordinate(im.Sizes(), func(coords []int) {
		off, err := im.Offset(coords)
		require.NoError(t, err)
		assert.Equal(t, coords, cc.Compute(off), "offset %d", off)
	})
}

func TestOffsetToCoordinatesWithViews(t *testing.T) {
	im := mustImage(t, Sizes{5, 4, 3}, 1, Int16)

	v := im.QuickCopy()
	require.NoError(t, v.Mirror([]bool{true, false, true}))
	require.NoError(t, v.SwapDimensions(0, 1))

	cc, err := v.OffsetToCoordinatesComputer()
	require.NoError(t, err)
	forEachCoordinate(v.Sizes(), func(coords []int) {
		off, err := v.Offset(coords)
		require.NoError(t, err)
		assert.Equal(t, coords, cc.Compute(off), "offset %d", off)
	})
}

func TestIndexToCoordinatesRoundTrip(t *testing.T) {
	im := mustImage(t, Sizes{4, 3, 2}, 1, Uint8)

	// Index/coordinate conversion is independent of the memory layout.
	v := im.QuickCopy()
	require.NoError(t, v.Mirror([]bool{false, true, false}))

	cc, err := v.IndexToCoordinatesComputer()
	require.NoError(t, err)
	forEachCoordinate(v.Sizes(), func(coords []int) {
		idx, err := v.Index(coords)
		require.NoError(t, err)
		assert.Equal(t, coords, cc.Compute(idx), "index %d", idx)
	})
}

func TestCoordinatesOfBroadcastDimension(t *testing.T) {
	im := mustImage(t, Sizes{4, 1}, 1, Uint8)
	v := im.QuickCopy()
	require.NoError(t, v.ExpandSingletonDimension(1, 6))

	coords, err := v.OffsetToCoordinates(3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0}, coords, "broadcast dimensions decode to coordinate 0")
}

func TestCoordsComputerRequiresForged(t *testing.T) {
	im := New()
	_, err := im.OffsetToCoordinatesComputer()
	assert.ErrorIs(t, err, ErrNotForged)
	_, err = im.IndexToCoordinatesComputer()
	assert.ErrorIs(t, err, ErrNotForged)
	_, err = im.Offset(nil)
	assert.ErrorIs(t, err, ErrNotForged)
}
