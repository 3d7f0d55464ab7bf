package img

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustImage forges an image or fails the test.
func mustImage(t *testing.T, sizes Sizes, tensorElems int, dt DataType) *Image {
	t.Helper()
	im, err := NewImage(sizes, tensorElems, dt)
	require.NoError(t, err)
	return im
}

func TestNewIsRawScalar(t *testing.T) {
	im := New()
	assert.False(t, im.IsForged())
	assert.Equal(t, 0, im.Dimensionality())
	assert.True(t, im.IsScalar())
	assert.Equal(t, Float32, im.DataType())
	assert.Equal(t, 1, im.NumberOfPixels())
}

func TestNewImageForges(t *testing.T) {
	im := mustImage(t, Sizes{4, 3}, 2, Uint16)
	assert.True(t, im.IsForged())
	assert.Equal(t, Sizes{4, 3}, im.Sizes())
	assert.Equal(t, 12, im.NumberOfPixels())
	assert.Equal(t, 24, im.NumberOfSamples())
	assert.Equal(t, 2, im.TensorElements())
	assert.True(t, im.HasNormalStrides())
	assert.Equal(t, []int{2, 8}, im.Strides())
	assert.Equal(t, 1, im.TensorStride())

	data, err := im.Data()
	require.NoError(t, err)
	assert.Len(t, data, 24*Uint16.SizeOf())
	for _, b := range data {
		assert.Zero(t, b)
	}
}

func TestSettersRequireRawState(t *testing.T) {
	im := New()
	require.NoError(t, im.SetSizes(Sizes{5, 5}))
	require.NoError(t, im.SetDataType(Int32))
	require.NoError(t, im.SetTensorElements(3))
	require.NoError(t, im.Forge())

	assert.ErrorIs(t, im.SetSizes(Sizes{2}), ErrNotRaw)
	assert.ErrorIs(t, im.SetDataType(Uint8), ErrNotRaw)
	assert.ErrorIs(t, im.SetTensorElements(1), ErrNotRaw)
	assert.ErrorIs(t, im.SetStrides([]int{1}), ErrNotRaw)
	assert.ErrorIs(t, im.SetTensorStride(1), ErrNotRaw)
	assert.ErrorIs(t, im.SetTensor(VectorTensor(2)), ErrNotRaw)
	assert.ErrorIs(t, im.Forge(), ErrNotRaw)

	require.NoError(t, im.Strip())
	assert.False(t, im.IsForged())
	require.NoError(t, im.SetSizes(Sizes{2}))
}

func TestSetSizesRejectsNegative(t *testing.T) {
	im := New()
	assert.Error(t, im.SetSizes(Sizes{3, -1}))
}

func TestZeroSizeImage(t *testing.T) {
	im := mustImage(t, Sizes{0, 5}, 1, Uint8)
	assert.True(t, im.IsForged())
	assert.Equal(t, 0, im.NumberOfPixels())
	data, err := im.Data()
	require.NoError(t, err)
	assert.Empty(t, data)
	require.NoError(t, im.Fill(IntSample(1))) // no samples, no effect
}

func TestProtectFlag(t *testing.T) {
	im := mustImage(t, Sizes{3}, 1, Uint8)
	im.Protect(true)
	assert.True(t, im.IsProtected())
	assert.ErrorIs(t, im.Strip(), ErrProtected)
	assert.True(t, im.IsForged())

	im.Protect(false)
	require.NoError(t, im.Strip())
	assert.False(t, im.IsForged())
}

func TestCopyProperties(t *testing.T) {
	src := mustImage(t, Sizes{4, 2}, 3, Float64)
	src.SetColorSpace("RGB")
	var ps PixelSize
	ps.Set(0, PhysicalQuantity{Magnitude: 0.5, Units: "um"})
	src.SetPixelSize(ps)

	dst := New()
	require.NoError(t, dst.CopyProperties(src))
	assert.False(t, dst.IsForged())
	assert.Equal(t, src.Sizes(), dst.Sizes())
	assert.Equal(t, src.DataType(), dst.DataType())
	assert.Equal(t, src.TensorElements(), dst.TensorElements())
	assert.Equal(t, "RGB", dst.ColorSpace())
	assert.Equal(t, PhysicalQuantity{Magnitude: 0.5, Units: "um"}, dst.PixelSize().Get(0))

	assert.ErrorIs(t, src.CopyProperties(dst), ErrNotRaw)
}

func TestQuickCopySharesData(t *testing.T) {
	im := mustImage(t, Sizes{3, 3}, 1, Uint8)
	im.SetColorSpace("grey")
	im.Protect(true)

	qc := im.QuickCopy()
	shares, err := qc.SharesData(im)
	require.NoError(t, err)
	assert.True(t, shares)
	ident, err := qc.IsIdenticalView(im)
	require.NoError(t, err)
	assert.True(t, ident)

	// Color space and protection do not travel with a quick copy.
	assert.False(t, qc.IsColor())
	assert.False(t, qc.IsProtected())

	// Writing through the copy is visible in the original.
	require.NoError(t, qc.FillInt(9))
	v, err := im.SampleAt(0, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(9), v.Int())
}

func TestNewScalar(t *testing.T) {
	im, err := NewScalar(FloatSample(300), Uint8)
	require.NoError(t, err)
	assert.Equal(t, 0, im.Dimensionality())
	v, err := im.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(255), v, "value should saturate at the type maximum")

	im2, err := NewScalar(FloatSample(2.5), Float64)
	require.NoError(t, err)
	f, err := im2.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)
}

func TestNewFromData(t *testing.T) {
	data := []byte{10, 20, 30, 40, 50, 60}
	im, err := NewFromData(data, Uint8, Sizes{3, 2}, []int{1, 3}, ScalarTensor(), 1)
	require.NoError(t, err)
	assert.True(t, im.IsForged())

	v, err := im.SampleAt(0, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(60), v.Int())

	// The data is shared, not copied.
	require.NoError(t, im.SetSampleAt(IntSample(99), 0, 0, 0))
	assert.Equal(t, byte(99), data[0])
}

func TestNewFromDataValidation(t *testing.T) {
	_, err := NewFromData([]byte{0, 0}, Uint8, Sizes{2}, []int{1, 1}, ScalarTensor(), 1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	// A buffer shorter than the extent the strides address is rejected up
	// front instead of faulting on access.
	_, err = NewFromData(make([]byte, 2), Uint8, Sizes{4}, []int{1}, ScalarTensor(), 1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = NewFromData(make([]byte, 15), Int32, Sizes{4}, []int{1}, ScalarTensor(), 1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDataRequiresForged(t *testing.T) {
	im := New()
	_, err := im.Data()
	assert.ErrorIs(t, err, ErrNotForged)
	_, err = im.SampleAt(0)
	assert.ErrorIs(t, err, ErrNotForged)
}
