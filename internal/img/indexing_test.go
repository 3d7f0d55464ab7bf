package img

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtWritesThrough(t *testing.T) {
	im := mustImage(t, Sizes{4, 3}, 1, Uint8)
	fillRamp(t, im)

	px, err := im.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, px.Dimensionality())
	v, err := px.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(2+1*4), v)

	require.NoError(t, px.FillInt(99))
	assert.Equal(t, int64(99), sampleInt(t, im, 0, 2, 1))

	_, err = im.At(4, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = im.At(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestAtKeepsTensor(t *testing.T) {
	im := mustImage(t, Sizes{2, 2}, 3, Uint8)
	px, err := im.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, px.TensorElements())
}

func TestAtIndex(t *testing.T) {
	im := mustImage(t, Sizes{4, 3}, 1, Uint8)
	fillRamp(t, im)

	for i := 0; i < im.NumberOfPixels(); i++ {
		px, err := im.AtIndex(i)
		require.NoError(t, err)
		v, err := px.AsInt()
		require.NoError(t, err)
		assert.Equal(t, int64(i), v)
	}

	_, err := im.AtIndex(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = im.AtIndex(12)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestAtRange(t *testing.T) {
	im := mustImage(t, Sizes{10}, 1, Uint8)
	fillRamp(t, im)

	// Start and stop are both included.
	v, err := im.AtRange(Range{Start: 2, Stop: 8, Step: 2})
	require.NoError(t, err)
	assert.Equal(t, Sizes{4}, v.Sizes())
	for i, want := range []int64{2, 4, 6, 8} {
		assert.Equal(t, want, sampleInt(t, v, 0, i))
	}

	// Negative bounds count from the end.
	v, err = im.AtRange(NewRange(-3, -1))
	require.NoError(t, err)
	assert.Equal(t, Sizes{3}, v.Sizes())
	assert.Equal(t, int64(7), sampleInt(t, v, 0, 0))

	// Start beyond stop walks backwards.
	v, err = im.AtRange(Range{Start: 8, Stop: 2, Step: 2})
	require.NoError(t, err)
	assert.Equal(t, Sizes{4}, v.Sizes())
	for i, want := range []int64{8, 6, 4, 2} {
		assert.Equal(t, want, sampleInt(t, v, 0, i))
	}
}

func TestAtRangeWritesThrough(t *testing.T) {
	im := mustImage(t, Sizes{6, 6}, 1, Uint8)
	roi, err := im.AtRange(NewRange(2, 4), NewRange(2, 4))
	require.NoError(t, err)
	require.NoError(t, roi.FillInt(1))

	assert.Equal(t, int64(1), sampleInt(t, im, 0, 3, 3))
	assert.Equal(t, int64(0), sampleInt(t, im, 0, 1, 3))
	assert.Equal(t, int64(0), sampleInt(t, im, 0, 5, 5))
}

func TestAtRangeValidation(t *testing.T) {
	im := mustImage(t, Sizes{4, 4}, 1, Uint8)
	_, err := im.AtRange(All())
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = im.AtRange(NewRange(0, 4), All())
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = im.AtRange(Range{Start: 0, Stop: 2, Step: -1}, All())
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDefineROI(t *testing.T) {
	im := mustImage(t, Sizes{8, 8}, 1, Uint8)
	fillRamp(t, im)

	roi, err := DefineROI(im, []int{2, 2}, Sizes{3, 3}, []int{2, 2})
	require.NoError(t, err)
	assert.Equal(t, Sizes{3, 3}, roi.Sizes())
	assert.Equal(t, int64(2+2*8), sampleInt(t, roi, 0, 0, 0))
	assert.Equal(t, int64(4+6*8), sampleInt(t, roi, 0, 1, 2))

	// Defaults: whole image, unit spacing.
	roi, err = DefineROI(im, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, im.Sizes(), roi.Sizes())

	_, err = DefineROI(im, []int{7, 0}, Sizes{3, 1}, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTensorElementView(t *testing.T) {
	im := mustImage(t, Sizes{3, 2}, 3, Uint16)
	im.SetColorSpace("RGB")

	green, err := im.TensorElement(1)
	require.NoError(t, err)
	assert.True(t, green.IsScalar())
	assert.False(t, green.IsColor(), "a single channel has no color semantics")

	require.NoError(t, green.FillInt(500))
	assert.Equal(t, int64(500), sampleInt(t, im, 1, 2, 1))
	assert.Equal(t, int64(0), sampleInt(t, im, 0, 2, 1))
	assert.Equal(t, int64(0), sampleInt(t, im, 2, 2, 1))

	_, err = im.TensorElement(3)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTensorElementRC(t *testing.T) {
	im := mustImage(t, Sizes{2}, 6, Float32)
	require.NoError(t, im.ReshapeTensor(2, 3))

	el, err := im.TensorElementRC(1, 2)
	require.NoError(t, err)
	require.NoError(t, el.FillFloat(2.5))
	// Column-major 2×3: (1,2) is stored element 1 + 2*2 = 5.
	v, err := im.SampleAt(5, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, v.Float())
}

func TestDiagonalOfMatrixImage(t *testing.T) {
	im := mustImage(t, Sizes{2}, 9, Uint8)
	// Reorganize the 9 elements as a 3×3 column-major matrix.
	require.NoError(t, im.ReshapeTensor(3, 3))
	for e := 0; e < 9; e++ {
		require.NoError(t, im.SetSampleAt(IntSample(int64(e)), e, 0))
	}

	d, err := im.Diagonal()
	require.NoError(t, err)
	assert.True(t, d.IsVector())
	assert.Equal(t, 3, d.TensorElements())
	// Column-major diagonal elements sit at stored positions 0, 4, 8.
	assert.Equal(t, int64(0), sampleInt(t, d, 0, 0))
	assert.Equal(t, int64(4), sampleInt(t, d, 1, 0))
	assert.Equal(t, int64(8), sampleInt(t, d, 2, 0))
}

func TestDiagonalOfCompactShapes(t *testing.T) {
	sym, _ := NewTensor(SymmetricMatrix, 3, 3)
	im := New()
	require.NoError(t, im.SetSizes(Sizes{2}))
	require.NoError(t, im.SetDataType(Uint8))
	require.NoError(t, im.SetTensor(sym))
	require.NoError(t, im.Forge())
	for e := 0; e < 6; e++ {
		require.NoError(t, im.SetSampleAt(IntSample(int64(10+e)), e, 0))
	}

	d, err := im.Diagonal()
	require.NoError(t, err)
	assert.Equal(t, 3, d.TensorElements())
	// Compact shapes store the diagonal first.
	assert.Equal(t, int64(10), sampleInt(t, d, 0, 0))
	assert.Equal(t, int64(11), sampleInt(t, d, 1, 0))
	assert.Equal(t, int64(12), sampleInt(t, d, 2, 0))
}

func TestRealAndImaginaryViews(t *testing.T) {
	im := mustImage(t, Sizes{3}, 1, Complex64)
	for i := 0; i < 3; i++ {
		require.NoError(t, im.SetSampleAt(ComplexSample(complex(float64(i+1), float64(10*(i+1)))), 0, i))
	}

	re, err := im.Real()
	require.NoError(t, err)
	assert.Equal(t, Float32, re.DataType())
	assert.Equal(t, im.Sizes(), re.Sizes())
	for i := 0; i < 3; i++ {
		v, err := re.SampleAt(0, i)
		require.NoError(t, err)
		assert.Equal(t, float64(i+1), v.Float())
	}

	imag, err := im.Imaginary()
	require.NoError(t, err)
	v, err := imag.SampleAt(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 30.0, v.Float())

	// Writing the component changes the complex sample.
	require.NoError(t, imag.SetSampleAt(FloatSample(-5), 0, 0))
	c, err := im.SampleAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, complex(1, -5), c.Complex())

	// Component views of a non-complex image are not defined.
	flt := mustImage(t, Sizes{2}, 1, Float32)
	_, err = flt.Real()
	assert.ErrorIs(t, err, ErrDataTypeNotSupported)
}
