package img

import "fmt"

// PermuteDimensions re-arranges the dimensions of the image in the given
// order: dimension order[i] of the old image becomes dimension i. Dimensions
// not referenced in order are removed, which is only allowed when their size
// is 1. The image must be forged; no data is copied.
func (im *Image) PermuteDimensions(order []int) error {
	if !im.IsForged() {
		return fmt.Errorf("PermuteDimensions: %w", ErrNotForged)
	}
	nd := len(im.sizes)
	seen := make([]bool, nd)
	for _, o := range order {
		if o < 0 || o >= nd {
			return fmt.Errorf("PermuteDimensions: dimension %d: %w", o, ErrOutOfRange)
		}
		if seen[o] {
			return fmt.Errorf("PermuteDimensions: %w: dimension %d referenced twice", ErrInvalidParameter, o)
		}
		seen[o] = true
	}
	for i, s := range seen {
		if !s && im.sizes[i] != 1 {
			return fmt.Errorf("PermuteDimensions: %w: dimension %d of size %d dropped", ErrInvalidParameter, i, im.sizes[i])
		}
	}
	sizes := make(Sizes, len(order))
	strides := make([]int, len(order))
	for i, o := range order {
		sizes[i] = im.sizes[o]
		strides[i] = im.strides[o]
	}
	im.pixelSize.permuteDimensions(order)
	im.sizes = sizes
	im.strides = strides
	return nil
}

// SwapDimensions exchanges dimensions dim1 and dim2. The image must be
// forged; no data is copied.
func (im *Image) SwapDimensions(dim1, dim2 int) error {
	if !im.IsForged() {
		return fmt.Errorf("SwapDimensions: %w", ErrNotForged)
	}
	nd := len(im.sizes)
	if dim1 < 0 || dim1 >= nd || dim2 < 0 || dim2 >= nd {
		return fmt.Errorf("SwapDimensions: %w", ErrOutOfRange)
	}
	im.sizes[dim1], im.sizes[dim2] = im.sizes[dim2], im.sizes[dim1]
	im.strides[dim1], im.strides[dim2] = im.strides[dim2], im.strides[dim1]
	im.pixelSize.swapDimensions(dim1, dim2)
	return nil
}

// Squeeze removes all dimensions of size 1. The image must be forged; no
// data is copied.
func (im *Image) Squeeze() error {
	if !im.IsForged() {
		return fmt.Errorf("Squeeze: %w", ErrNotForged)
	}
	sizes := im.sizes[:0]
	strides := im.strides[:0]
	for i, sz := range im.sizes {
		if sz != 1 {
			sizes = append(sizes, sz)
			strides = append(strides, im.strides[i])
		} else {
			im.pixelSize.eraseDimension(len(sizes))
		}
	}
	im.sizes = sizes
	im.strides = strides
	return nil
}

// AddSingleton inserts a dimension of size 1 at position dim, shifting
// subsequent dimensions up by one. The new dimension has stride 0. The image
// must be forged; no data is copied.
func (im *Image) AddSingleton(dim int) error {
	if !im.IsForged() {
		return fmt.Errorf("AddSingleton: %w", ErrNotForged)
	}
	if dim < 0 || dim > len(im.sizes) {
		return fmt.Errorf("AddSingleton: dimension %d: %w", dim, ErrOutOfRange)
	}
	im.sizes = append(im.sizes, 0)
	copy(im.sizes[dim+1:], im.sizes[dim:])
	im.sizes[dim] = 1
	im.strides = append(im.strides, 0)
	copy(im.strides[dim+1:], im.strides[dim:])
	im.strides[dim] = 0
	im.pixelSize.insertDimension(dim)
	return nil
}

// ExpandDimensionality appends singleton dimensions until the image has n
// dimensions; an image that already has n or more is left alone. The image
// must be forged; no data is copied.
func (im *Image) ExpandDimensionality(n int) error {
	if !im.IsForged() {
		return fmt.Errorf("ExpandDimensionality: %w", ErrNotForged)
	}
	for len(im.sizes) < n {
		im.sizes = append(im.sizes, 1)
		im.strides = append(im.strides, 0)
	}
	return nil
}

// ExpandSingletonDimension turns the size-1 dimension dim into a broadcast
// dimension of the given size by setting its stride to 0: all positions
// along dim read the same underlying samples. The image must be forged; no
// data is copied.
func (im *Image) ExpandSingletonDimension(dim, size int) error {
	if !im.IsForged() {
		return fmt.Errorf("ExpandSingletonDimension: %w", ErrNotForged)
	}
	if dim < 0 || dim >= len(im.sizes) {
		return fmt.Errorf("ExpandSingletonDimension: dimension %d: %w", dim, ErrOutOfRange)
	}
	if im.sizes[dim] != 1 {
		return fmt.Errorf("ExpandSingletonDimension: %w: dimension %d has size %d", ErrInvalidParameter, dim, im.sizes[dim])
	}
	im.sizes[dim] = size
	im.strides[dim] = 0
	return nil
}

// Mirror reverses the image along each dimension with a true entry in
// process, by negating the stride and moving the origin. The image must be
// forged; no data is copied.
func (im *Image) Mirror(process []bool) error {
	if !im.IsForged() {
		return fmt.Errorf("Mirror: %w", ErrNotForged)
	}
	if len(process) != len(im.sizes) {
		return fmt.Errorf("Mirror: %d flags for %d dimensions: %w", len(process), len(im.sizes), ErrInvalidParameter)
	}
	szof := im.dataType.SizeOf()
	for i, p := range process {
		if !p {
			continue
		}
		im.origin += (im.sizes[i] - 1) * im.strides[i] * szof
		im.strides[i] = -im.strides[i]
	}
	return nil
}

// Flatten collapses the image to one dimension. When a simple stride exists
// this is a zero-copy view (note the pixel order then follows the strides,
// not the linear index order); otherwise the data is copied into a compact
// segment first, the only view operation allowed to copy. Copying replaces
// the data segment, so it fails on a protected image.
func (im *Image) Flatten() error {
	if !im.IsForged() {
		return fmt.Errorf("Flatten: %w", ErrNotForged)
	}
	stride, originByte, ok := im.SimpleStride()
	if !ok {
		if im.protect {
			return fmt.Errorf("Flatten: %w", ErrProtected)
		}
		tmp := New()
		tmp.dataType = im.dataType
		tmp.sizes = im.sizes.Clone()
		tmp.tensor = im.tensor
		if err := tmp.Forge(); err != nil {
			return fmt.Errorf("Flatten: %w", err)
		}
		if err := tmp.Copy(im); err != nil {
			return fmt.Errorf("Flatten: %w", err)
		}
		im.block.release()
		im.block = tmp.block
		im.origin = tmp.origin
		im.strides = tmp.strides
		im.tensorStride = tmp.tensorStride
		stride, originByte, _ = im.SimpleStride()
	}
	im.sizes = Sizes{im.NumberOfPixels()}
	im.strides = []int{stride}
	im.origin = originByte
	im.pixelSize.Clear()
	return nil
}

//
// Tensor reshaping
//

// ReshapeTensor reorganizes the tensor as a full rows×cols matrix; the
// element count must not change.
func (im *Image) ReshapeTensor(rows, cols int) error {
	if im.tensor.Elements() != rows*cols {
		return fmt.Errorf("ReshapeTensor: %w: %d elements cannot form a %d×%d matrix", ErrInvalidParameter, im.tensor.Elements(), rows, cols)
	}
	return im.tensor.ChangeShape(rows)
}

// ReshapeTensorAsVector reorganizes the tensor as a column vector.
func (im *Image) ReshapeTensorAsVector() *Image {
	im.tensor.SetVector(im.tensor.Elements())
	return im
}

// ReshapeTensorAsDiagonal reorganizes the tensor as a diagonal matrix whose
// diagonal holds the current elements.
func (im *Image) ReshapeTensorAsDiagonal() *Image {
	n := im.tensor.Elements()
	im.tensor = Tensor{shape: DiagonalMatrix, elements: n, rows: n}
	return im
}

// Transpose transposes the tensor without moving samples.
func (im *Image) Transpose() *Image {
	im.tensor.Transpose()
	return im
}

//
// Tensor ⇄ spatial conversion
//

// TensorToSpatial moves the tensor dimension into the spatial dimensions at
// position dim (or last when dim is negative), leaving a scalar image. Works
// for scalar images too, inserting a singleton dimension. The color space is
// reset. The image must be forged; no data is copied.
func (im *Image) TensorToSpatial(dim int) error {
	if !im.IsForged() {
		return fmt.Errorf("TensorToSpatial: %w", ErrNotForged)
	}
	nd := len(im.sizes)
	if dim < 0 {
		dim = nd
	}
	if dim > nd {
		return fmt.Errorf("TensorToSpatial: dimension %d: %w", dim, ErrOutOfRange)
	}
	im.sizes = append(im.sizes, 0)
	copy(im.sizes[dim+1:], im.sizes[dim:])
	im.sizes[dim] = im.tensor.Elements()
	im.strides = append(im.strides, 0)
	copy(im.strides[dim+1:], im.strides[dim:])
	im.strides[dim] = im.tensorStride
	im.pixelSize.insertDimension(dim)
	im.tensor = ScalarTensor()
	im.tensorStride = 1
	im.ResetColorSpace()
	return nil
}

// SpatialToTensor moves spatial dimension dim (or the last when dim is
// negative) into the tensor. When rows or cols is zero its value is derived
// from the size of the dimension; both zero yields a column vector. The
// image must be scalar and forged; no data is copied.
func (im *Image) SpatialToTensor(dim, rows, cols int) error {
	if !im.IsForged() {
		return fmt.Errorf("SpatialToTensor: %w", ErrNotForged)
	}
	if !im.tensor.IsScalar() {
		return fmt.Errorf("SpatialToTensor: %w: image is not scalar", ErrInvalidParameter)
	}
	nd := len(im.sizes)
	if dim < 0 {
		dim = nd - 1
	}
	if dim < 0 || dim >= nd {
		return fmt.Errorf("SpatialToTensor: dimension %d: %w", dim, ErrOutOfRange)
	}
	n := im.sizes[dim]
	switch {
	case rows == 0 && cols == 0:
		rows, cols = n, 1
	case rows == 0:
		if cols <= 0 || n%cols != 0 {
			return fmt.Errorf("SpatialToTensor: %w: %d elements do not fill %d columns", ErrInvalidParameter, n, cols)
		}
		rows = n / cols
	case cols == 0:
		if n%rows != 0 {
			return fmt.Errorf("SpatialToTensor: %w: %d elements do not fill %d rows", ErrInvalidParameter, n, rows)
		}
		cols = n / rows
	}
	if rows*cols != n {
		return fmt.Errorf("SpatialToTensor: %w: %d×%d tensor needs %d samples, dimension has %d", ErrInvalidParameter, rows, cols, rows*cols, n)
	}
	if cols == 1 {
		im.tensor = VectorTensor(rows)
	} else {
		im.tensor = MatrixTensor(rows, cols)
	}
	im.tensorStride = im.strides[dim]
	im.sizes = append(im.sizes[:dim], im.sizes[dim+1:]...)
	im.strides = append(im.strides[:dim], im.strides[dim+1:]...)
	im.pixelSize.eraseDimension(dim)
	im.ResetColorSpace()
	return nil
}

//
// Complex split and merge
//

// SplitComplex reinterprets each complex sample as two real samples along a
// new spatial dimension of size 2 at position dim (or last when dim is
// negative). The image must be forged and complex; no data is copied.
func (im *Image) SplitComplex(dim int) error {
	if !im.IsForged() {
		return fmt.Errorf("SplitComplex: %w", ErrNotForged)
	}
	if !im.dataType.IsComplex() {
		return fmt.Errorf("SplitComplex: %w: %s", ErrDataTypeNotSupported, im.dataType)
	}
	nd := len(im.sizes)
	if dim < 0 {
		dim = nd
	}
	if dim > nd {
		return fmt.Errorf("SplitComplex: dimension %d: %w", dim, ErrOutOfRange)
	}
	im.dataType = im.dataType.FloatType()
	doubleStrides(im.strides)
	im.tensorStride *= 2
	im.sizes = append(im.sizes, 0)
	copy(im.sizes[dim+1:], im.sizes[dim:])
	im.sizes[dim] = 2
	im.strides = append(im.strides, 0)
	copy(im.strides[dim+1:], im.strides[dim:])
	im.strides[dim] = 1
	im.pixelSize.insertDimension(dim)
	return nil
}

// MergeComplex merges pairs of real samples along dimension dim (or the last
// when dim is negative) into complex samples. The dimension must have size 2
// and stride 1, and all other strides must pair up (be even). The image must
// be forged; no data is copied.
func (im *Image) MergeComplex(dim int) error {
	if !im.IsForged() {
		return fmt.Errorf("MergeComplex: %w", ErrNotForged)
	}
	if !im.dataType.IsFloat() {
		return fmt.Errorf("MergeComplex: %w: %s", ErrDataTypeNotSupported, im.dataType)
	}
	nd := len(im.sizes)
	if dim < 0 {
		dim = nd - 1
	}
	if dim < 0 || dim >= nd {
		return fmt.Errorf("MergeComplex: dimension %d: %w", dim, ErrOutOfRange)
	}
	if im.sizes[dim] != 2 || im.strides[dim] != 1 {
		return fmt.Errorf("MergeComplex: %w: dimension %d must have size 2 and stride 1", ErrInvalidParameter, dim)
	}
	strides := append(cloneInts(im.strides[:dim]), im.strides[dim+1:]...)
	if !halveStrides(strides) || im.tensorStride%2 != 0 && im.tensor.Elements() > 1 {
		return fmt.Errorf("MergeComplex: %w: strides do not pair up", ErrInvalidParameter)
	}
	im.dataType = im.dataType.ComplexType()
	im.sizes = append(im.sizes[:dim], im.sizes[dim+1:]...)
	im.strides = strides
	if im.tensor.Elements() > 1 {
		im.tensorStride /= 2
	} else {
		im.tensorStride = 1
	}
	im.pixelSize.eraseDimension(dim)
	return nil
}

// SplitComplexToTensor reinterprets each complex sample as a two-element
// tensor of real samples. The image must be scalar, complex and forged; no
// data is copied.
func (im *Image) SplitComplexToTensor() error {
	if !im.IsForged() {
		return fmt.Errorf("SplitComplexToTensor: %w", ErrNotForged)
	}
	if !im.tensor.IsScalar() {
		return fmt.Errorf("SplitComplexToTensor: %w: image is not scalar", ErrInvalidParameter)
	}
	if !im.dataType.IsComplex() {
		return fmt.Errorf("SplitComplexToTensor: %w: %s", ErrDataTypeNotSupported, im.dataType)
	}
	im.dataType = im.dataType.FloatType()
	doubleStrides(im.strides)
	im.tensor = VectorTensor(2)
	im.tensorStride = 1
	im.ResetColorSpace()
	return nil
}

// MergeTensorToComplex merges the two tensor elements of each pixel into one
// complex sample. The image must be forged with exactly two tensor elements
// at unit tensor stride, and all spatial strides must pair up.
func (im *Image) MergeTensorToComplex() error {
	if !im.IsForged() {
		return fmt.Errorf("MergeTensorToComplex: %w", ErrNotForged)
	}
	if im.tensor.Elements() != 2 || im.tensorStride != 1 {
		return fmt.Errorf("MergeTensorToComplex: %w: need two tensor elements at unit stride", ErrInvalidParameter)
	}
	if !im.dataType.IsFloat() {
		return fmt.Errorf("MergeTensorToComplex: %w: %s", ErrDataTypeNotSupported, im.dataType)
	}
	strides := cloneInts(im.strides)
	if !halveStrides(strides) {
		return fmt.Errorf("MergeTensorToComplex: %w: strides do not pair up", ErrInvalidParameter)
	}
	im.dataType = im.dataType.ComplexType()
	im.strides = strides
	im.tensor = ScalarTensor()
	im.tensorStride = 1
	im.ResetColorSpace()
	return nil
}

func doubleStrides(strides []int) {
	for i := range strides {
		strides[i] *= 2
	}
}

// halveStrides divides all strides by two, reporting false if any is odd.
func halveStrides(strides []int) bool {
	for _, s := range strides {
		if s%2 != 0 {
			return false
		}
	}
	for i := range strides {
		strides[i] /= 2
	}
	return true
}
