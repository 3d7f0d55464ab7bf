package img

import "fmt"

// Range selects a regularly spaced subset of the pixels along one dimension.
// Start and Stop are both included. Negative values count from the end of
// the dimension: -1 is the last pixel. Start beyond Stop selects the pixels
// in reverse order. Step must be positive.
type Range struct {
	Start int
	Stop  int
	Step  int
}

// All returns the range selecting a whole dimension.
func All() Range {
	return Range{Start: 0, Stop: -1, Step: 1}
}

// NewRange returns the range [start:stop] with unit step.
func NewRange(start, stop int) Range {
	return Range{Start: start, Stop: stop, Step: 1}
}

// fix resolves negative Start/Stop against the dimension size and validates
// the bounds.
func (r Range) fix(size int) (Range, error) {
	if r.Step == 0 {
		r.Step = 1
	}
	if r.Step < 0 {
		return r, fmt.Errorf("range step %d: %w", r.Step, ErrInvalidParameter)
	}
	if r.Start < 0 {
		r.Start += size
	}
	if r.Stop < 0 {
		r.Stop += size
	}
	if r.Start < 0 || r.Start >= size || r.Stop < 0 || r.Stop >= size {
		return r, fmt.Errorf("range [%d:%d] in dimension of size %d: %w", r.Start, r.Stop, size, ErrOutOfRange)
	}
	return r, nil
}

// size returns the number of selected pixels of a fixed range.
func (r Range) size() int {
	if r.Start <= r.Stop {
		return (r.Stop-r.Start)/r.Step + 1
	}
	return (r.Start-r.Stop)/r.Step + 1
}

// view returns a new image sharing this image's data segment.
func (im *Image) view() *Image {
	out := im.QuickCopy()
	out.colorSpace = im.colorSpace
	out.pixelSize = im.pixelSize.clone()
	return out
}

// At extracts the pixel at the given coordinates as a 0-D view of the same
// data segment, keeping the tensor. The image must be forged.
func (im *Image) At(coords ...int) (*Image, error) {
	offset, err := im.Offset(coords)
	if err != nil {
		return nil, fmt.Errorf("At: %w", err)
	}
	out := im.view()
	out.origin += offset * im.dataType.SizeOf()
	out.sizes = Sizes{}
	out.strides = []int{}
	out.pixelSize = PixelSize{}
	return out, nil
}

// AtIndex extracts the pixel with the given linear index. This converts the
// index to coordinates first, so it is an inherently expensive way to
// address pixels in sequence. The image must be forged.
func (im *Image) AtIndex(index int) (*Image, error) {
	if index < 0 || index >= im.NumberOfPixels() {
		return nil, fmt.Errorf("AtIndex: index %d: %w", index, ErrOutOfRange)
	}
	coords, err := im.IndexToCoordinates(index)
	if err != nil {
		return nil, fmt.Errorf("AtIndex: %w", err)
	}
	return im.At(coords...)
}

// AtRange extracts the sub-image selected by one range per dimension, as a
// view of the same data segment. The image must be forged; no data is
// copied.
func (im *Image) AtRange(ranges ...Range) (*Image, error) {
	if !im.IsForged() {
		return nil, fmt.Errorf("AtRange: %w", ErrNotForged)
	}
	if len(ranges) != len(im.sizes) {
		return nil, fmt.Errorf("AtRange: %d ranges for %d dimensions: %w", len(ranges), len(im.sizes), ErrOutOfRange)
	}
	out := im.view()
	szof := im.dataType.SizeOf()
	for i, r := range ranges {
		r, err := r.fix(im.sizes[i])
		if err != nil {
			out.block.release()
			return nil, fmt.Errorf("AtRange: dimension %d: %w", i, err)
		}
		out.origin += r.Start * im.strides[i] * szof
		out.sizes[i] = r.size()
		out.strides[i] = im.strides[i] * r.Step
		if r.Start > r.Stop {
			out.strides[i] = -out.strides[i]
		}
	}
	return out, nil
}

// DefineROI returns a view of src with the given per-dimension origin,
// sizes and spacing; zero-length arrays default to the whole image with
// unit spacing.
func DefineROI(src *Image, origin []int, sizes Sizes, spacing []int) (*Image, error) {
	if !src.IsForged() {
		return nil, fmt.Errorf("DefineROI: %w", ErrNotForged)
	}
	nd := src.Dimensionality()
	ranges := make([]Range, nd)
	for i := 0; i < nd; i++ {
		start, step, n := 0, 1, 0
		if i < len(origin) {
			start = origin[i]
		}
		if i < len(spacing) {
			step = spacing[i]
		}
		if i < len(sizes) {
			n = sizes[i]
		} else {
			n = (src.sizes[i] - start + step - 1) / step
		}
		if n < 1 {
			return nil, fmt.Errorf("DefineROI: empty dimension %d: %w", i, ErrInvalidParameter)
		}
		ranges[i] = Range{Start: start, Stop: start + (n-1)*step, Step: step}
	}
	out, err := src.AtRange(ranges...)
	if err != nil {
		return nil, fmt.Errorf("DefineROI: %w", err)
	}
	return out, nil
}

//
// Tensor indexing
//

// TensorElement extracts tensor element index of every pixel as a scalar
// view of the same data segment. The image must be forged.
func (im *Image) TensorElement(index int) (*Image, error) {
	if !im.IsForged() {
		return nil, fmt.Errorf("TensorElement: %w", ErrNotForged)
	}
	if index < 0 || index >= im.tensor.Elements() {
		return nil, fmt.Errorf("TensorElement: element %d of %d: %w", index, im.tensor.Elements(), ErrOutOfRange)
	}
	out := im.view()
	out.origin += index * im.tensorStride * im.dataType.SizeOf()
	out.tensor = ScalarTensor()
	out.tensorStride = 1
	out.colorSpace = ""
	return out, nil
}

// TensorElementRC extracts tensor element (row, col); elements not stored by
// the tensor shape (off-diagonal of a diagonal matrix, the empty triangle of
// a triangular matrix) cannot be extracted. The image must be forged.
func (im *Image) TensorElementRC(row, col int) (*Image, error) {
	idx, err := im.tensor.storageIndex(row, col)
	if err != nil {
		return nil, fmt.Errorf("TensorElementRC: %w", err)
	}
	return im.TensorElement(idx)
}

// Diagonal extracts the main diagonal of the tensor as a vector view. For
// vector and scalar images this is the image itself; for matrix shapes the
// view addresses the stored diagonal elements. The image must be forged.
func (im *Image) Diagonal() (*Image, error) {
	if !im.IsForged() {
		return nil, fmt.Errorf("Diagonal: %w", ErrNotForged)
	}
	out := im.view()
	out.colorSpace = ""
	switch im.tensor.Shape() {
	case ColumnVector, RowVector:
		out.tensor.SetVector(im.tensor.Elements())
	case DiagonalMatrix, SymmetricMatrix, UpperTriangularMatrix, LowerTriangularMatrix:
		// Stored diagonal-first: the first Rows() elements.
		out.tensor.SetVector(im.tensor.Rows())
	case ColumnMajorMatrix, RowMajorMatrix:
		n := im.tensor.Rows()
		if c := im.tensor.Columns(); c < n {
			n = c
		}
		out.tensor.SetVector(n)
		var step int
		if im.tensor.Shape() == ColumnMajorMatrix {
			step = im.tensor.Rows() + 1
		} else {
			step = im.tensor.Columns() + 1
		}
		out.tensorStride = im.tensorStride * step
	}
	return out, nil
}

//
// Complex component views
//

// Real extracts the real component of a complex image as a view of the same
// data segment. The image must be forged and complex.
func (im *Image) Real() (*Image, error) {
	return im.complexComponent("Real", 0)
}

// Imaginary extracts the imaginary component of a complex image as a view
// of the same data segment. The image must be forged and complex.
func (im *Image) Imaginary() (*Image, error) {
	return im.complexComponent("Imaginary", 1)
}

func (im *Image) complexComponent(op string, comp int) (*Image, error) {
	if !im.IsForged() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotForged)
	}
	if !im.dataType.IsComplex() {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrDataTypeNotSupported, im.dataType)
	}
	out := im.view()
	out.dataType = im.dataType.FloatType()
	doubleStrides(out.strides)
	out.tensorStride *= 2
	out.origin += comp * out.dataType.SizeOf()
	return out, nil
}
