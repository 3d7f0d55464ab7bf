package img

import "fmt"

// TensorShape describes how the samples of one pixel are organized.
// Matrix shapes with redundant or implicit elements (diagonal, symmetric,
// triangular) store only the independent elements.
type TensorShape int

// Supported tensor shapes.
const (
	// ColumnVector is a vector of n elements; a scalar pixel is a
	// ColumnVector with one element.
	ColumnVector TensorShape = iota
	// RowVector is the transpose of ColumnVector.
	RowVector
	// ColumnMajorMatrix stores a full matrix column by column.
	ColumnMajorMatrix
	// RowMajorMatrix stores a full matrix row by row.
	RowMajorMatrix
	// DiagonalMatrix stores only the n diagonal elements of an n×n matrix.
	DiagonalMatrix
	// SymmetricMatrix stores the n diagonal elements followed by the
	// n(n-1)/2 upper-triangle elements, column-wise.
	SymmetricMatrix
	// UpperTriangularMatrix uses the same storage order as SymmetricMatrix,
	// with the lower triangle implicitly zero.
	UpperTriangularMatrix
	// LowerTriangularMatrix is the transpose of UpperTriangularMatrix.
	LowerTriangularMatrix
)

// String returns a human-readable name for the tensor shape.
func (ts TensorShape) String() string {
	switch ts {
	case ColumnVector:
		return "column vector"
	case RowVector:
		return "row vector"
	case ColumnMajorMatrix:
		return "column-major matrix"
	case RowMajorMatrix:
		return "row-major matrix"
	case DiagonalMatrix:
		return "diagonal matrix"
	case SymmetricMatrix:
		return "symmetric matrix"
	case UpperTriangularMatrix:
		return "upper triangular matrix"
	case LowerTriangularMatrix:
		return "lower triangular matrix"
	default:
		return "unknown"
	}
}

// Tensor describes the per-pixel sample grouping of an image: how many
// samples each pixel carries and how they are arranged. The zero value is a
// scalar (one sample per pixel).
type Tensor struct {
	shape    TensorShape
	elements int
	rows     int
}

// ScalarTensor returns the descriptor for scalar (grey-value) pixels.
func ScalarTensor() Tensor {
	return Tensor{shape: ColumnVector, elements: 1, rows: 1}
}

// VectorTensor returns the descriptor for pixels holding a column vector of
// n samples.
func VectorTensor(n int) Tensor {
	if n < 1 {
		n = 1
	}
	return Tensor{shape: ColumnVector, elements: n, rows: n}
}

// MatrixTensor returns the descriptor for pixels holding a full column-major
// rows×cols matrix.
func MatrixTensor(rows, cols int) Tensor {
	return Tensor{shape: ColumnMajorMatrix, elements: rows * cols, rows: rows}
}

// NewTensor builds a descriptor of the given shape with the given matrix
// sizes. For vector shapes cols must be 1 (ColumnVector) or rows must be 1
// (RowVector); for diagonal, symmetric and triangular shapes the matrix must
// be square.
func NewTensor(shape TensorShape, rows, cols int) (Tensor, error) {
	if rows < 1 || cols < 1 {
		return Tensor{}, fmt.Errorf("NewTensor: %w: tensor sizes must be positive", ErrInvalidParameter)
	}
	switch shape {
	case ColumnVector:
		if cols != 1 {
			return Tensor{}, fmt.Errorf("NewTensor: %w: column vector requires a single column", ErrInvalidParameter)
		}
		return Tensor{shape: shape, elements: rows, rows: rows}, nil
	case RowVector:
		if rows != 1 {
			return Tensor{}, fmt.Errorf("NewTensor: %w: row vector requires a single row", ErrInvalidParameter)
		}
		return Tensor{shape: shape, elements: cols, rows: 1}, nil
	case ColumnMajorMatrix, RowMajorMatrix:
		return Tensor{shape: shape, elements: rows * cols, rows: rows}, nil
	case DiagonalMatrix:
		if rows != cols {
			return Tensor{}, fmt.Errorf("NewTensor: %w: diagonal matrix must be square", ErrInvalidParameter)
		}
		return Tensor{shape: shape, elements: rows, rows: rows}, nil
	case SymmetricMatrix, UpperTriangularMatrix, LowerTriangularMatrix:
		if rows != cols {
			return Tensor{}, fmt.Errorf("NewTensor: %w: %s must be square", ErrInvalidParameter, shape)
		}
		return Tensor{shape: shape, elements: rows * (rows + 1) / 2, rows: rows}, nil
	default:
		return Tensor{}, fmt.Errorf("NewTensor: %w: unknown tensor shape", ErrInvalidParameter)
	}
}

// Shape returns the tensor shape tag.
func (t Tensor) Shape() TensorShape {
	if t.elements == 0 { // zero value acts as a scalar
		return ColumnVector
	}
	return t.shape
}

// Elements returns the number of stored samples per pixel.
func (t Tensor) Elements() int {
	if t.elements == 0 {
		return 1
	}
	return t.elements
}

// Rows returns the number of matrix rows; vectors are n×1 or 1×n.
func (t Tensor) Rows() int {
	if t.elements == 0 {
		return 1
	}
	return t.rows
}

// Columns returns the number of matrix columns.
func (t Tensor) Columns() int {
	switch t.Shape() {
	case ColumnVector:
		return 1
	case RowVector:
		return t.Elements()
	case ColumnMajorMatrix, RowMajorMatrix:
		return t.Elements() / t.Rows()
	default: // square shapes
		return t.Rows()
	}
}

// Sizes returns the tensor dimension sizes: empty for a scalar, one entry
// for a vector, two (rows, columns) for matrices.
func (t Tensor) Sizes() []int {
	switch {
	case t.IsScalar():
		return []int{}
	case t.IsVector():
		return []int{t.Elements()}
	default:
		return []int{t.Rows(), t.Columns()}
	}
}

// IsScalar reports whether each pixel holds a single sample.
func (t Tensor) IsScalar() bool {
	return t.Elements() == 1
}

// IsVector reports whether the tensor is one-dimensional.
func (t Tensor) IsVector() bool {
	ts := t.Shape()
	return ts == ColumnVector || ts == RowVector
}

// SetVector turns the descriptor into a column vector of n elements.
func (t *Tensor) SetVector(n int) {
	*t = VectorTensor(n)
}

// SetMatrix turns the descriptor into a full column-major rows×cols matrix.
func (t *Tensor) SetMatrix(rows, cols int) {
	*t = MatrixTensor(rows, cols)
}

// SetSizes sets the tensor sizes from an array of 0, 1 or 2 elements,
// mirroring the values returned by Sizes.
func (t *Tensor) SetSizes(sizes []int) error {
	switch len(sizes) {
	case 0:
		*t = ScalarTensor()
	case 1:
		t.SetVector(sizes[0])
	case 2:
		t.SetMatrix(sizes[0], sizes[1])
	default:
		return fmt.Errorf("SetSizes: %w: tensor has at most two dimensions", ErrInvalidParameter)
	}
	return nil
}

// ChangeShape reshapes the descriptor into a full matrix with the given
// number of rows, keeping the element count. The element count must be
// divisible by rows.
func (t *Tensor) ChangeShape(rows int) error {
	n := t.Elements()
	if rows < 1 || n%rows != 0 {
		return fmt.Errorf("ChangeShape: %w: cannot reshape %d elements to %d rows", ErrInvalidParameter, n, rows)
	}
	if rows == 1 {
		*t = Tensor{shape: RowVector, elements: n, rows: 1}
	} else if rows == n {
		*t = Tensor{shape: ColumnVector, elements: n, rows: n}
	} else {
		*t = Tensor{shape: ColumnMajorMatrix, elements: n, rows: rows}
	}
	return nil
}

// ChangeShapeTo adopts the shape of another descriptor; the element counts
// must match.
func (t *Tensor) ChangeShapeTo(other Tensor) error {
	if t.Elements() != other.Elements() {
		return fmt.Errorf("ChangeShapeTo: %w: element counts differ (%d vs %d)", ErrInvalidParameter, t.Elements(), other.Elements())
	}
	*t = other
	return nil
}

// Transpose swaps rows and columns without moving stored samples.
func (t *Tensor) Transpose() {
	switch t.Shape() {
	case ColumnVector:
		*t = Tensor{shape: RowVector, elements: t.Elements(), rows: 1}
	case RowVector:
		*t = Tensor{shape: ColumnVector, elements: t.Elements(), rows: t.Elements()}
	case ColumnMajorMatrix:
		*t = Tensor{shape: RowMajorMatrix, elements: t.Elements(), rows: t.Columns()}
	case RowMajorMatrix:
		*t = Tensor{shape: ColumnMajorMatrix, elements: t.Elements(), rows: t.Columns()}
	case UpperTriangularMatrix:
		t.shape = LowerTriangularMatrix
	case LowerTriangularMatrix:
		t.shape = UpperTriangularMatrix
	// DiagonalMatrix and SymmetricMatrix are their own transpose.
	}
}

// storageIndex maps a (row, column) position to the linear index of the
// stored element, following the storage order of the shape. Positions that
// are implicitly zero (off-diagonal of a diagonal matrix, the empty triangle
// of a triangular matrix) are not stored and yield an error.
func (t Tensor) storageIndex(row, col int) (int, error) {
	rows := t.Rows()
	cols := t.Columns()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return 0, fmt.Errorf("tensor element (%d,%d): %w", row, col, ErrOutOfRange)
	}
	switch t.Shape() {
	case ColumnVector:
		return row, nil
	case RowVector:
		return col, nil
	case ColumnMajorMatrix:
		return row + col*rows, nil
	case RowMajorMatrix:
		return col + row*cols, nil
	case DiagonalMatrix:
		if row != col {
			return 0, fmt.Errorf("tensor element (%d,%d): %w: not stored in a diagonal matrix", row, col, ErrInvalidParameter)
		}
		return row, nil
	case SymmetricMatrix:
		if row == col {
			return row, nil
		}
		if row > col {
			row, col = col, row
		}
		return rows + triangleIndex(row, col), nil
	case UpperTriangularMatrix:
		if row > col {
			return 0, fmt.Errorf("tensor element (%d,%d): %w: not stored in an upper triangular matrix", row, col, ErrInvalidParameter)
		}
		if row == col {
			return row, nil
		}
		return rows + triangleIndex(row, col), nil
	case LowerTriangularMatrix:
		if row < col {
			return 0, fmt.Errorf("tensor element (%d,%d): %w: not stored in a lower triangular matrix", row, col, ErrInvalidParameter)
		}
		if row == col {
			return row, nil
		}
		return rows + triangleIndex(col, row), nil
	default:
		return 0, fmt.Errorf("tensor element (%d,%d): %w", row, col, ErrInvalidParameter)
	}
}

// triangleIndex returns the storage position of strictly-upper-triangle
// element (row, col), row < col, counted column-wise after the diagonal.
func triangleIndex(row, col int) int {
	return col*(col-1)/2 + row
}
