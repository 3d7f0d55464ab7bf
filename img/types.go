// Copyright 2025 The Lumen Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package img

import (
	"github.com/lumen-imaging/lumen/internal/img"
)

// DataType identifies the numeric representation of the samples.
type DataType = img.DataType

// Data type constants.
const (
	Binary     DataType = img.Binary
	Uint8      DataType = img.Uint8
	Uint16     DataType = img.Uint16
	Uint32     DataType = img.Uint32
	Uint64     DataType = img.Uint64
	Int8       DataType = img.Int8
	Int16      DataType = img.Int16
	Int32      DataType = img.Int32
	Int64      DataType = img.Int64
	Float32    DataType = img.Float32
	Float64    DataType = img.Float64
	Complex64  DataType = img.Complex64
	Complex128 DataType = img.Complex128
)

// Sizes holds the number of pixels along each dimension.
type Sizes = img.Sizes

// TensorShape identifies how a tensor's elements map to matrix positions.
type TensorShape = img.TensorShape

// Tensor shape constants.
const (
	ColumnVector          TensorShape = img.ColumnVector
	RowVector             TensorShape = img.RowVector
	ColumnMajorMatrix     TensorShape = img.ColumnMajorMatrix
	RowMajorMatrix        TensorShape = img.RowMajorMatrix
	DiagonalMatrix        TensorShape = img.DiagonalMatrix
	SymmetricMatrix       TensorShape = img.SymmetricMatrix
	UpperTriangularMatrix TensorShape = img.UpperTriangularMatrix
	LowerTriangularMatrix TensorShape = img.LowerTriangularMatrix
)

// Tensor describes the per-pixel tensor layout. The zero value is a scalar.
type Tensor = img.Tensor

// ScalarTensor returns the tensor descriptor of a scalar pixel.
func ScalarTensor() Tensor {
	return img.ScalarTensor()
}

// VectorTensor returns the descriptor of a column vector of n elements.
func VectorTensor(n int) Tensor {
	return img.VectorTensor(n)
}

// MatrixTensor returns the descriptor of a column-major matrix.
func MatrixTensor(rows, cols int) Tensor {
	return img.MatrixTensor(rows, cols)
}

// NewTensor returns a descriptor with an explicit shape.
func NewTensor(shape TensorShape, rows, cols int) (Tensor, error) {
	return img.NewTensor(shape, rows, cols)
}

// Sample holds one sample value of any supported data type.
type Sample = img.Sample

// BinarySample returns a Sample holding a boolean.
func BinarySample(v bool) Sample {
	return img.BinarySample(v)
}

// IntSample returns a Sample holding an integer.
func IntSample(v int64) Sample {
	return img.IntSample(v)
}

// FloatSample returns a Sample holding a floating-point value.
func FloatSample(v float64) Sample {
	return img.FloatSample(v)
}

// ComplexSample returns a Sample holding a complex value.
func ComplexSample(v complex128) Sample {
	return img.ComplexSample(v)
}

// PhysicalQuantity is a magnitude with a unit string.
type PhysicalQuantity = img.PhysicalQuantity

// Pixels returns the dimensionless quantity of n pixels.
func Pixels(n float64) PhysicalQuantity {
	return img.Pixels(n)
}

// PixelSize holds the physical size of a pixel along each dimension; the
// last set dimension repeats for all further ones.
type PixelSize = img.PixelSize
