// Copyright 2025 The Lumen Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package img provides the public API for the Lumen image core.
//
// An Image is an n-dimensional array of pixels where each pixel is a tensor
// of samples. The geometry (sizes, strides, tensor layout) is decoupled from
// the data segment, so an image moves between two states:
//
//   - raw: properties set, no data allocated
//   - forged: data segment allocated, samples addressable
//
// Views share the data segment without copying:
//
//	a := img.NewImage(img.NewSizes(256, 256), 3, img.Uint8)
//	roi, _ := a.AtRange(img.NewRange(10, 99), img.NewRange(10, 99))
//	red, _ := roi.TensorElement(0)
//	red.FillInt(255) // writes through to a
package img

import (
	"github.com/lumen-imaging/lumen/internal/img"
)

// Image is a dense n-dimensional array of tensor-valued pixels. The zero
// value is not usable; obtain images through New, NewImage, NewScalar or
// NewFromData.
type Image = img.Image

// New returns a raw scalar image with no dimensions and data type Float32.
// Set its properties, then call Forge.
func New() *Image {
	return img.New()
}

// NewImage returns a forged image with the given sizes, number of tensor
// elements per pixel, and data type, laid out with normal strides. The
// samples are zero-initialized.
func NewImage(sizes Sizes, tensorElems int, dt DataType) (*Image, error) {
	return img.NewImage(sizes, tensorElems, dt)
}

// NewScalar returns a forged 0-dimensional image holding the single sample s.
func NewScalar(s Sample, dt DataType) (*Image, error) {
	return img.NewScalar(s, dt)
}

// NewFromData returns a forged image wrapping caller-owned data. The data is
// not copied; the image shares it. Strides and tensorStride are in samples.
func NewFromData(data []byte, dt DataType, sizes Sizes, strides []int, tensor Tensor, tensorStride int) (*Image, error) {
	return img.NewFromData(data, dt, sizes, strides, tensor, tensorStride)
}

// NewSizes builds a Sizes value from its arguments.
func NewSizes(sizes ...int) Sizes {
	return Sizes(sizes)
}

// Range selects a regularly spaced subset of the pixels along one dimension.
// Start and Stop are both included; negative values count from the end.
type Range = img.Range

// All returns the range selecting a whole dimension.
func All() Range {
	return img.All()
}

// NewRange returns the range [start:stop] with unit step.
func NewRange(start, stop int) Range {
	return img.NewRange(start, stop)
}

// DefineROI returns a view of src with the given per-dimension origin, sizes
// and spacing; zero-length arrays default to the whole image.
func DefineROI(src *Image, origin []int, sizes Sizes, spacing []int) (*Image, error) {
	return img.DefineROI(src, origin, sizes, spacing)
}

// Allocation is the result of a custom allocation: the data block plus the
// strides actually laid out.
type Allocation = img.Allocation

// Allocator lets host software control how sample data is allocated. The
// strides it returns are authoritative.
type Allocator = img.Allocator

// CoordinatesComputer converts sample offsets or linear indices back to
// coordinates. Obtain one from Image.OffsetToCoordinatesComputer or
// Image.IndexToCoordinatesComputer.
type CoordinatesComputer = img.CoordinatesComputer
