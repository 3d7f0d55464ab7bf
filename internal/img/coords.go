package img

import (
	"fmt"
	"sort"
)

// Offset computes the sample offset (in samples, relative to the origin) of
// the pixel at the given coordinates. Coordinates must lie inside the image
// domain. Multiply by DataType.SizeOf for a byte offset.
func (im *Image) Offset(coords []int) (int, error) {
	if !im.IsForged() {
		return 0, fmt.Errorf("Offset: %w", ErrNotForged)
	}
	if len(coords) != len(im.sizes) {
		return 0, fmt.Errorf("Offset: %d coordinates for %d dimensions: %w", len(coords), len(im.sizes), ErrOutOfRange)
	}
	offset := 0
	for i, c := range coords {
		if c < 0 || c >= im.sizes[i] {
			return 0, fmt.Errorf("Offset: coordinate %d of dimension %d exceeds size %d: %w", c, i, im.sizes[i], ErrOutOfRange)
		}
		offset += c * im.strides[i]
	}
	return offset, nil
}

// OffsetUnchecked is Offset for coordinates that may lie outside the image
// domain, as used by extrapolation code. Only the dimensionality is
// verified.
func (im *Image) OffsetUnchecked(coords []int) (int, error) {
	if !im.IsForged() {
		return 0, fmt.Errorf("OffsetUnchecked: %w", ErrNotForged)
	}
	if len(coords) != len(im.sizes) {
		return 0, fmt.Errorf("OffsetUnchecked: %d coordinates for %d dimensions: %w", len(coords), len(im.sizes), ErrOutOfRange)
	}
	offset := 0
	for i, c := range coords {
		offset += c * im.strides[i]
	}
	return offset, nil
}

// Index computes the linear index of the pixel at the given coordinates.
// The index enumerates pixels with dimension 0 fastest, independently of the
// stride layout, and is unrelated to the position of the pixel in memory.
func (im *Image) Index(coords []int) (int, error) {
	if !im.IsForged() {
		return 0, fmt.Errorf("Index: %w", ErrNotForged)
	}
	if len(coords) != len(im.sizes) {
		return 0, fmt.Errorf("Index: %d coordinates for %d dimensions: %w", len(coords), len(im.sizes), ErrOutOfRange)
	}
	index := 0
	for i := len(im.sizes) - 1; i >= 0; i-- {
		c := coords[i]
		if c < 0 || c >= im.sizes[i] {
			return 0, fmt.Errorf("Index: coordinate %d of dimension %d exceeds size %d: %w", c, i, im.sizes[i], ErrOutOfRange)
		}
		index = index*im.sizes[i] + c
	}
	return index, nil
}

// OffsetToCoordinates computes the coordinates of the sample at the given
// offset. The result is meaningless if the offset does not belong to one of
// the image's samples; no check is made. Broadcast (zero stride) dimensions
// always decode to coordinate 0. Use OffsetToCoordinatesComputer for
// repeated conversions.
func (im *Image) OffsetToCoordinates(offset int) ([]int, error) {
	cc, err := im.OffsetToCoordinatesComputer()
	if err != nil {
		return nil, fmt.Errorf("OffsetToCoordinates: %w", err)
	}
	return cc.Compute(offset), nil
}

// IndexToCoordinates computes the coordinates of the pixel with the given
// linear index. The result is meaningless for an index outside the pixel
// set. Use IndexToCoordinatesComputer for repeated conversions.
func (im *Image) IndexToCoordinates(index int) ([]int, error) {
	cc, err := im.IndexToCoordinatesComputer()
	if err != nil {
		return nil, fmt.Errorf("IndexToCoordinates: %w", err)
	}
	return cc.Compute(index), nil
}

// OffsetToCoordinatesComputer returns a computer that converts sample
// offsets to coordinates, amortizing the setup cost over repeated queries.
func (im *Image) OffsetToCoordinatesComputer() (*CoordinatesComputer, error) {
	if !im.IsForged() {
		return nil, fmt.Errorf("OffsetToCoordinatesComputer: %w", ErrNotForged)
	}
	return newCoordinatesComputer(im.sizes, im.strides), nil
}

// IndexToCoordinatesComputer returns a computer that converts linear pixel
// indices to coordinates.
func (im *Image) IndexToCoordinatesComputer() (*CoordinatesComputer, error) {
	if !im.IsForged() {
		return nil, fmt.Errorf("IndexToCoordinatesComputer: %w", ErrNotForged)
	}
	strides := make([]int, len(im.sizes))
	s := 1
	for i := 0; i < len(im.sizes); i++ {
		strides[i] = s
		s *= im.sizes[i]
	}
	return newCoordinatesComputer(im.sizes, strides), nil
}

// CoordinatesComputer converts offsets or linear indices to coordinates. It
// precomputes a descending-magnitude ordering of the stride axes once, then
// resolves each query by iterative decomposition: divide by the largest
// remaining stride, carry the remainder. Negative strides are handled with a
// sign correction so that returned coordinates stay within the image domain.
type CoordinatesComputer struct {
	strides []int // |stride| per dimension
	sizes   []int // negated where the original stride was negative
	order   []int // dimension indices, largest |stride| first
	offset  int   // correction making every valid offset non-negative
}

func newCoordinatesComputer(sizes Sizes, strides []int) *CoordinatesComputer {
	n := len(sizes)
	cc := &CoordinatesComputer{
		strides: make([]int, n),
		sizes:   make([]int, n),
		order:   make([]int, 0, n),
	}
	for i := 0; i < n; i++ {
		st := strides[i]
		if st < 0 {
			// Work with the mirrored coordinate so that all stride
			// contributions are non-negative; Compute mirrors back.
			cc.strides[i] = -st
			cc.sizes[i] = -sizes[i]
			cc.offset += (sizes[i] - 1) * -st
		} else {
			cc.strides[i] = st
			cc.sizes[i] = sizes[i]
		}
		if st != 0 && sizes[i] > 1 {
			cc.order = append(cc.order, i)
		}
	}
	sort.SliceStable(cc.order, func(a, b int) bool {
		return cc.strides[cc.order[a]] > cc.strides[cc.order[b]]
	})
	return cc
}

// Compute returns the coordinates for the given offset (or linear index,
// depending on which method built the computer). Broadcast and singleton
// dimensions yield coordinate 0.
func (cc *CoordinatesComputer) Compute(offset int) []int {
	coords := make([]int, len(cc.strides))
	rem := offset + cc.offset
	for _, i := range cc.order {
		c := rem / cc.strides[i]
		rem -= c * cc.strides[i]
		if cc.sizes[i] < 0 {
			coords[i] = -cc.sizes[i] - 1 - c
		} else {
			coords[i] = c
		}
	}
	return coords
}
