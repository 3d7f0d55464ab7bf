package img

import "sort"

// normalStrides computes the canonical stride layout for the given sizes and
// tensor element count: tensor elements are contiguous within a pixel, and
// dimension 0 varies fastest in memory.
func normalStrides(sizes Sizes, tensorElems int) (strides []int, tensorStride int) {
	tensorStride = 1
	strides = make([]int, len(sizes))
	s := tensorElems
	for i := 0; i < len(sizes); i++ {
		strides[i] = s
		s *= sizes[i]
	}
	return strides, tensorStride
}

// setNormalStrides fills in the canonical layout for the current sizes and
// tensor.
func (im *Image) setNormalStrides() {
	im.strides, im.tensorStride = normalStrides(im.sizes, im.tensor.Elements())
}

// HasNormalStrides reports whether the strides equal the canonical layout.
// A raw image reports false.
func (im *Image) HasNormalStrides() bool {
	if !im.IsForged() {
		return false
	}
	strides, tensorStride := normalStrides(im.sizes, im.tensor.Elements())
	return im.tensorStride == tensorStride && intsEqual(im.strides, strides)
}

// dimExtent is one dimension of a stride layout, used by the validity and
// aliasing computations.
type dimExtent struct {
	stride int // positive
	size   int
}

// strideDims collects the spatial dimensions plus the tensor dimension as
// {|stride|, size} pairs, dropping singleton dimensions.
func (im *Image) strideDims() []dimExtent {
	dims := make([]dimExtent, 0, len(im.sizes)+1)
	for i, sz := range im.sizes {
		if sz > 1 {
			dims = append(dims, dimExtent{stride: absInt(im.strides[i]), size: sz})
		}
	}
	if n := im.tensor.Elements(); n > 1 {
		dims = append(dims, dimExtent{stride: absInt(im.tensorStride), size: n})
	}
	return dims
}

// HasValidStrides checks that no two (coordinates, tensor element) tuples
// within bounds address the same sample. This is a sufficient test used as a
// debug-style consistency check; layouts produced by Forge satisfy it by
// construction. A raw image with matching stride and size arrays can be
// tested too.
func (im *Image) HasValidStrides() bool {
	if len(im.strides) != len(im.sizes) {
		return false
	}
	dims := im.strideDims()
	sort.Slice(dims, func(i, j int) bool { return dims[i].stride < dims[j].stride })
	span := 0 // maximal offset reachable with the dims seen so far
	for _, d := range dims {
		if d.stride <= span {
			return false
		}
		span += (d.size - 1) * d.stride
	}
	return true
}

// blockSamplesAndStart computes the extent of the addressed sample set:
// span is the distance, in samples plus one, between the lowest and highest
// addressed samples; start is the offset, in samples, from the lowest
// addressed sample to the origin (negative when any stride is negative).
// With withTensor the tensor dimension participates.
// A zero-sample image yields span 0.
func (im *Image) blockSamplesAndStart(withTensor bool) (span, start int) {
	span = 1
	for i, sz := range im.sizes {
		if sz == 0 {
			return 0, 0
		}
		st := im.strides[i]
		if st < 0 {
			start += (sz - 1) * st
		}
		span += (sz - 1) * absInt(st)
	}
	if withTensor {
		n := im.tensor.Elements()
		if im.tensorStride < 0 {
			start += (n - 1) * im.tensorStride
		}
		span += (n - 1) * absInt(im.tensorStride)
	}
	return span, start
}

// HasContiguousData reports whether the samples fill their data extent with
// no gaps, so the whole image can be traversed with a unit stride (starting
// from the lowest address, which is not the origin when strides are
// negative). A raw image reports false.
func (im *Image) HasContiguousData() bool {
	if !im.IsForged() {
		return false
	}
	span, _ := im.blockSamplesAndStart(true)
	return span == im.NumberOfSamples()
}

// SimpleStride returns the single stride value with which all pixels can be
// visited, and the byte offset of the first pixel of that traversal (the
// lowest addressed sample). Only spatial dimensions participate; the tensor
// dimension is accessed separately. ok is false when no such stride exists,
// including for broadcast (zero stride) dimensions, or when the image is
// raw.
func (im *Image) SimpleStride() (stride, originByte int, ok bool) {
	if !im.IsForged() {
		return 0, 0, false
	}
	minStride := 0
	pixels := 1
	for i, sz := range im.sizes {
		if sz <= 1 {
			continue
		}
		st := absInt(im.strides[i])
		if st == 0 {
			return 0, 0, false
		}
		if minStride == 0 || st < minStride {
			minStride = st
		}
		pixels *= sz
	}
	if minStride == 0 { // single pixel
		return 1, im.origin, true
	}
	span, start := im.blockSamplesAndStart(false)
	if span-1 != (pixels-1)*minStride {
		return 0, 0, false
	}
	return minStride, im.origin + start*im.dataType.SizeOf(), true
}

// HasSimpleStride reports whether the whole spatial domain is traversable
// with one stride value.
func (im *Image) HasSimpleStride() bool {
	_, _, ok := im.SimpleStride()
	return ok
}

// HasSameDimensionOrder reports whether the non-singleton dimensions of both
// images are ordered the same way in memory. Traversing several images with
// simple strides only visits matching pixels when their dimension orders
// agree. Raw images report false.
func (im *Image) HasSameDimensionOrder(other *Image) bool {
	if !im.IsForged() || !other.IsForged() {
		return false
	}
	a := nonSingletonOrder(im.sizes, im.strides)
	b := nonSingletonOrder(other.sizes, other.strides)
	return intsEqual(a, b)
}

// nonSingletonOrder returns the indices of dimensions with size > 1, sorted
// by increasing |stride|.
func nonSingletonOrder(sizes Sizes, strides []int) []int {
	idx := make([]int, 0, len(sizes))
	for i, sz := range sizes {
		if sz > 1 {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return absInt(strides[idx[i]]) < absInt(strides[idx[j]])
	})
	return idx
}
