package img

import "fmt"

// Allocation is what an Allocator hands back: the data block, and the
// strides actually laid out, which may differ from the requested ones.
type Allocation struct {
	Data         []byte
	Strides      []int
	TensorStride int
}

// Allocator is the extension point through which host software controls how
// sample data is allocated. It receives the sizes, the strides the image
// would use by default, the tensor descriptor and the data type, and returns
// the block plus possibly revised strides. Ownership of the returned block
// transfers to the image; the image only ever references the Allocator
// itself.
type Allocator interface {
	AllocateData(sizes Sizes, strides []int, tensor Tensor, tensorStride int, dt DataType) (Allocation, error)
}

// SetAllocator registers an allocator to be used by the next Forge; the
// image must be raw. Pass nil to restore the default allocation.
func (im *Image) SetAllocator(a Allocator) error {
	if im.IsForged() {
		return fmt.Errorf("SetAllocator: %w", ErrNotRaw)
	}
	im.allocator = a
	return nil
}

// Allocator returns the registered allocator, if any.
func (im *Image) Allocator() Allocator {
	return im.allocator
}

// Forge allocates the data segment, transitioning the image from raw to
// forged. Pre-set strides are honored verbatim when they are consistent with
// the sizes and describe a single compact block; otherwise the normal layout
// is computed. With a registered allocator, the allocator's returned strides
// are authoritative even over caller-specified ones; the returned block must
// cover the sample extent those strides address.
func (im *Image) Forge() error {
	if im.IsForged() {
		return fmt.Errorf("Forge: %w", ErrNotRaw)
	}
	if err := im.sizes.Validate(); err != nil {
		return fmt.Errorf("Forge: %w", err)
	}
	samples := im.NumberOfSamples()
	if !im.strideRequestHonorable(samples) {
		im.setNormalStrides()
	}
	szof := im.dataType.SizeOf()
	if im.allocator != nil {
		alloc, err := im.allocator.AllocateData(im.sizes.Clone(), cloneInts(im.strides), im.tensor, im.tensorStride, im.dataType)
		if err != nil {
			return fmt.Errorf("Forge: allocator: %w", err)
		}
		if len(alloc.Strides) != len(im.sizes) {
			return fmt.Errorf("Forge: allocator returned %d strides for %d dimensions: %w", len(alloc.Strides), len(im.sizes), ErrInvalidParameter)
		}
		im.strides = cloneInts(alloc.Strides)
		im.tensorStride = alloc.TensorStride
		if !im.HasValidStrides() {
			return fmt.Errorf("Forge: allocator returned strides %v that revisit samples: %w", alloc.Strides, ErrInvalidParameter)
		}
		span, _ := im.blockSamplesAndStart(true)
		if need := span * szof; need > len(alloc.Data) {
			return fmt.Errorf("Forge: allocator returned %d bytes for a sample extent of %d bytes: %w", len(alloc.Data), need, ErrInvalidParameter)
		}
		im.block = wrapDataBlock(alloc.Data)
	} else {
		span, _ := im.blockSamplesAndStart(true)
		im.block = newDataBlock(span * szof)
	}
	_, start := im.blockSamplesAndStart(true)
	im.origin = -start * szof
	return nil
}

// strideRequestHonorable reports whether pre-set strides can be used as-is:
// right count, valid (injective), and addressing one contiguous block.
func (im *Image) strideRequestHonorable(samples int) bool {
	if len(im.strides) != len(im.sizes) {
		return false
	}
	if im.tensor.Elements() > 1 && im.tensorStride == 0 {
		return false
	}
	if !im.HasValidStrides() {
		return false
	}
	span, _ := im.blockSamplesAndStart(true)
	return span == samples
}

// ReForge modifies the image properties and forges it, reusing the current
// data segment when it has the exact byte footprint required and is not
// shared with another view. A protected image keeps its segment: the call
// fails unless the requested geometry and type already match.
func (im *Image) ReForge(sizes Sizes, tensorElems int, dt DataType) error {
	if err := sizes.Validate(); err != nil {
		return fmt.Errorf("ReForge: %w", err)
	}
	if im.IsForged() {
		sameProps := im.sizes.Equal(sizes) && im.tensor.Elements() == tensorElems && im.dataType == dt
		if sameProps && im.HasContiguousData() {
			// Nothing to do; note the data is not zeroed.
			return nil
		}
		if im.protect {
			return fmt.Errorf("ReForge: %w", ErrProtected)
		}
		newBytes := sizes.NumberOfPixels() * tensorElems * dt.SizeOf()
		if im.block.isUnique() && im.HasContiguousData() && im.byteFootprint() == newBytes && im.allocator == nil {
			// Reuse the segment in place with a fresh normal layout.
			im.dataType = dt
			im.sizes = sizes.Clone()
			im.tensor.SetVector(tensorElems)
			im.setNormalStrides()
			im.origin = 0
			return nil
		}
		if err := im.Strip(); err != nil {
			return fmt.Errorf("ReForge: %w", err)
		}
	}
	im.dataType = dt
	im.sizes = sizes.Clone()
	im.tensor.SetVector(tensorElems)
	im.strides = nil
	im.tensorStride = 0
	if err := im.Forge(); err != nil {
		return fmt.Errorf("ReForge: %w", err)
	}
	return nil
}

// ReForgeMatch makes the image an uninitialized copy of src: same sizes,
// tensor, data type, color space and pixel size, reusing the data segment
// when possible.
func (im *Image) ReForgeMatch(src *Image) error {
	return im.ReForgeMatchType(src, src.dataType)
}

// ReForgeMatchType is ReForgeMatch with a different data type.
func (im *Image) ReForgeMatchType(src *Image, dt DataType) error {
	if err := im.ReForge(src.sizes, src.tensor.Elements(), dt); err != nil {
		return err
	}
	im.tensor = src.tensor
	im.colorSpace = src.colorSpace
	im.pixelSize = src.pixelSize.clone()
	return nil
}

// byteFootprint returns the size in bytes of the sample extent.
func (im *Image) byteFootprint() int {
	span, _ := im.blockSamplesAndStart(true)
	return span * im.dataType.SizeOf()
}

// Strip drops this view's reference to the data segment, returning the image
// to the raw state. The segment is released once the last referencing view
// drops it. Stripping a protected image fails; stripping a raw image is a
// no-op.
func (im *Image) Strip() error {
	if !im.IsForged() {
		return nil
	}
	if im.protect {
		return fmt.Errorf("Strip: %w", ErrProtected)
	}
	im.block.release()
	im.block = nil
	im.origin = 0
	return nil
}
