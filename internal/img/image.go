package img

import (
	"fmt"
)

// Image is a multidimensional, strided, tensor-valued array. It is a
// lightweight view record over a reference-counted data segment; copying the
// record (QuickCopy, At, geometric views) never copies samples.
//
// An Image is either raw (no data segment; sizes, strides and type may be
// pre-set) or forged (data segment allocated or assigned, origin defined).
// Many property mutators require the raw state; geometry views require the
// forged state.
type Image struct {
	dataType     DataType
	sizes        Sizes
	strides      []int // in samples, signed; 0 marks a broadcast dimension
	tensor       Tensor
	tensorStride int // in samples
	protect      bool
	colorSpace   string
	pixelSize    PixelSize
	block        *dataBlock // nil while raw
	origin       int        // byte offset of sample (0,0,...)[0] into block.data
	allocator    Allocator  // optional, never owned
}

// New returns a raw 0-D scalar image of type Float32, the default building
// block: set sizes, tensor and type as needed, then Forge.
func New() *Image {
	return &Image{dataType: Float32, sizes: Sizes{}, tensor: ScalarTensor()}
}

// NewImage returns a forged image of the given sizes, tensor element count
// and data type, with normal strides and zero-initialized samples.
func NewImage(sizes Sizes, tensorElems int, dt DataType) (*Image, error) {
	out := New()
	out.dataType = dt
	out.sizes = sizes.Clone()
	out.tensor = VectorTensor(tensorElems)
	if err := out.Forge(); err != nil {
		return nil, fmt.Errorf("NewImage: %w", err)
	}
	return out, nil
}

// NewScalar returns a forged 0-D image holding the value of s, stored with
// the given data type (clamped as needed).
func NewScalar(s Sample, dt DataType) (*Image, error) {
	out, err := NewImage(Sizes{}, 1, dt)
	if err != nil {
		return nil, err
	}
	writeSample(out.block.data, out.origin, dt, s)
	return out, nil
}

// NewFromData wraps existing sample data in an image without copying. The
// data block is adopted; origin is derived from the strides (it differs from
// the block start when strides are negative).
func NewFromData(data []byte, dt DataType, sizes Sizes, strides []int, tensor Tensor, tensorStride int) (*Image, error) {
	if len(strides) != len(sizes) {
		return nil, fmt.Errorf("NewFromData: %w: %d strides for %d dimensions", ErrInvalidParameter, len(strides), len(sizes))
	}
	if err := sizes.Validate(); err != nil {
		return nil, fmt.Errorf("NewFromData: %w", err)
	}
	out := &Image{
		dataType:     dt,
		sizes:        sizes.Clone(),
		strides:      cloneInts(strides),
		tensor:       tensor,
		tensorStride: tensorStride,
		block:        wrapDataBlock(data),
	}
	span, start := out.blockSamplesAndStart(true)
	if need := span * dt.SizeOf(); need > len(data) {
		return nil, fmt.Errorf("NewFromData: %w: %d bytes of data for a sample extent of %d bytes", ErrInvalidParameter, len(data), need)
	}
	out.origin = -start * dt.SizeOf()
	return out, nil
}

//
// State
//

// IsForged reports whether the image has a data segment.
func (im *Image) IsForged() bool {
	return im.block != nil
}

// Protect sets or clears the protection flag; Strip refuses to release the
// data segment of a protected image.
func (im *Image) Protect(set bool) {
	im.protect = set
}

// IsProtected reports whether the protection flag is set.
func (im *Image) IsProtected() bool {
	return im.protect
}

//
// Sizes
//

// Dimensionality returns the number of spatial dimensions.
func (im *Image) Dimensionality() int {
	return len(im.sizes)
}

// Sizes returns a copy of the per-dimension pixel counts.
func (im *Image) Sizes() Sizes {
	return im.sizes.Clone()
}

// Size returns the pixel count along dimension dim.
func (im *Image) Size(dim int) (int, error) {
	if dim < 0 || dim >= len(im.sizes) {
		return 0, fmt.Errorf("Size: dimension %d: %w", dim, ErrOutOfRange)
	}
	return im.sizes[dim], nil
}

// NumberOfPixels returns the total pixel count.
func (im *Image) NumberOfPixels() int {
	return im.sizes.NumberOfPixels()
}

// NumberOfSamples returns the total sample count: pixels times tensor
// elements.
func (im *Image) NumberOfSamples() int {
	return im.NumberOfPixels() * im.tensor.Elements()
}

// SetSizes declares the image sizes; the image must be raw.
func (im *Image) SetSizes(sizes Sizes) error {
	if im.IsForged() {
		return fmt.Errorf("SetSizes: %w", ErrNotRaw)
	}
	if err := sizes.Validate(); err != nil {
		return fmt.Errorf("SetSizes: %w", err)
	}
	im.sizes = sizes.Clone()
	return nil
}

//
// Strides
//

// Strides returns a copy of the per-dimension strides, in samples.
func (im *Image) Strides() []int {
	return cloneInts(im.strides)
}

// Stride returns the stride along dimension dim, in samples.
func (im *Image) Stride(dim int) (int, error) {
	if dim < 0 || dim >= len(im.strides) {
		return 0, fmt.Errorf("Stride: dimension %d: %w", dim, ErrOutOfRange)
	}
	return im.strides[dim], nil
}

// TensorStride returns the stride between tensor elements of one pixel, in
// samples.
func (im *Image) TensorStride() int {
	return im.tensorStride
}

// SetStrides declares the strides to request at the next Forge; the image
// must be raw. Pass nil to clear the request.
func (im *Image) SetStrides(strides []int) error {
	if im.IsForged() {
		return fmt.Errorf("SetStrides: %w", ErrNotRaw)
	}
	im.strides = cloneInts(strides)
	return nil
}

// SetTensorStride declares the tensor stride to request at the next Forge;
// the image must be raw.
func (im *Image) SetTensorStride(ts int) error {
	if im.IsForged() {
		return fmt.Errorf("SetTensorStride: %w", ErrNotRaw)
	}
	im.tensorStride = ts
	return nil
}

//
// Tensor
//

// Tensor returns the tensor descriptor.
func (im *Image) Tensor() Tensor {
	return im.tensor
}

// TensorElements returns the number of samples per pixel.
func (im *Image) TensorElements() int {
	return im.tensor.Elements()
}

// TensorRows returns the number of tensor rows.
func (im *Image) TensorRows() int {
	return im.tensor.Rows()
}

// TensorColumns returns the number of tensor columns.
func (im *Image) TensorColumns() int {
	return im.tensor.Columns()
}

// TensorShape returns the tensor shape tag.
func (im *Image) TensorShape() TensorShape {
	return im.tensor.Shape()
}

// TensorSizes returns the tensor dimension sizes (0, 1 or 2 entries).
func (im *Image) TensorSizes() []int {
	return im.tensor.Sizes()
}

// IsScalar reports whether pixels hold a single sample.
func (im *Image) IsScalar() bool {
	return im.tensor.IsScalar()
}

// IsVector reports whether the tensor is one-dimensional.
func (im *Image) IsVector() bool {
	return im.tensor.IsVector()
}

// SetTensorElements declares the tensor as a vector of n elements; the image
// must be raw.
func (im *Image) SetTensorElements(n int) error {
	if im.IsForged() {
		return fmt.Errorf("SetTensorElements: %w", ErrNotRaw)
	}
	im.tensor.SetVector(n)
	return nil
}

// SetTensor declares the full tensor descriptor; the image must be raw.
func (im *Image) SetTensor(t Tensor) error {
	if im.IsForged() {
		return fmt.Errorf("SetTensor: %w", ErrNotRaw)
	}
	im.tensor = t
	return nil
}

//
// Data type
//

// DataType returns the sample data type.
func (im *Image) DataType() DataType {
	return im.dataType
}

// SetDataType declares the sample data type; the image must be raw.
func (im *Image) SetDataType(dt DataType) error {
	if im.IsForged() {
		return fmt.Errorf("SetDataType: %w", ErrNotRaw)
	}
	im.dataType = dt
	return nil
}

//
// Color space and pixel size
//

// ColorSpace returns the color space tag; empty means no color semantics.
func (im *Image) ColorSpace() string {
	return im.colorSpace
}

// IsColor reports whether a color space tag is set.
func (im *Image) IsColor() bool {
	return im.colorSpace != ""
}

// SetColorSpace sets the color space tag. No consistency check against the
// tensor happens here; that is the color machinery's concern.
func (im *Image) SetColorSpace(cs string) {
	im.colorSpace = cs
}

// ResetColorSpace clears the color space tag.
func (im *Image) ResetColorSpace() {
	im.colorSpace = ""
}

// PixelSize returns the physical pixel size record.
func (im *Image) PixelSize() PixelSize {
	return im.pixelSize.clone()
}

// SetPixelSize sets the physical pixel size record.
func (im *Image) SetPixelSize(ps PixelSize) {
	im.pixelSize = ps.clone()
}

// HasPixelSize reports whether physical pixel sizes are defined.
func (im *Image) HasPixelSize() bool {
	return im.pixelSize.IsDefined()
}

//
// Properties
//

// CopyProperties copies all image properties (not the data) from src; the
// image must be raw. An already-registered allocator is kept.
func (im *Image) CopyProperties(src *Image) error {
	if im.IsForged() {
		return fmt.Errorf("CopyProperties: %w", ErrNotRaw)
	}
	im.dataType = src.dataType
	im.sizes = src.sizes.Clone()
	im.strides = cloneInts(src.strides)
	im.tensor = src.tensor
	im.tensorStride = src.tensorStride
	im.colorSpace = src.colorSpace
	im.pixelSize = src.pixelSize.clone()
	if im.allocator == nil {
		im.allocator = src.allocator
	}
	return nil
}

// QuickCopy returns a new image viewing the same data segment with the same
// geometry. The color space, pixel size and protection flag are not copied.
// Functions that need to tweak the geometry of an input without touching the
// caller's image use this.
func (im *Image) QuickCopy() *Image {
	out := &Image{
		dataType:     im.dataType,
		sizes:        im.sizes.Clone(),
		strides:      cloneInts(im.strides),
		tensor:       im.tensor,
		tensorStride: im.tensorStride,
		block:        im.block,
		origin:       im.origin,
		allocator:    im.allocator,
	}
	if im.block != nil {
		im.block.addRef()
	}
	return out
}

// Data returns the raw bytes of the whole data segment; the image must be
// forged. The origin is not necessarily at offset zero.
func (im *Image) Data() ([]byte, error) {
	if !im.IsForged() {
		return nil, fmt.Errorf("Data: %w", ErrNotForged)
	}
	return im.block.data, nil
}

// String describes the image for debugging.
func (im *Image) String() string {
	if !im.IsForged() {
		return fmt.Sprintf("raw image, sizes %v, %d tensor element(s), %s", []int(im.sizes), im.tensor.Elements(), im.dataType)
	}
	return fmt.Sprintf("forged image, sizes %v, strides %v, %d tensor element(s) (stride %d), %s",
		[]int(im.sizes), im.strides, im.tensor.Elements(), im.tensorStride, im.dataType)
}
