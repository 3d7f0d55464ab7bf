package img

import (
	"fmt"

	"github.com/lumen-imaging/lumen/internal/parallel"
)

// forEachSample invokes fn with the byte offset of every sample of the
// image, tensor elements innermost, dimension 0 varying fastest among the
// spatial dimensions.
func (im *Image) forEachSample(fn func(byteOff int)) {
	if im.NumberOfSamples() == 0 {
		return
	}
	szof := im.dataType.SizeOf()
	nd := len(im.sizes)
	coords := make([]int, nd)
	off := im.origin
	telems := im.tensor.Elements()
	tstep := im.tensorStride * szof
	for {
		o := off
		for t := 0; t < telems; t++ {
			fn(o)
			o += tstep
		}
		i := 0
		for ; i < nd; i++ {
			coords[i]++
			off += im.strides[i] * szof
			if coords[i] < im.sizes[i] {
				break
			}
			off -= im.sizes[i] * im.strides[i] * szof
			coords[i] = 0
		}
		if i == nd {
			return
		}
	}
}

// traverseLines runs fn once for every index along the outermost dimension,
// concurrently for large images. Lines of a view with non-injective strides
// (broadcast dimensions) can touch the same samples, so those run
// sequentially.
func (im *Image) traverseLines(fn func(line int)) {
	cfg := parallel.DefaultConfig()
	if !im.HasValidStrides() {
		cfg.Enabled = false
	}
	parallel.For(im.sizes[len(im.sizes)-1], fn, cfg)
}

// innerView drops the outermost dimension, leaving the view of line 0.
func (im *Image) innerView() Image {
	inner := *im
	nd := len(im.sizes)
	inner.sizes = im.sizes[:nd-1]
	inner.strides = im.strides[:nd-1]
	return inner
}

// copySamples copies all samples of src into dst with clamped conversion,
// splitting the work per line along the outermost dimension. Both images
// must be forged with equal sizes and tensor element counts.
func copySamples(dst, src *Image) {
	if dst.NumberOfSamples() == 0 {
		return
	}
	nd := len(dst.sizes)
	if nd == 0 {
		copyLine(dst, src)
		return
	}
	dstInner := dst.innerView()
	srcInner := src.innerView()
	dstStep := dst.strides[nd-1] * dst.dataType.SizeOf()
	srcStep := src.strides[nd-1] * src.dataType.SizeOf()
	dst.traverseLines(func(line int) {
		d, s := dstInner, srcInner
		d.origin += line * dstStep
		s.origin += line * srcStep
		copyLine(&d, &s)
	})
}

// copyLine walks dst and src in lockstep over matching coordinates and
// converts every sample.
func copyLine(dst, src *Image) {
	dstSzof := dst.dataType.SizeOf()
	srcSzof := src.dataType.SizeOf()
	nd := len(dst.sizes)
	coords := make([]int, nd)
	dstOff, srcOff := dst.origin, src.origin
	telems := dst.tensor.Elements()
	for {
		do, so := dstOff, srcOff
		for t := 0; t < telems; t++ {
			writeSample(dst.block.data, do, dst.dataType, readSample(src.block.data, so, src.dataType))
			do += dst.tensorStride * dstSzof
			so += src.tensorStride * srcSzof
		}
		i := 0
		for ; i < nd; i++ {
			coords[i]++
			dstOff += dst.strides[i] * dstSzof
			srcOff += src.strides[i] * srcSzof
			if coords[i] < dst.sizes[i] {
				break
			}
			dstOff -= dst.sizes[i] * dst.strides[i] * dstSzof
			srcOff -= src.sizes[i] * src.strides[i] * srcSzof
			coords[i] = 0
		}
		if i == nd {
			return
		}
	}
}

// Copy makes this image a deep copy of src, converting the data type as
// needed: out-of-range values clamp to the destination's representable
// range, and complex values convert to non-complex types by taking the
// magnitude. A raw destination is forged with the geometry of src; a forged
// destination must already match src's sizes and tensor element count. src
// must be forged.
func (im *Image) Copy(src *Image) error {
	if !src.IsForged() {
		return fmt.Errorf("Copy: %w", ErrNotForged)
	}
	if im.IsForged() {
		if ident, _ := im.IsIdenticalView(src); ident {
			return nil
		}
		if !im.sizes.Equal(src.sizes) {
			return fmt.Errorf("Copy: %w", ErrSizesDontMatch)
		}
		if im.tensor.Elements() != src.tensor.Elements() {
			return fmt.Errorf("Copy: %w: tensor element counts differ", ErrSizesDontMatch)
		}
	} else {
		if err := im.CopyProperties(src); err != nil {
			return fmt.Errorf("Copy: %w", err)
		}
		if err := im.Forge(); err != nil {
			return fmt.Errorf("Copy: %w", err)
		}
	}
	// Byte-identical layouts copy as one block.
	if im.dataType == src.dataType &&
		im.tensorStride == src.tensorStride && intsEqual(im.strides, src.strides) &&
		im.HasContiguousData() && src.HasContiguousData() {
		n := im.NumberOfSamples() * im.dataType.SizeOf()
		_, start := im.blockSamplesAndStart(true)
		lo := im.origin + start*im.dataType.SizeOf()
		_, srcStart := src.blockSamplesAndStart(true)
		srcLo := src.origin + srcStart*src.dataType.SizeOf()
		copy(im.block.data[lo:lo+n], src.block.data[srcLo:srcLo+n])
		return nil
	}
	copySamples(im, src)
	return nil
}

// Convert changes the image to another data type. When the new type has the
// same byte width, the data segment is not shared with another view, and the
// strides address every sample exactly once, the samples are rewritten in
// place; otherwise a fresh segment with normal strides is allocated and the
// samples converted into it (which fails on a protected image, as it would
// release the old segment). A broadcast view visits the same bytes from
// several coordinates, so rewriting it in place would convert them twice.
func (im *Image) Convert(dt DataType) error {
	if !im.IsForged() {
		return fmt.Errorf("Convert: %w", ErrNotForged)
	}
	if dt == im.dataType {
		return nil
	}
	if dt.SizeOf() == im.dataType.SizeOf() && im.block.isUnique() && im.HasValidStrides() {
		old := im.dataType
		im.forEachSample(func(off int) {
			writeSample(im.block.data, off, dt, readSample(im.block.data, off, old))
		})
		im.dataType = dt
		return nil
	}
	if im.protect {
		return fmt.Errorf("Convert: %w", ErrProtected)
	}
	tmp := New()
	tmp.dataType = dt
	tmp.sizes = im.sizes.Clone()
	tmp.tensor = im.tensor
	if err := tmp.Forge(); err != nil {
		return fmt.Errorf("Convert: %w", err)
	}
	copySamples(tmp, im)
	im.block.release()
	im.block = tmp.block
	im.origin = tmp.origin
	im.strides = tmp.strides
	im.tensorStride = tmp.tensorStride
	im.dataType = dt
	return nil
}

// Fill sets every sample of the image to the value of s, clamped to the
// image's data type with the same rules as Copy. Large images are filled
// line-parallel. The image must be forged.
func (im *Image) Fill(s Sample) error {
	if !im.IsForged() {
		return fmt.Errorf("Fill: %w", ErrNotForged)
	}
	if len(im.sizes) == 0 || im.NumberOfSamples() == 0 {
		im.forEachSample(func(off int) {
			writeSample(im.block.data, off, im.dataType, s)
		})
		return nil
	}
	inner := im.innerView()
	step := im.strides[len(im.sizes)-1] * im.dataType.SizeOf()
	im.traverseLines(func(line int) {
		sub := inner
		sub.origin += line * step
		sub.forEachSample(func(off int) {
			writeSample(sub.block.data, off, sub.dataType, s)
		})
	})
	return nil
}

// FillInt fills the image with an integer value.
func (im *Image) FillInt(v int64) error {
	return im.Fill(IntSample(v))
}

// FillFloat fills the image with a floating-point value.
func (im *Image) FillFloat(v float64) error {
	return im.Fill(FloatSample(v))
}

// FillComplex fills the image with a complex value.
func (im *Image) FillComplex(v complex128) error {
	return im.Fill(ComplexSample(v))
}

// Sample reads the first sample of the pixel at the origin. The image must
// be forged.
func (im *Image) Sample() (Sample, error) {
	if !im.IsForged() {
		return Sample{}, fmt.Errorf("Sample: %w", ErrNotForged)
	}
	if im.NumberOfSamples() == 0 {
		return Sample{}, fmt.Errorf("Sample: %w: image has no samples", ErrOutOfRange)
	}
	return readSample(im.block.data, im.origin, im.dataType), nil
}

// AsInt returns the first sample as int64, clamped; complex values yield
// their magnitude.
func (im *Image) AsInt() (int64, error) {
	s, err := im.Sample()
	if err != nil {
		return 0, fmt.Errorf("AsInt: %w", err)
	}
	return s.Int(), nil
}

// AsFloat returns the first sample as float64; complex values yield their
// magnitude.
func (im *Image) AsFloat() (float64, error) {
	s, err := im.Sample()
	if err != nil {
		return 0, fmt.Errorf("AsFloat: %w", err)
	}
	return s.Float(), nil
}

// AsComplex returns the first sample as complex128.
func (im *Image) AsComplex() (complex128, error) {
	s, err := im.Sample()
	if err != nil {
		return 0, fmt.Errorf("AsComplex: %w", err)
	}
	return s.Complex(), nil
}

// AsBool returns the first sample as a boolean.
func (im *Image) AsBool() (bool, error) {
	s, err := im.Sample()
	if err != nil {
		return false, fmt.Errorf("AsBool: %w", err)
	}
	return s.Bool(), nil
}

// SetSampleAt writes one sample: the tensor element telem of the pixel at
// the given coordinates. The image must be forged.
func (im *Image) SetSampleAt(s Sample, telem int, coords ...int) error {
	off, err := im.sampleOffset(telem, coords)
	if err != nil {
		return fmt.Errorf("SetSampleAt: %w", err)
	}
	writeSample(im.block.data, off, im.dataType, s)
	return nil
}

// SampleAt reads the tensor element telem of the pixel at the given
// coordinates. The image must be forged.
func (im *Image) SampleAt(telem int, coords ...int) (Sample, error) {
	off, err := im.sampleOffset(telem, coords)
	if err != nil {
		return Sample{}, fmt.Errorf("SampleAt: %w", err)
	}
	return readSample(im.block.data, off, im.dataType), nil
}

func (im *Image) sampleOffset(telem int, coords []int) (int, error) {
	offset, err := im.Offset(coords)
	if err != nil {
		return 0, err
	}
	if telem < 0 || telem >= im.tensor.Elements() {
		return 0, fmt.Errorf("tensor element %d of %d: %w", telem, im.tensor.Elements(), ErrOutOfRange)
	}
	return im.origin + (offset+telem*im.tensorStride)*im.dataType.SizeOf(), nil
}
