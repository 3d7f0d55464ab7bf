package img

import (
	"fmt"
	"sort"
)

// IsShared reports whether the data segment is referenced by other views;
// the image must be forged.
func (im *Image) IsShared() (bool, error) {
	if !im.IsForged() {
		return false, fmt.Errorf("IsShared: %w", ErrNotForged)
	}
	return !im.block.isUnique(), nil
}

// ShareCount returns the number of views referencing the data segment,
// always at least 1; the image must be forged.
func (im *Image) ShareCount() (int, error) {
	if !im.IsForged() {
		return 0, fmt.Errorf("ShareCount: %w", ErrNotForged)
	}
	return im.block.shareCount(), nil
}

// SharesData reports whether both images reference the identical data
// segment, whatever their geometry. Sharing the segment does not imply
// sharing samples: two views can be disjoint windows into one block. Both
// images must be forged.
func (im *Image) SharesData(other *Image) (bool, error) {
	if !im.IsForged() || !other.IsForged() {
		return false, fmt.Errorf("SharesData: %w", ErrNotForged)
	}
	return im.block == other.block, nil
}

// IsIdenticalView reports whether both images address exactly the same
// sample sequence: same segment, origin, data type, strides and tensor
// stride. Changing a sample through one changes the same sample in the
// other. Both images must be forged.
func (im *Image) IsIdenticalView(other *Image) (bool, error) {
	if !im.IsForged() || !other.IsForged() {
		return false, fmt.Errorf("IsIdenticalView: %w", ErrNotForged)
	}
	return im.block == other.block &&
		im.origin == other.origin &&
		im.dataType == other.dataType &&
		intsEqual(im.strides, other.strides) &&
		im.tensorStride == other.tensorStride, nil
}

// Aliases reports whether any sample is reachable from both views. This is
// the general, expensive check: two views of one segment may still address
// disjoint sample sets. The test works at byte granularity, so views with
// different sample widths (such as a Real view of a complex image) compare
// correctly. Both images must be forged.
func (im *Image) Aliases(other *Image) (bool, error) {
	if !im.IsForged() || !other.IsForged() {
		return false, fmt.Errorf("Aliases: %w", ErrNotForged)
	}
	if im.block != other.block {
		return false, nil
	}
	if im.NumberOfSamples() == 0 || other.NumberOfSamples() == 0 {
		return false, nil
	}
	a := im.byteLattice()
	b := other.byteLattice()
	if a.origin == b.origin {
		return true, nil
	}
	return latticesOverlap(a, b), nil
}

// IsOverlappingView reports whether the two images alias without being
// identical views: they share at least one sample through different
// geometry. Writing through such a view can clobber samples the other view
// has yet to read, so an overlapping view of an input must never be used as
// a filter's output. Both images must be forged.
func (im *Image) IsOverlappingView(other *Image) (bool, error) {
	al, err := im.Aliases(other)
	if err != nil {
		return false, fmt.Errorf("IsOverlappingView: %w", err)
	}
	if !al {
		return false, nil
	}
	ident, err := im.IsIdenticalView(other)
	if err != nil {
		return false, fmt.Errorf("IsOverlappingView: %w", err)
	}
	return !ident, nil
}

// IsOverlappingViewOfAny reports whether the image overlaps any of the given
// candidate views, short-circuiting on the first match. Raw and nil entries
// are skipped. The image must be forged.
func (im *Image) IsOverlappingViewOfAny(others []*Image) (bool, error) {
	if !im.IsForged() {
		return false, fmt.Errorf("IsOverlappingViewOfAny: %w", ErrNotForged)
	}
	for _, other := range others {
		if other == nil || !other.IsForged() {
			continue
		}
		ov, err := im.IsOverlappingView(other)
		if err != nil {
			return false, err
		}
		if ov {
			return true, nil
		}
	}
	return false, nil
}

// byteLattice is the normalized address set of a view: a byte origin, the
// sample byte width, and per-dimension {byte stride, size} extents with all
// strides positive, singleton and broadcast dimensions dropped, and the
// tensor dimension folded in. Sorted by decreasing stride.
type byteLattice struct {
	origin int
	width  int
	dims   []dimExtent
}

func (im *Image) byteLattice() byteLattice {
	szof := im.dataType.SizeOf()
	lat := byteLattice{origin: im.origin, width: szof}
	add := func(stride, size int) {
		if size <= 1 || stride == 0 {
			return // a broadcast dimension adds no new addresses
		}
		bs := stride * szof
		if bs < 0 {
			lat.origin += (size - 1) * bs
			bs = -bs
		}
		lat.dims = append(lat.dims, dimExtent{stride: bs, size: size})
	}
	for i, sz := range im.sizes {
		add(im.strides[i], sz)
	}
	add(im.tensorStride, im.tensor.Elements())
	sort.Slice(lat.dims, func(i, j int) bool { return lat.dims[i].stride > lat.dims[j].stride })
	return lat
}

// extent returns the total byte span covered by the lattice.
func (lat byteLattice) extent() int {
	n := lat.width
	for _, d := range lat.dims {
		n += (d.size - 1) * d.stride
	}
	return n
}

// latticesOverlap performs an exact intersection test between two strided
// address sets by peeling the largest-stride dimension of either lattice and
// recursing, pruning branches whose bounding ranges cannot intersect. Cost
// is bounded by the number of sample blocks but the pruning keeps typical
// cases cheap.
func latticesOverlap(a, b byteLattice) bool {
	aHi := a.origin + a.extent() - 1
	bHi := b.origin + b.extent() - 1
	if aHi < b.origin || bHi < a.origin {
		return false
	}
	if len(a.dims) == 0 && len(b.dims) == 0 {
		return true // plain intervals, already known to intersect
	}
	// Peel from the lattice with the larger leading stride; coarser steps
	// prune faster.
	if len(b.dims) > 0 && (len(a.dims) == 0 || b.dims[0].stride > a.dims[0].stride) {
		a, b = b, a
		bHi = b.origin + b.extent() - 1
	}
	d := a.dims[0]
	rest := byteLattice{origin: a.origin, width: a.width, dims: a.dims[1:]}
	childExtent := rest.extent()
	for k := 0; k < d.size; k++ {
		lo := a.origin + k*d.stride
		if lo > bHi {
			break
		}
		if lo+childExtent-1 < b.origin {
			continue
		}
		rest.origin = lo
		if latticesOverlap(rest, b) {
			return true
		}
	}
	return false
}
