package img

// PhysicalQuantity is a magnitude with a unit tag, used to record the
// physical extent of one pixel along one dimension. Units are stored as
// opaque strings; no unit arithmetic happens here.
type PhysicalQuantity struct {
	Magnitude float64
	Units     string
}

// Pixels returns the dimensionless quantity of n pixels.
func Pixels(n float64) PhysicalQuantity {
	return PhysicalQuantity{Magnitude: n}
}

// PixelSize records the physical size of a pixel per dimension. When fewer
// entries are defined than the image has dimensions, the last entry repeats
// for the remaining dimensions. The zero value means "not defined" and
// behaves as 1 pixel in every dimension.
type PixelSize struct {
	size []PhysicalQuantity
}

// IsDefined reports whether any physical size has been set.
func (ps PixelSize) IsDefined() bool {
	return len(ps.size) > 0
}

// Get returns the pixel size along dimension dim; the last defined entry
// repeats for higher dimensions.
func (ps PixelSize) Get(dim int) PhysicalQuantity {
	if len(ps.size) == 0 {
		return Pixels(1)
	}
	if dim >= len(ps.size) {
		dim = len(ps.size) - 1
	}
	if dim < 0 {
		dim = 0
	}
	return ps.size[dim]
}

// Set defines the pixel size along dimension dim, extending the record with
// repeats of the last entry if needed.
func (ps *PixelSize) Set(dim int, q PhysicalQuantity) {
	if dim < 0 {
		return
	}
	for len(ps.size) <= dim {
		ps.size = append(ps.size, ps.Get(len(ps.size)-1))
	}
	ps.size[dim] = q
}

// Scale multiplies the pixel size along dimension dim by s.
func (ps *PixelSize) Scale(dim int, s float64) {
	if !ps.IsDefined() && s == 1 {
		return
	}
	q := ps.Get(dim)
	q.Magnitude *= s
	ps.Set(dim, q)
}

// Clear removes all physical size information.
func (ps *PixelSize) Clear() {
	ps.size = nil
}

// IsIsotropic reports whether all defined dimensions have the same size.
func (ps PixelSize) IsIsotropic() bool {
	for i := 1; i < len(ps.size); i++ {
		if ps.size[i] != ps.size[0] {
			return false
		}
	}
	return true
}

// ToPhysical converts per-dimension pixel counts to physical quantities.
func (ps PixelSize) ToPhysical(in []float64) []PhysicalQuantity {
	out := make([]PhysicalQuantity, len(in))
	for i, v := range in {
		q := ps.Get(i)
		out[i] = PhysicalQuantity{Magnitude: v * q.Magnitude, Units: q.Units}
	}
	return out
}

// ToPixels converts physical quantities to per-dimension pixel counts. The
// unit tags are assumed to match the defined pixel sizes.
func (ps PixelSize) ToPixels(in []PhysicalQuantity) []float64 {
	out := make([]float64, len(in))
	for i, q := range in {
		m := ps.Get(i).Magnitude
		if m == 0 {
			m = 1
		}
		out[i] = q.Magnitude / m
	}
	return out
}

// clone returns an independent copy.
func (ps PixelSize) clone() PixelSize {
	if len(ps.size) == 0 {
		return PixelSize{}
	}
	return PixelSize{size: append([]PhysicalQuantity(nil), ps.size...)}
}

// The view operations below keep the record in sync with geometry changes.
// They are no-ops on an undefined record.

func (ps *PixelSize) insertDimension(dim int) {
	if !ps.IsDefined() || dim < 0 || dim > len(ps.size) {
		return
	}
	ps.size = append(ps.size, PhysicalQuantity{})
	copy(ps.size[dim+1:], ps.size[dim:])
	ps.size[dim] = Pixels(1)
}

func (ps *PixelSize) eraseDimension(dim int) {
	if !ps.IsDefined() || dim < 0 || dim >= len(ps.size) {
		return
	}
	ps.size = append(ps.size[:dim], ps.size[dim+1:]...)
}

func (ps *PixelSize) swapDimensions(dim1, dim2 int) {
	if !ps.IsDefined() {
		return
	}
	q1, q2 := ps.Get(dim1), ps.Get(dim2)
	ps.Set(dim1, q2)
	ps.Set(dim2, q1)
}

func (ps *PixelSize) permuteDimensions(order []int) {
	if !ps.IsDefined() {
		return
	}
	out := make([]PhysicalQuantity, len(order))
	for i, o := range order {
		out[i] = ps.Get(o)
	}
	ps.size = out
}
