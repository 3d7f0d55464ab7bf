package img

import "fmt"

// Sizes holds the per-dimension pixel counts of an image. An empty Sizes is
// valid and describes a 0-D (single pixel) image.
type Sizes []int

// NumberOfPixels returns the total pixel count, the product of all sizes.
// A 0-D image has one pixel.
func (s Sizes) NumberOfPixels() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that all dimensions are non-negative.
func (s Sizes) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid size at dimension %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal reports whether two size arrays are identical.
func (s Sizes) Equal(other Sizes) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the size array.
func (s Sizes) Clone() Sizes {
	clone := make(Sizes, len(s))
	copy(clone, s)
	return clone
}

func cloneInts(v []int) []int {
	return append([]int(nil), v...)
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
