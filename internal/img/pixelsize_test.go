package img

import (
	"testing"
)

func TestPixelSizeDefaults(t *testing.T) {
	var ps PixelSize
	if ps.IsDefined() {
		t.Error("zero value should be undefined")
	}
	if got := ps.Get(0); got != Pixels(1) {
		t.Errorf("undefined pixel size Get(0) = %v", got)
	}
	if !ps.IsIsotropic() {
		t.Error("undefined pixel size is isotropic")
	}
}

func TestPixelSizeLastEntryRepeats(t *testing.T) {
	var ps PixelSize
	ps.Set(0, PhysicalQuantity{Magnitude: 0.5, Units: "um"})
	ps.Set(1, PhysicalQuantity{Magnitude: 2, Units: "um"})

	if got := ps.Get(1); got.Magnitude != 2 {
		t.Errorf("Get(1) = %v", got)
	}
	// Dimensions beyond the defined ones repeat the last entry.
	if got := ps.Get(5); got.Magnitude != 2 || got.Units != "um" {
		t.Errorf("Get(5) = %v", got)
	}
	if ps.IsIsotropic() {
		t.Error("0.5 and 2 um are not isotropic")
	}

	// Setting a high dimension extends the record with repeats.
	var ps2 PixelSize
	ps2.Set(0, PhysicalQuantity{Magnitude: 1, Units: "mm"})
	ps2.Set(2, PhysicalQuantity{Magnitude: 3, Units: "mm"})
	if got := ps2.Get(1); got.Magnitude != 1 {
		t.Errorf("intermediate dimension = %v, want the repeated entry", got)
	}
}

func TestPixelSizeConversions(t *testing.T) {
	var ps PixelSize
	ps.Set(0, PhysicalQuantity{Magnitude: 0.5, Units: "um"})
	ps.Set(1, PhysicalQuantity{Magnitude: 0.25, Units: "um"})

	phys := ps.ToPhysical([]float64{10, 8})
	if phys[0].Magnitude != 5 || phys[0].Units != "um" {
		t.Errorf("ToPhysical dim 0 = %v", phys[0])
	}
	if phys[1].Magnitude != 2 {
		t.Errorf("ToPhysical dim 1 = %v", phys[1])
	}

	px := ps.ToPixels(phys)
	if px[0] != 10 || px[1] != 8 {
		t.Errorf("ToPixels round trip = %v", px)
	}
}

func TestPixelSizeScale(t *testing.T) {
	var ps PixelSize
	ps.Set(0, PhysicalQuantity{Magnitude: 2, Units: "um"})
	ps.Scale(0, 3)
	if got := ps.Get(0); got.Magnitude != 6 || got.Units != "um" {
		t.Errorf("Scale(0, 3) = %v", got)
	}

	var undef PixelSize
	undef.Scale(1, 1)
	if undef.IsDefined() {
		t.Error("scaling by 1 should not define the record")
	}
	undef.Scale(1, 0.5)
	if got := undef.Get(1); got.Magnitude != 0.5 {
		t.Errorf("Scale on undefined record = %v", got)
	}
}

func TestPixelSizeClear(t *testing.T) {
	var ps PixelSize
	ps.Set(0, Pixels(3))
	ps.Clear()
	if ps.IsDefined() {
		t.Error("Clear should remove all entries")
	}
}

func TestPixelSizeFollowsViewOps(t *testing.T) {
	im := mustImage(t, Sizes{4, 3}, 1, Uint8)
	var ps PixelSize
	ps.Set(0, PhysicalQuantity{Magnitude: 1, Units: "um"})
	ps.Set(1, PhysicalQuantity{Magnitude: 2, Units: "um"})
	im.SetPixelSize(ps)

	v := im.QuickCopy()
	v.SetPixelSize(im.PixelSize())
	if err := v.SwapDimensions(0, 1); err != nil {
		t.Fatal(err)
	}
	if got := v.PixelSize().Get(0); got.Magnitude != 2 {
		t.Errorf("after swap, dimension 0 pixel size = %v", got)
	}
	if got := v.PixelSize().Get(1); got.Magnitude != 1 {
		t.Errorf("after swap, dimension 1 pixel size = %v", got)
	}
}

func TestSizesHelpers(t *testing.T) {
	s := Sizes{4, 3, 2}
	if s.NumberOfPixels() != 24 {
		t.Errorf("NumberOfPixels = %d", s.NumberOfPixels())
	}
	if (Sizes{}).NumberOfPixels() != 1 {
		t.Error("0-D image has one pixel")
	}
	if (Sizes{4, 0}).NumberOfPixels() != 0 {
		t.Error("zero-size dimension yields zero pixels")
	}
	if err := (Sizes{1, -2}).Validate(); err == nil {
		t.Error("negative size should not validate")
	}
	if !s.Equal(Sizes{4, 3, 2}) || s.Equal(Sizes{4, 3}) {
		t.Error("Equal misbehaves")
	}
	c := s.Clone()
	c[0] = 9
	if s[0] != 4 {
		t.Error("Clone should be independent")
	}
}
