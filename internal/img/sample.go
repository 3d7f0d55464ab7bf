package img

import (
	"math"
	"math/cmplx"
	"unsafe"
)

// sampleKind selects the active representation inside a Sample.
type sampleKind int

const (
	kindBinary sampleKind = iota
	kindInt
	kindFloat
	kindComplex
)

// Sample is a scalar value tagged with the numeric representation it was
// created from. It is the exchange currency for Fill, Copy conversion and
// single-pixel reads: whatever the image's data type, a Sample converts to
// it through one clamped-conversion routine per declared type.
type Sample struct {
	kind sampleKind
	b    bool
	i    int64
	f    float64
	c    complex128
}

// BinarySample returns a Sample holding a boolean value.
func BinarySample(v bool) Sample {
	return Sample{kind: kindBinary, b: v}
}

// IntSample returns a Sample holding a signed integer value.
func IntSample(v int64) Sample {
	return Sample{kind: kindInt, i: v}
}

// FloatSample returns a Sample holding a floating-point value.
func FloatSample(v float64) Sample {
	return Sample{kind: kindFloat, f: v}
}

// ComplexSample returns a Sample holding a complex value.
func ComplexSample(v complex128) Sample {
	return Sample{kind: kindComplex, c: v}
}

// Bool returns the value as a boolean: any non-zero numeric value is true.
func (s Sample) Bool() bool {
	switch s.kind {
	case kindBinary:
		return s.b
	case kindInt:
		return s.i != 0
	case kindFloat:
		return s.f != 0
	default:
		return s.c != 0
	}
}

// Float returns the value as float64. Complex values yield their magnitude.
func (s Sample) Float() float64 {
	switch s.kind {
	case kindBinary:
		if s.b {
			return 1
		}
		return 0
	case kindInt:
		return float64(s.i)
	case kindFloat:
		return s.f
	default:
		return cmplx.Abs(s.c)
	}
}

// Int returns the value as int64, rounding and clamping as needed.
// Complex values yield their magnitude.
func (s Sample) Int() int64 {
	if s.kind == kindInt {
		return s.i
	}
	return clampFloatToInt(s.Float(), math.MinInt64, math.MaxInt64)
}

// Complex returns the value as complex128.
func (s Sample) Complex() complex128 {
	if s.kind == kindComplex {
		return s.c
	}
	return complex(s.Float(), 0)
}

// clampFloatToInt rounds v to the nearest integer and clamps it to
// [lo, hi]. NaN converts to 0.
func clampFloatToInt(v float64, lo, hi int64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v <= float64(lo) {
		return lo
	}
	if v >= float64(hi) {
		return hi
	}
	return int64(v)
}

// clampFloatToUint is clampFloatToInt for unsigned targets.
func clampFloatToUint(v float64, hi uint64) uint64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	v = math.Round(v)
	if v >= float64(hi) {
		return hi
	}
	return uint64(v)
}

// clampIntToInt clamps a signed integer to [lo, hi].
func clampIntToInt(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// realValue returns the real representation used when writing into a
// non-complex sample: complex inputs collapse to their magnitude.
func (s Sample) realValue() float64 {
	return s.Float()
}

// writeSample encodes s into data at byte offset off, clamping to the
// representable range of dt. Out-of-range values saturate; complex values
// written to non-complex types take their magnitude; NaN written to an
// integer type becomes 0.
func writeSample(data []byte, off int, dt DataType, s Sample) {
	p := unsafe.Pointer(&data[off])
	switch dt {
	case Binary:
		var v uint8
		if s.Bool() {
			v = 1
		}
		*(*uint8)(p) = v
	case Uint8:
		*(*uint8)(p) = uint8(clampSigned(s, 0, math.MaxUint8))
	case Uint16:
		*(*uint16)(p) = uint16(clampSigned(s, 0, math.MaxUint16))
	case Uint32:
		*(*uint32)(p) = uint32(clampSigned(s, 0, math.MaxUint32))
	case Uint64:
		*(*uint64)(p) = clampUnsigned(s)
	case Int8:
		*(*int8)(p) = int8(clampSigned(s, math.MinInt8, math.MaxInt8))
	case Int16:
		*(*int16)(p) = int16(clampSigned(s, math.MinInt16, math.MaxInt16))
	case Int32:
		*(*int32)(p) = int32(clampSigned(s, math.MinInt32, math.MaxInt32))
	case Int64:
		*(*int64)(p) = clampSigned(s, math.MinInt64, math.MaxInt64)
	case Float32:
		*(*float32)(p) = float32(s.realValue())
	case Float64:
		*(*float64)(p) = s.realValue()
	case Complex64:
		*(*complex64)(p) = complex64(s.Complex())
	case Complex128:
		*(*complex128)(p) = s.Complex()
	default:
		panic("unknown data type")
	}
}

func clampSigned(s Sample, lo, hi int64) int64 {
	if s.kind == kindInt {
		return clampIntToInt(s.i, lo, hi)
	}
	return clampFloatToInt(s.Float(), lo, hi)
}

func clampUnsigned(s Sample) uint64 {
	if s.kind == kindInt {
		if s.i < 0 {
			return 0
		}
		return uint64(s.i)
	}
	return clampFloatToUint(s.Float(), math.MaxUint64)
}

// readSample decodes the sample of type dt stored in data at byte offset off.
func readSample(data []byte, off int, dt DataType) Sample {
	p := unsafe.Pointer(&data[off])
	switch dt {
	case Binary:
		return BinarySample(*(*uint8)(p) != 0)
	case Uint8:
		return IntSample(int64(*(*uint8)(p)))
	case Uint16:
		return IntSample(int64(*(*uint16)(p)))
	case Uint32:
		return IntSample(int64(*(*uint32)(p)))
	case Uint64:
		v := *(*uint64)(p)
		if v > math.MaxInt64 {
			return FloatSample(float64(v))
		}
		return IntSample(int64(v))
	case Int8:
		return IntSample(int64(*(*int8)(p)))
	case Int16:
		return IntSample(int64(*(*int16)(p)))
	case Int32:
		return IntSample(int64(*(*int32)(p)))
	case Int64:
		return IntSample(*(*int64)(p))
	case Float32:
		return FloatSample(float64(*(*float32)(p)))
	case Float64:
		return FloatSample(*(*float64)(p))
	case Complex64:
		return ComplexSample(complex128(*(*complex64)(p)))
	case Complex128:
		return ComplexSample(*(*complex128)(p))
	default:
		panic("unknown data type")
	}
}
