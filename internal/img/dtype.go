// Package img implements the dense, strided, tensor-valued image that the
// rest of the Lumen imaging library is built on. An Image is a lightweight
// view record (sizes, signed strides, tensor descriptor, data type, origin)
// over a reference-counted data segment; views derived from an image share
// the segment without copying samples.
package img

// DataType represents runtime type information for the samples of an image.
type DataType int

// Supported sample data types.
const (
	Binary DataType = iota
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Complex64
	Complex128
)

// SizeOf returns the byte size of one sample of this data type.
func (dt DataType) SizeOf() int {
	switch dt {
	case Binary, Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Float32:
		return 4
	case Uint64, Int64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Binary:
		return "binary"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// IsBinary reports whether the data type is the binary (boolean) type.
func (dt DataType) IsBinary() bool {
	return dt == Binary
}

// IsUnsigned reports whether the data type is an unsigned integer type.
func (dt DataType) IsUnsigned() bool {
	switch dt {
	case Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// IsSigned reports whether the data type is a signed integer type.
func (dt DataType) IsSigned() bool {
	switch dt {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// IsInteger reports whether the data type is an integer type, signed or not.
func (dt DataType) IsInteger() bool {
	return dt.IsUnsigned() || dt.IsSigned()
}

// IsFloat reports whether the data type is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// IsComplex reports whether the data type is a complex type.
func (dt DataType) IsComplex() bool {
	return dt == Complex64 || dt == Complex128
}

// IsReal reports whether the data type is a real (non-complex, non-binary)
// numeric type.
func (dt DataType) IsReal() bool {
	return dt.IsInteger() || dt.IsFloat()
}

// FloatType returns the floating-point type with the same component width as
// a complex type (Complex64 yields Float32, Complex128 yields Float64).
// Non-complex types are returned unchanged.
func (dt DataType) FloatType() DataType {
	switch dt {
	case Complex64:
		return Float32
	case Complex128:
		return Float64
	default:
		return dt
	}
}

// ComplexType returns the complex type whose components have the same width
// as a floating-point type. Non-float types are returned unchanged.
func (dt DataType) ComplexType() DataType {
	switch dt {
	case Float32:
		return Complex64
	case Float64:
		return Complex128
	default:
		return dt
	}
}
