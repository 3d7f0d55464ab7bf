package img

import "errors"

// Sentinel errors returned (wrapped) by operations on Image. Callers can test
// for them with errors.Is.
var (
	// ErrNotForged is returned when an operation requires backing storage
	// but the image is raw.
	ErrNotForged = errors.New("image is not forged")

	// ErrNotRaw is returned when an operation requires a raw image but the
	// image already has backing storage.
	ErrNotRaw = errors.New("image is not raw")

	// ErrProtected is returned when an operation would release the data
	// segment of a protected image.
	ErrProtected = errors.New("image is protected")

	// ErrOutOfRange is returned when a coordinate, index or dimension
	// falls outside the image domain.
	ErrOutOfRange = errors.New("out of range")

	// ErrSizesDontMatch is returned when two images were expected to have
	// the same sizes.
	ErrSizesDontMatch = errors.New("sizes do not match")

	// ErrDataTypeNotSupported is returned when the image's data type is
	// not valid for the requested operation.
	ErrDataTypeNotSupported = errors.New("data type not supported")

	// ErrInvalidParameter is returned for arguments that cannot be
	// honored, such as a tensor reshape with a mismatched element count.
	ErrInvalidParameter = errors.New("invalid parameter")
)
