// Copyright 2025 The Lumen Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package img

import (
	"github.com/lumen-imaging/lumen/internal/img"
)

// Sentinel errors returned, possibly wrapped, by image operations. Test with
// errors.Is.
var (
	// ErrNotForged is returned by operations requiring a forged image.
	ErrNotForged = img.ErrNotForged

	// ErrNotRaw is returned by property setters on a forged image.
	ErrNotRaw = img.ErrNotRaw

	// ErrProtected is returned when an operation would release the data
	// segment of a protected image.
	ErrProtected = img.ErrProtected

	// ErrOutOfRange is returned for coordinates, indices or ranges outside
	// the image.
	ErrOutOfRange = img.ErrOutOfRange

	// ErrSizesDontMatch is returned when two images should have matching
	// geometry but do not.
	ErrSizesDontMatch = img.ErrSizesDontMatch

	// ErrDataTypeNotSupported is returned when an operation does not apply
	// to the image's data type.
	ErrDataTypeNotSupported = img.ErrDataTypeNotSupported

	// ErrInvalidParameter is returned for arguments that are malformed
	// independently of the image state.
	ErrInvalidParameter = img.ErrInvalidParameter
)
