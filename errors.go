package gblur

import "errors"

// Engine errors.
var (
	// ErrInvalidParameter is returned by New and Params.Validate for
	// parameters outside their valid range.
	ErrInvalidParameter = errors.New("gblur: invalid parameter")

	// ErrUnsupportedGeometry is returned by ProcessFrame when a plane is
	// not a power-of-two subsampling of the luma plane, or when the planes
	// do not match the frame's chroma format. The frame should be dropped.
	ErrUnsupportedGeometry = errors.New("gblur: unsupported geometry")

	// ErrAllocation is returned when a frame would need a normalization map
	// or scratch buffer larger than MaxPixels.
	ErrAllocation = errors.New("gblur: buffer too large")
)
