package filter

import "math"

// FixedPointScale is the factor applied to kernel taps in fixed-point mode.
const FixedPointScale = 1 << 8

// Sample is the arithmetic type of kernel taps and accumulators.
//
// int64 selects fixed-point arithmetic: taps are truncated after scaling by
// FixedPointScale. float32 keeps the taps unscaled.
type Sample interface {
	int64 | float32
}

// fixedPoint reports whether T is an integer type.
func fixedPoint[T Sample]() bool {
	return T(1)/T(2) == 0
}

// quantize divides v by s and converts the quotient to an 8-bit sample.
// The quotient is truncated unless round is set.
func quantize[T Sample](v, s T, round bool) uint8 {
	var q float64
	switch {
	case !round:
		q = float64(v / s)
	case fixedPoint[T]():
		q = float64((v + s/2) / s)
	default:
		q = math.Floor(float64(v/s) + 0.5)
	}
	if q <= 0 {
		return 0
	}
	if q >= 255 {
		return 255
	}
	return uint8(q)
}
