package filter

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSigma is returned for a sigma that is not a positive finite number.
var ErrInvalidSigma = errors.New("filter: sigma must be positive and finite")

// ErrZeroKernel is returned when every fixed-point tap truncates to zero.
var ErrZeroKernel = errors.New("filter: kernel truncates to zero in fixed point")

// Kernel is a discretized 1D Gaussian indexed from -Dim to +Dim.
//
// Each tap holds the square root of the Gaussian density, so the product
// of a horizontal and a vertical tap is the 2D density at that offset.
// Both passes must therefore use the same Kernel.
type Kernel[T Sample] struct {
	// Sigma is the standard deviation the kernel was built from.
	Sigma float64

	// Dim is the half-width: floor(3 * Sigma).
	Dim int

	// Taps holds 2*Dim+1 weights; Taps[Dim] is the center.
	Taps []T
}

// NewKernel builds the kernel for sigma.
//
// In fixed point the center tap is 256/(sigma*sqrt(2*pi)), truncated, so
// sigma above about 102 fails with ErrZeroKernel.
//
// A sigma below 1/3 yields Dim == 0 and a single center tap; the blur then
// degenerates to a scaling pass that reproduces the input.
func NewKernel[T Sample](sigma float64) (Kernel[T], error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return Kernel[T]{}, fmt.Errorf("%w: %v", ErrInvalidSigma, sigma)
	}

	dim := int(3 * sigma)
	taps := make([]T, 2*dim+1)

	factor := float32(1)
	if fixedPoint[T]() {
		factor = FixedPointScale
	}

	s2 := sigma * sigma
	for x := -dim; x <= dim; x++ {
		d := float32(math.Sqrt(math.Exp(-float64(x*x)/s2) / (2 * math.Pi * s2)))
		taps[dim+x] = T(d * factor)
	}

	if taps[dim] == 0 {
		return Kernel[T]{}, fmt.Errorf("%w: sigma %v", ErrZeroKernel, sigma)
	}

	return Kernel[T]{Sigma: sigma, Dim: dim, Taps: taps}, nil
}

// Width returns the number of taps.
func (k Kernel[T]) Width() int {
	return len(k.Taps)
}

// At returns the tap at offset x in [-Dim, Dim].
func (k Kernel[T]) At(x int) T {
	return k.Taps[x+k.Dim]
}

// Sum returns the sum of the taps in [lo, hi], both clipped to [-Dim, Dim].
func (k Kernel[T]) Sum(lo, hi int) T {
	lo = max(lo, -k.Dim)
	hi = min(hi, k.Dim)
	var s T
	for x := lo; x <= hi; x++ {
		s += k.Taps[x+k.Dim]
	}
	return s
}
