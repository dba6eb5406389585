package gblur

import (
	"fmt"
	"math"
)

// Parameter limits.
const (
	// SigmaMin and SigmaMax bound Params.Sigma.
	SigmaMin = 0.01
	SigmaMax = 4096.0

	// FullFrame as Params.Height blurs every line. It is resolved to the
	// luma line count of the first frame and then held fixed.
	FullFrame = -1

	// DefaultSigma is the standard deviation used by DefaultParams.
	DefaultSigma = 2.0

	// LegacyPassThroughScale is the constant the reference filter multiplies
	// into samples beyond the height limit. See WithPassThroughScale.
	LegacyPassThroughScale = 1021

	// MaxPixels bounds the luma plane size (lines * stride) an Engine
	// will allocate a normalization map and scratch buffer for.
	MaxPixels = 1 << 28
)

// Params are the blur parameters. They are fixed for the lifetime of an
// Engine.
type Params struct {
	// Sigma is the Gaussian standard deviation in luma samples. The kernel
	// reaches floor(3*Sigma) samples in each direction.
	Sigma float64

	// Height is the number of luma lines to blur, or FullFrame.
	Height int

	// Black blanks the blurred region of the luma plane.
	Black bool
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() Params {
	return Params{
		Sigma:  DefaultSigma,
		Height: FullFrame,
	}
}

// Validate reports whether p is usable by New.
func (p Params) Validate() error {
	if math.IsNaN(p.Sigma) || p.Sigma < SigmaMin || p.Sigma > SigmaMax {
		return fmt.Errorf("%w: sigma %v outside [%v, %v]", ErrInvalidParameter, p.Sigma, SigmaMin, SigmaMax)
	}
	if p.Height < 0 && p.Height != FullFrame {
		return fmt.Errorf("%w: height %d must be non-negative or FullFrame", ErrInvalidParameter, p.Height)
	}
	return nil
}

// KernelWidth returns the number of taps of the kernel built for p.
func (p Params) KernelWidth() int {
	return 2*int(3*p.Sigma) + 1
}
