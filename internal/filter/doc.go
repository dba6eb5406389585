// Package filter implements the separable Gaussian blur used by gblur.
//
// The package is split along the stages of the computation:
//   - Kernel: the 1D half-kernel of square-rooted Gaussian densities
//   - ScaleMap: per-pixel weight sums compensating for kernel truncation
//   - Geometry: subsampling shifts between a plane and the luma plane
//   - Convolver: horizontal pass into a scratch buffer, then vertical
//     pass with normalization
//
// All stages are generic over [Sample], so the same code runs in 8-bit
// fixed-point (int64, weights scaled by [FixedPointScale]) or in float32.
//
// Nothing in this package is safe for concurrent use. A Convolver owns
// its scratch buffer and must be driven from one goroutine at a time.
package filter
