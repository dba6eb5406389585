// Package gblur blurs planar YUV frames with a separable Gaussian.
//
// # Overview
//
// gblur takes frames in planar 4:2:0 or 4:2:2 layout (plus single-plane
// grey), convolves every plane with the same 1D kernel horizontally and
// then vertically, and normalizes each output sample by a precomputed map
// of kernel weight sums so that borders are not darkened.
//
// # Quick Start
//
//	import "github.com/gogpu/gblur"
//
//	eng, err := gblur.New(gblur.Params{Sigma: 2, Height: gblur.FullFrame})
//	if err != nil {
//	    return err
//	}
//	out, err := eng.ProcessFrame(frame)
//
// # Partial frames and black mode
//
// Params.Height limits the blur to the first Height luma lines; the rest
// of the frame passes through. Params.Black blanks the blurred region of
// the luma plane while leaving chroma blurred.
//
// # Numeric modes
//
// The default arithmetic is fixed-point with kernel taps scaled by 256.
// [WithFloat] switches to float32. Both run the same generic code.
//
// # Concurrency
//
// An Engine caches its normalization map and scratch buffer and is not
// safe for concurrent use. Use one Engine per goroutine.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Engine, Params, PlanarImage, Plane, Chroma
//   - Internal: filter (kernel, normalization map, convolution), cache
//   - Host integration: vfilter (picture pool, chroma checks), config
//   - Command: cmd/gblur
package gblur
