package gblur

// Option configures an Engine during creation.
//
// Example:
//
//	// Default: fixed-point, reference-compatible bounds
//	eng, _ := gblur.New(params)
//
//	// float32 arithmetic with symmetric window bounds
//	eng, _ := gblur.New(params, gblur.WithFloat(), gblur.WithExactBounds())
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	float        bool
	exact        bool
	passThrough  float64
	round        bool
	mapCacheSize int
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		mapCacheSize: 1,
	}
}

// WithFloat selects float32 arithmetic instead of 8-bit fixed point.
// Float is faster for large sigma; fixed point matches the reference
// filter bit for bit.
func WithFloat() Option {
	return func(o *engineOptions) {
		o.float = true
	}
}

// WithExactBounds clips the horizontal kernel window at the last visible
// column. Without it the window reaches two samples past the right edge,
// as in the reference filter, and those samples read as the edge sample.
func WithExactBounds() Option {
	return func(o *engineOptions) {
		o.exact = true
	}
}

// WithPassThroughScale multiplies samples beyond the height limit by k and
// divides by the normalization map, as the reference filter does with
// LegacyPassThroughScale. The result is generally darker than the input
// and leaves a seam at the limit.
//
// The default (k == 0) passes such samples through unchanged.
func WithPassThroughScale(k float64) Option {
	return func(o *engineOptions) {
		o.passThrough = k
	}
}

// WithRounding rounds normalized samples to nearest instead of truncating.
func WithRounding() Option {
	return func(o *engineOptions) {
		o.round = true
	}
}

// WithMapCacheSize keeps normalization maps for up to n frame geometries.
// The default of 1 rebuilds the map whenever the geometry changes.
func WithMapCacheSize(n int) Option {
	return func(o *engineOptions) {
		o.mapCacheSize = n
	}
}
