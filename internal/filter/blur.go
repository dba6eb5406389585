package filter

// Options controls the per-frame behavior of a Convolver.
type Options[T Sample] struct {
	// Height is the number of luma lines to blur. Lines at or beyond it
	// pass through unblurred.
	Height int

	// Black forces the blurred region of the luma plane to zero.
	Black bool

	// Exact stops the horizontal window at the last visible column instead
	// of reading two samples past it. Must match the ScaleMap.
	Exact bool

	// PassThrough is the legacy constant multiplied into pass-through
	// samples before normalization. Zero selects the normalization-
	// consistent pass-through, which reproduces the input exactly.
	PassThrough T

	// Round rounds the normalized result to nearest instead of truncating.
	Round bool
}

// Convolver runs the two-pass separable blur over one plane at a time.
//
// The scratch buffer is owned by the Convolver and reused across planes
// and frames; its contents never carry over between passes.
type Convolver[T Sample] struct {
	kernel Kernel[T]
	buf    []T

	// wx holds per-column window sums for LocalScale planes.
	wx []T
}

// NewConvolver creates a Convolver for kernel k.
func NewConvolver[T Sample](k Kernel[T]) *Convolver[T] {
	return &Convolver[T]{kernel: k}
}

// Kernel returns the kernel the Convolver applies.
func (c *Convolver[T]) Kernel() Kernel[T] {
	return c.kernel
}

// Reserve makes the scratch buffer hold at least n samples.
// It reports whether a new buffer was allocated.
func (c *Convolver[T]) Reserve(n int) bool {
	if len(c.buf) >= n {
		return false
	}
	c.buf = make([]T, n)
	return true
}

// Release drops the scratch buffer.
func (c *Convolver[T]) Release() {
	c.buf = nil
}

// BufferLen returns the scratch buffer size in samples.
func (c *Convolver[T]) BufferLen() int {
	return len(c.buf)
}

// Blur convolves src into dst. Both use the layout described by g;
// dstStride is the line stride of dst. scale must be the map built for
// the luma plane g was derived from, and luma selects black mode
// eligibility.
func (c *Convolver[T]) Blur(dst []byte, dstStride int, src []byte, g Geometry, scale *ScaleMap[T], luma bool, opts Options[T]) {
	c.Reserve(g.Lines * g.Stride)
	c.horizontal(src, g, luma, opts)
	c.vertical(dst, dstStride, src, g, scale, luma, opts)
}

// horizontal fills the scratch buffer with row-wise convolutions of src.
//
// Kernel offsets are in luma units; x >> XShift converts them to plane
// samples, so each chroma sample is weighted by every luma tap it covers.
func (c *Convolver[T]) horizontal(src []byte, g Geometry, luma bool, opts Options[T]) {
	k := c.kernel
	dim := k.Dim
	last := g.Pitch - 1

	for line := 0; line < g.Lines; line++ {
		row := src[line*g.Stride:]
		out := c.buf[line*g.Stride : line*g.Stride+g.Pitch]
		blurred := line<<g.YShift < opts.Height

		for col := range out {
			lo, hi := c.windowX(col, g, opts.Exact)

			if !blurred {
				switch {
				case opts.PassThrough != 0:
					// The reference keeps the sample under the last tap.
					out[col] = opts.PassThrough * T(row[min(col+hi>>g.XShift, last)])
				default:
					out[col] = k.Sum(lo, hi) * T(row[col])
				}
				continue
			}

			if opts.Black && luma {
				out[col] = 0
				continue
			}

			var v T
			for x := lo; x <= hi; x++ {
				// Past the right edge, read the last visible sample.
				s := min(col+x>>g.XShift, last)
				v += k.Taps[x+dim] * T(row[s])
			}
			out[col] = v
		}
	}
}

// vertical convolves the scratch buffer column-wise and writes the
// normalized result to dst.
//
// LocalScale planes are normalized by the sums over their own clipped
// windows instead of the luma ScaleMap.
func (c *Convolver[T]) vertical(dst []byte, dstStride int, src []byte, g Geometry, scale *ScaleMap[T], luma bool, opts Options[T]) {
	k := c.kernel
	dim := k.Dim

	if g.LocalScale {
		c.wx = c.wx[:0]
		for col := 0; col < g.Pitch; col++ {
			lo, hi := c.windowX(col, g, opts.Exact)
			c.wx = append(c.wx, k.Sum(lo, hi))
		}
	}

	for line := 0; line < g.Lines; line++ {
		out := dst[line*dstStride : line*dstStride+g.Pitch]
		blurred := line<<g.YShift < opts.Height
		lo, hi := c.windowY(line, g, opts.Exact)

		if blurred && opts.Black && luma {
			clear(out)
			continue
		}

		var wy T
		if g.LocalScale {
			wy = k.Sum(lo, hi)
		}

		for col := range out {
			pos := line*g.Stride + col
			var s T
			if g.LocalScale {
				s = wy * c.wx[col]
			} else {
				s = scale.At(line<<g.YShift, col<<g.XShift)
			}

			if !blurred {
				if opts.PassThrough == 0 {
					out[col] = src[pos]
					continue
				}
				out[col] = quantize(opts.PassThrough*T(src[pos]), s, opts.Round)
				continue
			}

			var v T
			for y := lo; y <= hi; y++ {
				v += k.Taps[y+dim] * c.buf[pos+(y>>g.YShift)*g.Stride]
			}
			out[col] = quantize(v, s, opts.Round)
		}
	}
}

// windowX returns the horizontal kernel offsets, in luma units, for col.
func (c *Convolver[T]) windowX(col int, g Geometry, exact bool) (lo, hi int) {
	dim := c.kernel.Dim
	if exact {
		return max(-dim, -(col << g.XShift)), min(dim, (g.Pitch-col)<<g.XShift-1)
	}
	mult := g.XShift + 1
	return max(-dim, -col*mult), min(dim, (g.Pitch-col)*mult+1)
}

// windowY returns the vertical kernel offsets, in luma units, for line.
func (c *Convolver[T]) windowY(line int, g Geometry, exact bool) (lo, hi int) {
	dim := c.kernel.Dim
	if exact {
		return max(-dim, -(line << g.YShift)), min(dim, (g.Lines-line)<<g.YShift-1)
	}
	mult := g.YShift + 1
	return max(-dim, -line*mult), min(dim, (g.Lines-line)*mult-1)
}
