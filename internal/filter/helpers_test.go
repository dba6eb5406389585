package filter

// Test helper functions shared across filter tests.

// uniformPlane returns a lines x stride plane with every sample set to v.
func uniformPlane(lines, stride int, v byte) []byte {
	p := make([]byte, lines*stride)
	for i := range p {
		p[i] = v
	}
	return p
}

// stepPlane returns a plane whose left half is lo and right half is hi.
func stepPlane(lines, pitch int, lo, hi byte) []byte {
	p := make([]byte, lines*pitch)
	for line := 0; line < lines; line++ {
		for col := 0; col < pitch; col++ {
			if col < pitch/2 {
				p[line*pitch+col] = lo
			} else {
				p[line*pitch+col] = hi
			}
		}
	}
	return p
}

// toFloats converts samples for statistics.
func toFloats(p []byte) []float64 {
	f := make([]float64, len(p))
	for i, v := range p {
		f[i] = float64(v)
	}
	return f
}

// blurPlane runs a full convolution of a single plane and returns dst.
func blurPlane[T Sample](t interface{ Fatalf(string, ...any) }, sigma float64, src []byte, g Geometry, luma Geometry, opts Options[T]) []byte {
	k, err := NewKernel[T](sigma)
	if err != nil {
		t.Fatalf("NewKernel(%v) error: %v", sigma, err)
	}
	scale := BuildScaleMap(k, luma.Lines, luma.Pitch, opts.Exact)
	c := NewConvolver(k)
	dst := make([]byte, g.Lines*g.Pitch)
	c.Blur(dst, g.Pitch, src, g, scale, g.XShift == 0 && g.YShift == 0, opts)
	return dst
}
