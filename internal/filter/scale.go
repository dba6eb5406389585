package filter

// ScaleMap holds, for every luma coordinate, the sum of the 2D kernel
// weights that fall inside the image. Dividing a convolution result by the
// entry at the same coordinate normalizes away the truncation of the kernel
// at the borders.
//
// A ScaleMap is read-only once built.
type ScaleMap[T Sample] struct {
	Lines int
	Pitch int

	// Values is indexed by line*Pitch + col.
	Values []T
}

// BuildScaleMap computes the map for a luma plane of lines x pitch samples.
//
// The horizontal window of the reference filter extends to col+Dim clipped
// at pitch-col+1, two samples past the right edge. That bound is kept
// unless exact is set, in which case the window stops at the last visible
// column.
func BuildScaleMap[T Sample](k Kernel[T], lines, pitch int, exact bool) *ScaleMap[T] {
	m := &ScaleMap[T]{
		Lines:  lines,
		Pitch:  pitch,
		Values: make([]T, lines*pitch),
	}

	if fixedPoint[T]() {
		// Integer sums factor exactly into row and column weights.
		wx := make([]T, pitch)
		for col := range wx {
			lo, hi := scaleWindowX(k.Dim, col, pitch, exact)
			wx[col] = k.Sum(lo, hi)
		}
		for line := 0; line < lines; line++ {
			wy := k.Sum(-line, lines-line-1)
			row := m.Values[line*pitch : (line+1)*pitch]
			for col := range row {
				row[col] = wy * wx[col]
			}
		}
		return m
	}

	// Floating-point sums keep the nested accumulation order so results
	// match a direct evaluation bit for bit.
	for line := 0; line < lines; line++ {
		ylo := max(-k.Dim, -line)
		yhi := min(k.Dim, lines-line-1)
		for col := 0; col < pitch; col++ {
			xlo, xhi := scaleWindowX(k.Dim, col, pitch, exact)
			var v T
			for y := ylo; y <= yhi; y++ {
				ky := k.Taps[y+k.Dim]
				for x := xlo; x <= xhi; x++ {
					v += ky * k.Taps[x+k.Dim]
				}
			}
			m.Values[line*pitch+col] = v
		}
	}
	return m
}

// At returns the entry for luma coordinate (line, col).
func (m *ScaleMap[T]) At(line, col int) T {
	return m.Values[line*m.Pitch+col]
}

// scaleWindowX returns the clipped horizontal kernel offsets for col.
func scaleWindowX(dim, col, pitch int, exact bool) (lo, hi int) {
	lo = max(-dim, -col)
	if exact {
		return lo, min(dim, pitch-col-1)
	}
	return lo, min(dim, pitch-col+1)
}
