package filter

import (
	"errors"
	"fmt"
)

// MaxShift is the largest supported subsampling shift (a ratio of 16).
const MaxShift = 4

// ErrUnsupportedGeometry is returned when a plane is not a power-of-two
// subsampling of the luma plane.
var ErrUnsupportedGeometry = errors.New("filter: unsupported plane geometry")

// Geometry describes one plane relative to the luma plane.
type Geometry struct {
	Lines  int // visible lines
	Pitch  int // visible samples per line
	Stride int // samples between line starts

	XShift int // horizontal subsampling, log2
	YShift int // vertical subsampling, log2

	// LocalScale is set when the plane's kernel windows do not line up
	// with the luma ScaleMap: the plane was rounded up from an odd luma
	// size, or a shift exceeds 1. Such planes are normalized by the sums
	// over their own windows.
	LocalScale bool
}

// LumaGeometry returns the geometry of a luma plane.
func LumaGeometry(lines, pitch, stride int) Geometry {
	return Geometry{Lines: lines, Pitch: pitch, Stride: stride}
}

// PlaneGeometry derives the subsampling shifts of a plane of lines x pitch
// samples from the luma dimensions.
//
// A plane dimension d with shift s must equal ceil(luma / 2^s), which admits
// odd luma sizes (a 5-wide luma plane has 3-wide 4:2:0 chroma).
func PlaneGeometry(luma Geometry, lines, pitch, stride int) (Geometry, error) {
	if lines <= 0 || pitch <= 0 || stride < pitch {
		return Geometry{}, fmt.Errorf("%w: plane %dx%d stride %d", ErrUnsupportedGeometry, pitch, lines, stride)
	}
	xs, ok := subsamplingShift(luma.Pitch, pitch)
	if !ok {
		return Geometry{}, fmt.Errorf("%w: pitch %d is not a power-of-two fraction of %d",
			ErrUnsupportedGeometry, pitch, luma.Pitch)
	}
	ys, ok := subsamplingShift(luma.Lines, lines)
	if !ok {
		return Geometry{}, fmt.Errorf("%w: lines %d is not a power-of-two fraction of %d",
			ErrUnsupportedGeometry, lines, luma.Lines)
	}
	local := pitch<<xs != luma.Pitch || lines<<ys != luma.Lines || xs > 1 || ys > 1
	return Geometry{
		Lines:      lines,
		Pitch:      pitch,
		Stride:     stride,
		XShift:     xs,
		YShift:     ys,
		LocalScale: local,
	}, nil
}

// subsamplingShift finds s with plane == ceil(luma / 2^s).
func subsamplingShift(luma, plane int) (int, bool) {
	for s := 0; s <= MaxShift; s++ {
		if (luma+(1<<s)-1)>>s == plane {
			return s, true
		}
	}
	return 0, false
}

// ToLuma maps a plane coordinate into luma coordinates.
func (g Geometry) ToLuma(line, col int) (int, int) {
	return line << g.YShift, col << g.XShift
}

// FromLuma maps a luma coordinate into plane coordinates.
func (g Geometry) FromLuma(line, col int) (int, int) {
	return line >> g.YShift, col >> g.XShift
}

// Size returns the number of samples needed to hold the plane.
func (g Geometry) Size() int {
	if g.Lines == 0 {
		return 0
	}
	return (g.Lines-1)*g.Stride + g.Pitch
}
