package gblur

import "fmt"

// Plane is one component of a planar image.
type Plane struct {
	Lines  int // visible lines
	Pitch  int // visible samples per line
	Stride int // bytes between the starts of consecutive lines

	// Pix holds the samples; line i starts at Pix[i*Stride].
	Pix []byte
}

// Row returns the visible samples of line i.
func (p *Plane) Row(i int) []byte {
	return p.Pix[i*p.Stride : i*p.Stride+p.Pitch]
}

// size returns the minimum length of Pix.
func (p *Plane) size() int {
	if p.Lines == 0 {
		return 0
	}
	return (p.Lines-1)*p.Stride + p.Pitch
}

// PlanarImage is a frame stored as separate planes. Plane 0 is luma.
type PlanarImage struct {
	Chroma Chroma
	Planes []Plane
}

// NewPlanarImage allocates a zeroed width x height frame in chroma c.
// Chroma planes of odd-sized frames round up.
func NewPlanarImage(c Chroma, width, height int) (*PlanarImage, error) {
	if c.Planes() == 0 {
		return nil, fmt.Errorf("%w: cannot allocate %v frame", ErrInvalidParameter, c)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d", ErrInvalidParameter, width, height)
	}
	if width*height > MaxPixels {
		return nil, fmt.Errorf("%w: frame size %dx%d", ErrAllocation, width, height)
	}

	img := &PlanarImage{Chroma: c, Planes: make([]Plane, c.Planes())}
	img.Planes[0] = newPlane(width, height)

	xs, ys := c.Subsampling()
	cw := (width + 1<<xs - 1) >> xs
	ch := (height + 1<<ys - 1) >> ys
	for i := 1; i < len(img.Planes); i++ {
		img.Planes[i] = newPlane(cw, ch)
	}
	return img, nil
}

// NewPlanarImageLike allocates a zeroed frame with the chroma and plane
// sizes of src. Strides are tightened to the visible pitch.
func NewPlanarImageLike(src *PlanarImage) *PlanarImage {
	img := &PlanarImage{Chroma: src.Chroma, Planes: make([]Plane, len(src.Planes))}
	for i, p := range src.Planes {
		img.Planes[i] = newPlane(p.Pitch, p.Lines)
	}
	return img
}

func newPlane(pitch, lines int) Plane {
	return Plane{
		Lines:  lines,
		Pitch:  pitch,
		Stride: pitch,
		Pix:    make([]byte, pitch*lines),
	}
}

// Width returns the luma width, or 0 for an empty image.
func (p *PlanarImage) Width() int {
	if len(p.Planes) == 0 {
		return 0
	}
	return p.Planes[0].Pitch
}

// Height returns the luma height, or 0 for an empty image.
func (p *PlanarImage) Height() int {
	if len(p.Planes) == 0 {
		return 0
	}
	return p.Planes[0].Lines
}

// SameLayout reports whether q has the chroma and plane sizes of p.
func (p *PlanarImage) SameLayout(q *PlanarImage) bool {
	if p.Chroma != q.Chroma || len(p.Planes) != len(q.Planes) {
		return false
	}
	for i := range p.Planes {
		if p.Planes[i].Lines != q.Planes[i].Lines || p.Planes[i].Pitch != q.Planes[i].Pitch {
			return false
		}
	}
	return true
}

// CopyFrom copies the visible samples of src into p. The layouts must match.
func (p *PlanarImage) CopyFrom(src *PlanarImage) {
	for i := range p.Planes {
		dst, s := &p.Planes[i], &src.Planes[i]
		for line := 0; line < dst.Lines; line++ {
			copy(dst.Row(line), s.Row(line))
		}
	}
}
