package gblur

import "testing"

// Test helper functions shared across gblur tests.

// filledImage allocates a frame with every luma sample set to y and every
// chroma sample set to c.
func filledImage(t *testing.T, chroma Chroma, w, h int, y, c byte) *PlanarImage {
	t.Helper()
	img, err := NewPlanarImage(chroma, w, h)
	if err != nil {
		t.Fatalf("NewPlanarImage(%v, %d, %d) error: %v", chroma, w, h, err)
	}
	for i := range img.Planes {
		v := c
		if i == 0 {
			v = y
		}
		for j := range img.Planes[i].Pix {
			img.Planes[i].Pix[j] = v
		}
	}
	return img
}

// patternImage fills every plane with a deterministic non-uniform pattern.
func patternImage(t *testing.T, chroma Chroma, w, h int) *PlanarImage {
	t.Helper()
	img := filledImage(t, chroma, w, h, 0, 0)
	for i := range img.Planes {
		for j := range img.Planes[i].Pix {
			img.Planes[i].Pix[j] = byte((j*37 + i*91) % 251)
		}
	}
	return img
}

// cloneImage deep-copies img.
func cloneImage(img *PlanarImage) *PlanarImage {
	out := &PlanarImage{Chroma: img.Chroma, Planes: make([]Plane, len(img.Planes))}
	for i, p := range img.Planes {
		p.Pix = append([]byte(nil), p.Pix...)
		out.Planes[i] = p
	}
	return out
}

// planeFloats returns the visible samples of p as float64.
func planeFloats(p *Plane) []float64 {
	out := make([]float64, 0, p.Lines*p.Pitch)
	for line := 0; line < p.Lines; line++ {
		for _, v := range p.Row(line) {
			out = append(out, float64(v))
		}
	}
	return out
}
