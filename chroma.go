package gblur

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Chroma identifies a planar pixel layout.
type Chroma uint8

const (
	// ChromaUnknown makes the engine derive subsampling from plane sizes.
	ChromaUnknown Chroma = iota

	// ChromaI420 is planar Y, U, V with 2x2 chroma subsampling.
	ChromaI420

	// ChromaJ420 is I420 with full-range luma.
	ChromaJ420

	// ChromaYV12 is planar Y, V, U with 2x2 chroma subsampling.
	ChromaYV12

	// ChromaI422 is planar Y, U, V with 2x1 chroma subsampling.
	ChromaI422

	// ChromaJ422 is I422 with full-range luma.
	ChromaJ422

	// ChromaGrey is a single luma plane.
	ChromaGrey

	chromaCount
)

var chromaNames = [chromaCount]string{
	ChromaUnknown: "",
	ChromaI420:    "I420",
	ChromaJ420:    "J420",
	ChromaYV12:    "YV12",
	ChromaI422:    "I422",
	ChromaJ422:    "J422",
	ChromaGrey:    "GREY",
}

// String returns the fourcc of c.
func (c Chroma) String() string {
	if c >= chromaCount {
		return fmt.Sprintf("Chroma(%d)", uint8(c))
	}
	if c == ChromaUnknown {
		return "unknown"
	}
	return chromaNames[c]
}

// ParseChroma parses a fourcc such as "i420" or "YV12".
func ParseChroma(s string) (Chroma, error) {
	name := cases.Upper(language.Und).String(strings.TrimSpace(s))
	if name == "Y800" || name == "GRAY" {
		return ChromaGrey, nil
	}
	for c := ChromaI420; c < chromaCount; c++ {
		if chromaNames[c] == name {
			return c, nil
		}
	}
	return ChromaUnknown, fmt.Errorf("%w: chroma %q", ErrInvalidParameter, s)
}

// Planes returns the number of planes, or 0 for ChromaUnknown.
func (c Chroma) Planes() int {
	switch c {
	case ChromaGrey:
		return 1
	case ChromaI420, ChromaJ420, ChromaYV12, ChromaI422, ChromaJ422:
		return 3
	default:
		return 0
	}
}

// Subsampling returns the log2 chroma subsampling factors of c.
func (c Chroma) Subsampling() (xs, ys int) {
	switch c {
	case ChromaI420, ChromaJ420, ChromaYV12:
		return 1, 1
	case ChromaI422, ChromaJ422:
		return 1, 0
	default:
		return 0, 0
	}
}
