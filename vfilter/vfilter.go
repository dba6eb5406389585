// Package vfilter wraps a gblur Engine as a video filter stage.
//
// It performs the checks a host pipeline needs around the engine: the
// input format must be planar 4:2:0, 4:2:2 or grey and must match the
// output format, output pictures come from a Pool, and frames the engine
// rejects are dropped or passed through according to a Policy.
package vfilter

import (
	"errors"
	"fmt"

	"github.com/gogpu/gblur"
	"github.com/gogpu/gblur/config"
)

// Filter errors.
var (
	// ErrUnsupportedChroma is returned for a format the filter cannot blur.
	ErrUnsupportedChroma = errors.New("vfilter: unsupported input chroma")

	// ErrChromaMismatch is returned when input and output formats differ.
	ErrChromaMismatch = errors.New("vfilter: input and output chromas don't match")
)

// Policy selects what happens to a frame the engine rejects.
type Policy uint8

const (
	// DropFrame discards the frame and returns the error.
	DropFrame Policy = iota

	// PassThrough emits an unmodified copy of the frame.
	PassThrough
)

// String returns the policy name used in configuration.
func (p Policy) String() string {
	if p == PassThrough {
		return config.OnErrorPass
	}
	return config.OnErrorDrop
}

// Stats counts processed frames.
type Stats struct {
	Frames        uint64 // frames blurred
	Dropped       uint64 // frames rejected and dropped
	PassedThrough uint64 // frames rejected and copied unmodified
}

// Filter blurs a stream of frames of one chroma format.
//
// Filter is not safe for concurrent use.
type Filter struct {
	engine *gblur.Engine
	chroma gblur.Chroma
	policy Policy
	pool   *Pool
	stats  Stats
}

// New creates a filter converting in to out. The two must be equal.
func New(in, out gblur.Chroma, p gblur.Params, policy Policy, opts ...gblur.Option) (*Filter, error) {
	switch in {
	case gblur.ChromaI420, gblur.ChromaJ420, gblur.ChromaYV12,
		gblur.ChromaI422, gblur.ChromaJ422, gblur.ChromaGrey:
	default:
		return nil, fmt.Errorf("%w (%v)", ErrUnsupportedChroma, in)
	}
	if in != out {
		return nil, fmt.Errorf("%w: %v != %v", ErrChromaMismatch, in, out)
	}

	eng, err := gblur.New(p, opts...)
	if err != nil {
		return nil, err
	}
	return &Filter{
		engine: eng,
		chroma: in,
		policy: policy,
		pool:   NewPool(4),
	}, nil
}

// NewFromConfig creates a filter from host configuration.
func NewFromConfig(c config.Config) (*Filter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	chroma, err := gblur.ParseChroma(c.Chroma)
	if err != nil {
		return nil, err
	}
	p, err := c.Params()
	if err != nil {
		return nil, err
	}
	policy := DropFrame
	if c.OnError == config.OnErrorPass {
		policy = PassThrough
	}
	return New(chroma, chroma, p, policy, c.Options()...)
}

// Chroma returns the format the filter accepts.
func (f *Filter) Chroma() gblur.Chroma {
	return f.chroma
}

// Engine returns the underlying engine.
func (f *Filter) Engine() *gblur.Engine {
	return f.engine
}

// Stats returns the frame counters.
func (f *Filter) Stats() Stats {
	return f.stats
}

// Filter blurs pic into a pooled output picture. The caller keeps
// ownership of pic and should hand the output back with Release once done.
//
// A nil pic yields a nil picture and no error.
func (f *Filter) Filter(pic *gblur.PlanarImage) (*gblur.PlanarImage, error) {
	if pic == nil {
		return nil, nil
	}

	var err error
	if pic.Chroma != f.chroma {
		err = fmt.Errorf("%w: frame is %v, filter is %v", gblur.ErrUnsupportedGeometry, pic.Chroma, f.chroma)
	} else {
		out := f.pool.Get(pic)
		if err = f.engine.ProcessFrameInto(out, pic); err == nil {
			f.stats.Frames++
			return out, nil
		}
		f.pool.Put(out)
	}

	if !errors.Is(err, gblur.ErrUnsupportedGeometry) {
		return nil, err
	}
	if f.policy == PassThrough {
		f.stats.PassedThrough++
		gblur.Logger().Warn("vfilter: passing frame through", "err", err)
		return copyFrame(pic), nil
	}
	f.stats.Dropped++
	gblur.Logger().Warn("vfilter: dropping frame", "err", err)
	return nil, err
}

// Release returns an output picture to the pool.
func (f *Filter) Release(pic *gblur.PlanarImage) {
	f.pool.Put(pic)
}

// Close drops the engine caches and pooled pictures.
func (f *Filter) Close() {
	f.engine.Reset()
	f.pool = NewPool(4)
}

// copyFrame copies the visible samples of pic that its buffers hold.
func copyFrame(pic *gblur.PlanarImage) *gblur.PlanarImage {
	out := &gblur.PlanarImage{Chroma: pic.Chroma, Planes: make([]gblur.Plane, len(pic.Planes))}
	for i, p := range pic.Planes {
		lines, pitch := max(p.Lines, 0), max(p.Pitch, 0)
		dst := gblur.Plane{Lines: lines, Pitch: pitch, Stride: pitch, Pix: make([]byte, lines*pitch)}
		for line := 0; line < lines; line++ {
			start := line * p.Stride
			if start >= len(p.Pix) {
				break
			}
			end := min(start+pitch, len(p.Pix))
			copy(dst.Pix[line*pitch:], p.Pix[start:end])
		}
		out.Planes[i] = dst
	}
	return out
}
