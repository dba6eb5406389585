package gblur

import (
	"fmt"

	"github.com/gogpu/gblur/internal/cache"
	"github.com/gogpu/gblur/internal/filter"
)

// Engine blurs frames with fixed parameters.
//
// The normalization map and scratch buffer are sized from the luma plane
// of the first frame and rebuilt when the frame geometry changes.
//
// Engine is not safe for concurrent use.
type Engine struct {
	params Params
	opts   engineOptions
	blur   planeBlurrer

	// height is the resolved blur limit in luma lines.
	height   int
	resolved bool

	luma    filter.Geometry
	hasLuma bool
}

// planeBlurrer is the numeric-mode specific half of an Engine.
type planeBlurrer interface {
	kernelWidth() int
	taps() []float64
	prepare(luma filter.Geometry) (built, grown bool)
	blurPlane(dst, src *Plane, g filter.Geometry, luma bool, height int)
	reset()
}

// New creates an Engine for p.
func New(p Params, opts ...Option) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.passThrough < 0 {
		return nil, fmt.Errorf("%w: pass-through scale %v", ErrInvalidParameter, o.passThrough)
	}

	e := &Engine{params: p, opts: o}
	var err error
	if o.float {
		e.blur, err = newBlurrer[float32](p, o)
	} else {
		e.blur, err = newBlurrer[int64](p, o)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	Logger().Debug("gblur: gaussian distribution", "pixels", e.blur.kernelWidth(), "sigma", p.Sigma, "float", o.float)
	return e, nil
}

// Params returns the engine parameters.
func (e *Engine) Params() Params {
	return e.params
}

// Kernel returns a copy of the kernel taps, from -dim to +dim. In
// fixed-point mode the taps are scaled by 256.
func (e *Engine) Kernel() []float64 {
	return e.blur.taps()
}

// Height returns the blur limit in luma lines, or FullFrame before the
// first frame has resolved it.
func (e *Engine) Height() int {
	if !e.resolved {
		return e.params.Height
	}
	return e.height
}

// ProcessFrame blurs src into a newly allocated frame of the same layout.
// src is not modified.
func (e *Engine) ProcessFrame(src *PlanarImage) (*PlanarImage, error) {
	geoms, err := e.geometry(src)
	if err != nil {
		return nil, err
	}
	dst := NewPlanarImageLike(src)
	e.process(dst, src, geoms)
	return dst, nil
}

// ProcessFrameInto blurs src into dst, which must have the same layout
// and must not share memory with src.
//
// On error dst is left untouched.
func (e *Engine) ProcessFrameInto(dst, src *PlanarImage) error {
	geoms, err := e.geometry(src)
	if err != nil {
		return err
	}
	if err := checkOutput(dst, src); err != nil {
		return err
	}
	e.process(dst, src, geoms)
	return nil
}

// process blurs src into dst using the validated plane geometries.
func (e *Engine) process(dst, src *PlanarImage, geoms []filter.Geometry) {
	luma := geoms[0]
	if e.hasLuma && luma != e.luma {
		Logger().Debug("gblur: frame geometry changed",
			"from", fmt.Sprintf("%dx%d/%d", e.luma.Pitch, e.luma.Lines, e.luma.Stride),
			"to", fmt.Sprintf("%dx%d/%d", luma.Pitch, luma.Lines, luma.Stride))
	}
	built, grown := e.blur.prepare(luma)
	if built {
		Logger().Debug("gblur: built normalization map", "width", luma.Pitch, "height", luma.Lines)
	}
	if grown {
		Logger().Debug("gblur: allocated scratch buffer", "samples", luma.Lines*luma.Stride)
	}
	e.luma, e.hasLuma = luma, true

	if !e.resolved {
		e.height = e.params.Height
		if e.height == FullFrame {
			e.height = luma.Lines
		}
		e.resolved = true
	}

	for i, g := range geoms {
		e.blur.blurPlane(&dst.Planes[i], &src.Planes[i], g, i == 0, e.height)
	}
}

// Reset drops the cached normalization maps and scratch buffer. The
// resolved height limit is kept.
func (e *Engine) Reset() {
	e.blur.reset()
	e.hasLuma = false
}

// geometry validates src and derives the geometry of every plane.
func (e *Engine) geometry(src *PlanarImage) ([]filter.Geometry, error) {
	if src == nil || len(src.Planes) == 0 {
		return nil, fmt.Errorf("%w: frame has no planes", ErrUnsupportedGeometry)
	}
	if n := src.Chroma.Planes(); n != 0 && n != len(src.Planes) {
		return nil, fmt.Errorf("%w: %v frame has %d planes, want %d",
			ErrUnsupportedGeometry, src.Chroma, len(src.Planes), n)
	}

	y := &src.Planes[0]
	if y.Lines <= 0 || y.Pitch <= 0 || y.Stride < y.Pitch {
		return nil, fmt.Errorf("%w: luma plane %dx%d stride %d", ErrUnsupportedGeometry, y.Pitch, y.Lines, y.Stride)
	}
	if y.Lines > MaxPixels/y.Stride {
		return nil, fmt.Errorf("%w: luma plane %d lines of %d bytes", ErrAllocation, y.Lines, y.Stride)
	}

	luma := filter.LumaGeometry(y.Lines, y.Pitch, y.Stride)
	geoms := make([]filter.Geometry, len(src.Planes))
	wantXS, wantYS := src.Chroma.Subsampling()
	for i := range src.Planes {
		p := &src.Planes[i]
		g, err := filter.PlaneGeometry(luma, p.Lines, p.Pitch, p.Stride)
		if err != nil {
			return nil, fmt.Errorf("%w: plane %d: %w", ErrUnsupportedGeometry, i, err)
		}
		if i > 0 && src.Chroma != ChromaUnknown && (g.XShift != wantXS || g.YShift != wantYS) {
			return nil, fmt.Errorf("%w: plane %d subsampling (%d, %d) does not match %v",
				ErrUnsupportedGeometry, i, g.XShift, g.YShift, src.Chroma)
		}
		if len(p.Pix) < p.size() {
			return nil, fmt.Errorf("%w: plane %d holds %d bytes, want %d",
				ErrUnsupportedGeometry, i, len(p.Pix), p.size())
		}
		if i > 0 && g.Lines*g.Stride > luma.Lines*luma.Stride {
			return nil, fmt.Errorf("%w: plane %d is larger than luma", ErrUnsupportedGeometry, i)
		}
		geoms[i] = g
	}
	return geoms, nil
}

// checkOutput validates dst against src.
func checkOutput(dst, src *PlanarImage) error {
	if dst == nil || !dst.SameLayout(src) {
		return fmt.Errorf("%w: output layout does not match input", ErrUnsupportedGeometry)
	}
	for i := range dst.Planes {
		d, s := &dst.Planes[i], &src.Planes[i]
		if d.Stride < d.Pitch || len(d.Pix) < d.size() {
			return fmt.Errorf("%w: output plane %d too small", ErrUnsupportedGeometry, i)
		}
		if len(d.Pix) > 0 && len(s.Pix) > 0 && &d.Pix[0] == &s.Pix[0] {
			return fmt.Errorf("%w: output plane %d aliases input", ErrInvalidParameter, i)
		}
	}
	return nil
}

// mapKey identifies a normalization map.
type mapKey struct {
	dim   int
	lines int
	pitch int
	exact bool
}

// blurrer runs the convolution in arithmetic T.
type blurrer[T filter.Sample] struct {
	conv  *filter.Convolver[T]
	maps  *cache.Cache[mapKey, *filter.ScaleMap[T]]
	scale *filter.ScaleMap[T]
	opts  filter.Options[T]
}

func newBlurrer[T filter.Sample](p Params, o engineOptions) (*blurrer[T], error) {
	k, err := filter.NewKernel[T](p.Sigma)
	if err != nil {
		return nil, err
	}
	b := &blurrer[T]{
		conv: filter.NewConvolver(k),
		maps: cache.New[mapKey, *filter.ScaleMap[T]](o.mapCacheSize),
		opts: filter.Options[T]{
			Black:       p.Black,
			Exact:       o.exact,
			PassThrough: T(o.passThrough),
			Round:       o.round,
		},
	}
	b.maps.OnEvict(func(k mapKey, _ *filter.ScaleMap[T]) {
		Logger().Debug("gblur: dropped normalization map", "width", k.pitch, "height", k.lines)
	})
	return b, nil
}

func (b *blurrer[T]) kernelWidth() int {
	return b.conv.Kernel().Width()
}

func (b *blurrer[T]) taps() []float64 {
	k := b.conv.Kernel()
	out := make([]float64, len(k.Taps))
	for i, v := range k.Taps {
		out[i] = float64(v)
	}
	return out
}

func (b *blurrer[T]) prepare(luma filter.Geometry) (built, grown bool) {
	k := b.conv.Kernel()
	key := mapKey{dim: k.Dim, lines: luma.Lines, pitch: luma.Pitch, exact: b.opts.Exact}
	b.scale, built = b.maps.GetOrCreate(key, func() *filter.ScaleMap[T] {
		return filter.BuildScaleMap(k, luma.Lines, luma.Pitch, b.opts.Exact)
	})
	grown = b.conv.Reserve(luma.Lines * luma.Stride)
	return built, grown
}

func (b *blurrer[T]) blurPlane(dst, src *Plane, g filter.Geometry, luma bool, height int) {
	opts := b.opts
	opts.Height = height
	b.conv.Blur(dst.Pix, dst.Stride, src.Pix, g, b.scale, luma, opts)
}

func (b *blurrer[T]) reset() {
	b.maps.Purge()
	b.scale = nil
	b.conv.Release()
}
