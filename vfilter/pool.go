package vfilter

import (
	"sync"

	"github.com/gogpu/gblur"
)

// maxPoolPlanes bounds the planes tracked by a pool key.
const maxPoolPlanes = 4

// Pool recycles output pictures of identical layout.
//
// Pictures are grouped by chroma and plane sizes. A reused picture is not
// cleared: the engine overwrites every visible sample.
//
// Pool is safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*gblur.PlanarImage
	maxSize int // max pictures per bucket
}

// poolKey identifies a bucket of identical picture layouts.
type poolKey struct {
	chroma gblur.Chroma
	planes int
	dims   [maxPoolPlanes][2]int
}

func keyOf(img *gblur.PlanarImage) (poolKey, bool) {
	if len(img.Planes) > maxPoolPlanes {
		return poolKey{}, false
	}
	k := poolKey{chroma: img.Chroma, planes: len(img.Planes)}
	for i, p := range img.Planes {
		k.dims[i] = [2]int{p.Pitch, p.Lines}
	}
	return k, true
}

// NewPool creates a pool keeping at most maxPerBucket pictures per layout.
// A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*gblur.PlanarImage),
		maxSize: maxPerBucket,
	}
}

// Get returns a picture with the layout of like, reusing a pooled one when
// available.
func (p *Pool) Get(like *gblur.PlanarImage) *gblur.PlanarImage {
	key, ok := keyOf(like)
	if !ok {
		return gblur.NewPlanarImageLike(like)
	}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		img := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		return img
	}
	p.mu.Unlock()

	return gblur.NewPlanarImageLike(like)
}

// Put returns img to the pool. Nil pictures and pictures beyond the bucket
// limit are discarded.
func (p *Pool) Put(img *gblur.PlanarImage) {
	if img == nil {
		return
	}
	key, ok := keyOf(img)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, img)
}

// Len returns the number of pooled pictures.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
