package atlas

import (
	"image"
	"math/bits"

	"github.com/chewxy/math32"

	"github.com/gogpu/gtext/font"
)

// minSDFSize is the smallest box edge, before padding, that grayscale
// glyphs are scaled up to.
const minSDFSize = 64

// Allocator implements shelf-based rectangle packing.
//
// Rectangles are placed left-to-right on the current shelf. When the next
// rectangle would reach the right edge, a new shelf is started below the
// tallest rectangle of the current one. Shelves are never revisited, so
// freeing is only possible through Reset.
type Allocator struct {
	width  int
	height int
	pad    int

	// pow2 scales every request so that its longer edge becomes a power of
	// two of at least minSDFSize.
	pow2 bool

	x, y     int
	shelfMax int
	full     bool

	usedArea int
	count    int
}

// Slot is an allocated rectangle.
type Slot struct {
	// Rect is the allocated rectangle in pixels, padding included.
	Rect image.Rectangle

	// Scale is the factor from requested units to atlas pixels.
	Scale float32

	// T1 and T2 are the normalized texture coordinates of the first and
	// last texel inside the padding.
	T1, T2 font.Point
}

// NewAllocator creates an allocator for a width x height atlas that adds pad
// pixels on every side of each request.
func NewAllocator(width, height, pad int, pow2 bool) *Allocator {
	return &Allocator{
		width:  width,
		height: height,
		pad:    pad,
		pow2:   pow2,
	}
}

// Alloc finds space for a w x h request. It returns false if the request
// cannot fit; when the atlas has run out of shelves Full reports true
// afterwards.
func (a *Allocator) Alloc(w, h float32) (Slot, bool) {
	if a.full || !(w > 0) || !(h > 0) {
		return Slot{}, false
	}

	scale := float32(1)
	if a.pow2 {
		longest := max(w, h)
		scale = float32(max(nextPow2(int(math32.Ceil(longest*1.5))), minSDFSize)) / longest
	}
	pw := int(math32.Ceil(w*scale)) + 2*a.pad
	ph := int(math32.Ceil(h*scale)) + 2*a.pad
	if pw >= a.width || ph >= a.height {
		return Slot{}, false
	}

	if a.x+pw >= a.width {
		a.x = 0
		a.y += a.shelfMax
		a.shelfMax = 0
	}
	if a.y+ph >= a.height {
		a.full = true
		return Slot{}, false
	}
	a.shelfMax = max(a.shelfMax, ph)

	r := image.Rect(a.x, a.y, a.x+pw, a.y+ph)
	a.x += pw
	a.usedArea += pw * ph
	a.count++

	sw, sh := float32(a.width), float32(a.height)
	return Slot{
		Rect:  r,
		Scale: scale,
		T1: font.Point{
			X: float32(r.Min.X+a.pad) / sw,
			Y: float32(r.Min.Y+a.pad) / sh,
		},
		T2: font.Point{
			X: float32(r.Max.X-a.pad-1) / sw,
			Y: float32(r.Max.Y-a.pad-1) / sh,
		},
	}, true
}

// Full reports whether an allocation failed for lack of shelves.
func (a *Allocator) Full() bool {
	return a.full
}

// Reset clears all allocations.
func (a *Allocator) Reset() {
	a.x, a.y, a.shelfMax = 0, 0, 0
	a.full = false
	a.usedArea = 0
	a.count = 0
}

// Count returns the number of live allocations.
func (a *Allocator) Count() int {
	return a.count
}

// Utilization returns the fraction of the atlas area that is allocated.
func (a *Allocator) Utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
