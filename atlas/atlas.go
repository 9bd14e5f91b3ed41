package atlas

import (
	"image"
	"image/draw"
)

// Kind selects one of the two atlases.
type Kind uint8

const (
	// Grayscale atlases hold signed distance fields of outline glyphs.
	Grayscale Kind = iota

	// Color atlases hold straight RGBA bitmaps of color glyphs.
	Color
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Grayscale:
		return "Grayscale"
	case Color:
		return "Color"
	default:
		return "Unknown"
	}
}

// Atlas is one texture image with its allocator and dirty region.
type Atlas struct {
	kind  Kind
	alloc *Allocator
	img   draw.Image

	dirty      image.Rectangle
	overflowed bool
}

func newAtlas(kind Kind, size, pad int) *Atlas {
	a := &Atlas{kind: kind}
	r := image.Rect(0, 0, size, size)
	switch kind {
	case Color:
		a.img = image.NewNRGBA(r)
		a.alloc = NewAllocator(size, size, pad, false)
	default:
		a.img = image.NewGray(r)
		a.alloc = NewAllocator(size, size, pad, true)
	}
	return a
}

// Kind returns the atlas kind.
func (a *Atlas) Kind() Kind { return a.kind }

// Size returns the atlas dimensions in pixels.
func (a *Atlas) Size() image.Point { return a.img.Bounds().Size() }

// Image returns the atlas pixels: *image.Gray for Grayscale and
// *image.NRGBA for Color.
func (a *Atlas) Image() image.Image { return a.img }

// Dirty returns the region written since the last TakeDirty.
func (a *Atlas) Dirty() image.Rectangle { return a.dirty }

// TakeDirty returns the dirty region and clears it.
func (a *Atlas) TakeDirty() image.Rectangle {
	r := a.dirty
	a.dirty = image.Rectangle{}
	return r
}

// Overflowed reports whether the atlas ran out of space since the last
// Reset. Slots handed out before the overflow are no longer valid.
func (a *Atlas) Overflowed() bool { return a.overflowed }

// Utilization returns the fraction of the atlas area in use.
func (a *Atlas) Utilization() float64 { return a.alloc.Utilization() }

// Len returns the number of glyphs stored.
func (a *Atlas) Len() int { return a.alloc.Count() }

// reset clears allocations and pixels. The whole image becomes dirty so
// that the cleared pixels reach the texture.
func (a *Atlas) reset() {
	a.alloc.Reset()
	draw.Draw(a.img, a.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	a.dirty = a.img.Bounds()
	a.overflowed = false
}

func (a *Atlas) markDirty(r image.Rectangle) {
	r = r.Intersect(a.img.Bounds())
	if r.Empty() {
		return
	}
	a.dirty = a.dirty.Union(r)
}
