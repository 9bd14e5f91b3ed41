// Package sdf converts anti-aliased coverage bitmaps into signed distance
// fields.
//
// Generate runs a Felzenszwalb-Huttenlocher squared Euclidean distance
// transform twice, once for the outside and once for the inside of the
// shape. Partially covered edge pixels seed both grids with their sub-pixel
// distance to the 0.5 coverage contour, which keeps the field smooth for
// glyph outlines rasterized with anti-aliasing.
//
// The encoding matches common SDF text shaders: a value of 255*(1-cutoff)
// lies on the contour, larger values are inside, and the field falls off
// linearly over Radius pixels.
package sdf

import (
	"image"

	"github.com/chewxy/math32"
)

// Params control distance field generation.
type Params struct {
	// Pad is the number of empty pixels surrounding the glyph on every side.
	Pad int

	// Radius is the distance, in pixels, over which the field decays from
	// the contour value to 0.
	Radius float32

	// Cutoff moves the contour within the 0-255 range.
	Cutoff float32
}

// DefaultParams returns the parameters used for glyph atlases.
func DefaultParams() Params {
	return Params{Pad: 4, Radius: 8, Cutoff: 0.25}
}

// inf is large enough to dominate every real squared distance while still
// being summable in float32.
const inf = 1e20

// Generate computes the distance field of coverage. The result has the same
// bounds as coverage.
func Generate(coverage *image.Alpha, p Params) *image.Gray {
	b := coverage.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(b)
	if w == 0 || h == 0 {
		return out
	}
	if p.Radius <= 0 {
		p.Radius = DefaultParams().Radius
	}

	outer := make([]float32, w*h)
	inner := make([]float32, w*h)
	for y := range h {
		for x := range w {
			a := float32(coverage.AlphaAt(b.Min.X+x, b.Min.Y+y).A) / 255
			i := y*w + x
			switch {
			case a >= 1:
				outer[i], inner[i] = 0, inf
			case a <= 0:
				outer[i], inner[i] = inf, 0
			default:
				d := 0.5 - a
				if d > 0 {
					outer[i], inner[i] = d*d, 0
				} else {
					outer[i], inner[i] = 0, d*d
				}
			}
		}
	}

	n := max(w, h)
	s := scratch{
		f: make([]float32, n),
		z: make([]float32, n+1),
		v: make([]int, n),
	}
	s.edt(outer, w, h)
	s.edt(inner, w, h)

	for y := range h {
		for x := range w {
			i := y*w + x
			d := math32.Sqrt(outer[i]) - math32.Sqrt(inner[i])
			v := 255 - 255*(d/p.Radius+p.Cutoff)
			out.Pix[y*out.Stride+x] = uint8(min(max(math32.Round(v), 0), 255))
		}
	}
	return out
}
