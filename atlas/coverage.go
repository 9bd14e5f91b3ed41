package atlas

import (
	"image"

	"golang.org/x/image/vector"

	"github.com/gogpu/gtext/font"
)

// coverage renders an outline into a w x h anti-aliased alpha mask. Outline
// units are multiplied by scale and the glyph box is placed pad pixels from
// the top left corner, with y flipped to point down.
func coverage(o *font.Outline, scale float32, pad, w, h int) *image.Alpha {
	z := vector.NewRasterizer(w, h)
	minX, maxY := o.Bounds.Min.X, o.Bounds.Max.Y
	off := float32(pad)
	pt := func(p font.Point) (float32, float32) {
		return (p.X-minX)*scale + off, (maxY-p.Y)*scale + off
	}

	open := false
	for _, s := range o.Segments {
		switch s.Op {
		case font.OutlineOpMoveTo:
			if open {
				z.ClosePath()
			}
			x, y := pt(s.Points[0])
			z.MoveTo(x, y)
			open = true
		case font.OutlineOpLineTo:
			x, y := pt(s.Points[0])
			z.LineTo(x, y)
		case font.OutlineOpQuadTo:
			bx, by := pt(s.Points[0])
			cx, cy := pt(s.Points[1])
			z.QuadTo(bx, by, cx, cy)
		case font.OutlineOpCubicTo:
			bx, by := pt(s.Points[0])
			cx, cy := pt(s.Points[1])
			dx, dy := pt(s.Points[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		z.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}
