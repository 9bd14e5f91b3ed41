package font

import (
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

// OutlineOp is the type of path operation.
type OutlineOp uint8

const (
	// OutlineOpMoveTo starts a new contour.
	OutlineOpMoveTo OutlineOp = iota

	// OutlineOpLineTo draws a line to the target point.
	OutlineOpLineTo

	// OutlineOpQuadTo draws a quadratic bezier curve.
	OutlineOpQuadTo

	// OutlineOpCubicTo draws a cubic bezier curve.
	OutlineOpCubicTo
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return "Unknown"
	}
}

// OutlineSegment is one path operation of a glyph outline.
type OutlineSegment struct {
	Op OutlineOp

	// Points holds the operands:
	//   - MoveTo, LineTo: Points[0] is the target
	//   - QuadTo: Points[0] is the control, Points[1] the target
	//   - CubicTo: Points[0], Points[1] are controls, Points[2] the target
	Points [3]Point
}

// Outline is the vector outline of a glyph in ems, y pointing up.
type Outline struct {
	Segments []OutlineSegment

	// Bounds encloses every point of every segment.
	Bounds Rect
}

// Outline returns the vector outline of a glyph. It returns false for
// glyphs without an outline, which covers whitespace and bitmap-only
// glyphs.
func (f *Font) Outline(id GlyphID) (*Outline, bool) {
	var segments []opentype.Segment
	switch data := f.face.GlyphData(gotext.GID(id)).(type) {
	case gotext.GlyphOutline:
		segments = data.Segments
	case gotext.GlyphBitmap:
		if data.Outline != nil {
			segments = data.Outline.Segments
		}
	}
	if len(segments) == 0 {
		return nil, false
	}

	scale := 1 / f.upem
	out := &Outline{Segments: make([]OutlineSegment, 0, len(segments))}
	first := true
	for _, s := range segments {
		var seg OutlineSegment
		n := 1
		switch s.Op {
		case opentype.SegmentOpMoveTo:
			seg.Op = OutlineOpMoveTo
		case opentype.SegmentOpLineTo:
			seg.Op = OutlineOpLineTo
		case opentype.SegmentOpQuadTo:
			seg.Op = OutlineOpQuadTo
			n = 2
		case opentype.SegmentOpCubeTo:
			seg.Op = OutlineOpCubicTo
			n = 3
		default:
			continue
		}
		for i := 0; i < n; i++ {
			p := Point{X: s.Args[i].X * scale, Y: s.Args[i].Y * scale}
			seg.Points[i] = p
			if first {
				out.Bounds = Rect{Min: p, Max: p}
				first = false
				continue
			}
			out.Bounds.Min.X = min(out.Bounds.Min.X, p.X)
			out.Bounds.Min.Y = min(out.Bounds.Min.Y, p.Y)
			out.Bounds.Max.X = max(out.Bounds.Max.X, p.X)
			out.Bounds.Max.Y = max(out.Bounds.Max.Y, p.Y)
		}
		out.Segments = append(out.Segments, seg)
	}
	if out.Bounds.Empty() {
		return nil, false
	}
	return out, true
}
