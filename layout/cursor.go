package layout

import (
	"github.com/rivo/uniseg"

	"github.com/gogpu/gtext/font"
)

// Affinity tells which side of a row boundary a cursor sticks to when its
// index is both the end of one row and the start of the next.
type Affinity uint8

const (
	// AffinityBefore attaches the cursor to the end of the earlier row.
	AffinityBefore Affinity = iota

	// AffinityAfter attaches the cursor to the start of the later row.
	AffinityAfter
)

// String returns the string representation of the affinity.
func (a Affinity) String() string {
	switch a {
	case AffinityBefore:
		return "Before"
	case AffinityAfter:
		return "After"
	default:
		return unknownStr
	}
}

// Cursor is a caret position: a byte offset into the full text.
type Cursor struct {
	Index    int
	Affinity Affinity
}

// PointToCursor returns the cursor closest to p. Points above the text map
// to its start, points below it to the end of the last row.
func (t *Text) PointToCursor(p font.Point) Cursor {
	var out Cursor
	last := len(t.Rows) - 1
	i := 0
	t.WalkRows(func(y float32, row *Row) bool {
		var gapBelow float32
		if i < last {
			gapBelow = row.LineGap
		}
		if i == 0 && p.Y < y-row.Ascender {
			out = Cursor{Index: row.Start, Affinity: AffinityAfter}
			return false
		}
		if p.Y < y-row.Descender+gapBelow/2 {
			idx := row.XToIndex(p.X)
			out = Cursor{Index: row.Start + idx, Affinity: AffinityBefore}
			if idx == 0 {
				out.Affinity = AffinityAfter
			}
			return false
		}
		if i == last {
			out = Cursor{Index: row.Start + row.contentEnd(), Affinity: AffinityBefore}
			return false
		}
		i++
		return true
	})
	return out
}

// CursorToPoint returns the caret position of c: its x coordinate and the
// baseline y of its row. Cursors past the end map to the end of the last
// row.
func (t *Text) CursorToPoint(c Cursor) font.Point {
	var out font.Point
	found := false
	t.WalkRows(func(y float32, row *Row) bool {
		if !row.owns(c) {
			return true
		}
		out = font.Point{X: row.IndexToX(c.Index - row.Start), Y: y}
		found = true
		return false
	})
	if found || len(t.Rows) == 0 {
		return out
	}
	t.WalkRows(func(y float32, row *Row) bool {
		out = font.Point{X: row.AlignX() + row.Width, Y: y}
		return true
	})
	return out
}

// owns reports whether c is displayed on r. A row ended by a hard break
// owns the position before the break, the position after it starts the
// next row.
func (r *Row) owns(c Cursor) bool {
	if c.Index < r.Start {
		return false
	}
	if end := r.contentEnd(); end < len(r.Text) {
		return c.Index <= r.Start+end
	}
	if c.Affinity == AffinityBefore {
		return c.Index <= r.End
	}
	return c.Index < r.End
}

// XToIndex returns the row-relative byte offset of the grapheme boundary
// nearest to x. The width of a cluster group is split evenly among its
// graphemes.
func (r *Row) XToIndex(x float32) int {
	groupStart := 0
	groupStartX := r.AlignX()
	idx, found := 0, false
	r.WalkGlyphs(func(gx float32, g *Glyph) bool {
		cluster := g.Cluster - r.Start
		if cluster == groupStart {
			return true
		}
		if i, ok := r.xInGroup(groupStart, groupStartX, cluster, gx, x); ok {
			idx, found = i, true
			return false
		}
		groupStart = cluster
		groupStartX = gx
		return true
	})
	if found {
		return idx
	}
	end := r.contentEnd()
	if i, ok := r.xInGroup(groupStart, groupStartX, end, r.AlignX()+r.Width, x); ok {
		return i
	}
	return end
}

func (r *Row) xInGroup(start int, startX float32, end int, endX, x float32) (int, bool) {
	if end <= start {
		return 0, false
	}
	sub := r.Text[start:end]
	n := uniseg.GraphemeClusterCount(sub)
	width := (endX - startX) / float32(n)
	gx := startX
	g := uniseg.NewGraphemes(sub)
	for g.Next() {
		from, _ := g.Positions()
		if x < gx+width/2 {
			return start + from, true
		}
		gx += width
	}
	return 0, false
}

// IndexToX returns the x coordinate of the row-relative byte offset index.
func (r *Row) IndexToX(index int) float32 {
	groupStart := 0
	groupStartX := r.AlignX()
	var out float32
	found := false
	r.WalkGlyphs(func(gx float32, g *Glyph) bool {
		cluster := g.Cluster - r.Start
		if cluster == groupStart {
			return true
		}
		if x, ok := r.indexInGroup(groupStart, groupStartX, cluster, gx, index); ok {
			out, found = x, true
			return false
		}
		groupStart = cluster
		groupStartX = gx
		return true
	})
	if found {
		return out
	}
	if x, ok := r.indexInGroup(groupStart, groupStartX, r.contentEnd(), r.AlignX()+r.Width, index); ok {
		return x
	}
	return r.AlignX() + r.Width
}

func (r *Row) indexInGroup(start int, startX float32, end int, endX float32, index int) (float32, bool) {
	if end <= start {
		return 0, false
	}
	sub := r.Text[start:end]
	width := (endX - startX) / float32(uniseg.GraphemeClusterCount(sub))
	gx := startX
	g := uniseg.NewGraphemes(sub)
	for g.Next() {
		from, _ := g.Positions()
		if start+from == index {
			return gx, true
		}
		gx += width
	}
	return 0, false
}
