package layout

import (
	"image/color"

	"github.com/gogpu/gtext/font"
)

// Glyph is a positioned glyph of a laid out row. Sizes are in logical
// pixels.
type Glyph struct {
	Font     *font.Font
	FontSize float32
	Baseline Baseline
	Color    color.RGBA

	ID font.GlyphID

	// Cluster is the byte offset in the full text of the first character
	// this glyph represents.
	Cluster int

	Advance float32
	Offset  font.Point
}

// Ascender returns the font ascender at the glyph's size.
func (g *Glyph) Ascender() float32 { return g.Font.AscenderInEms() * g.FontSize }

// Descender returns the font descender at the glyph's size. It is usually
// negative.
func (g *Glyph) Descender() float32 { return g.Font.DescenderInEms() * g.FontSize }

// LineGap returns the font line gap at the glyph's size.
func (g *Glyph) LineGap() float32 { return g.Font.LineGapInEms() * g.FontSize }

// BaselineY returns how far the glyph is shifted from the row's alphabetic
// baseline by its Baseline setting.
func (g *Glyph) BaselineY() float32 {
	switch g.Baseline {
	case BaselineTop:
		return g.Ascender()
	case BaselineBottom:
		return g.Descender()
	default:
		return 0
	}
}

// Row is one line of laid out text.
type Row struct {
	// Text is the row's slice of the full text, Start and End its byte
	// range. A trailing hard line break belongs to the row it ends.
	Text  string
	Start int
	End   int

	// Width is the summed advance of all glyphs on the row.
	Width float32

	// MaxWidth is the width the row is aligned in: the layout maximum, or
	// Width when unbounded.
	MaxWidth float32
	Align    Align

	Ascender  float32
	Descender float32
	LineGap   float32

	Glyphs []Glyph
}

// Height returns the ascender-to-descender extent of the row.
func (r *Row) Height() float32 { return r.Ascender - r.Descender }

// AlignX returns the x coordinate at which the row's first glyph starts.
func (r *Row) AlignX() float32 {
	switch r.Align {
	case AlignCenter:
		return (r.MaxWidth - r.Width) / 2
	case AlignRight:
		return r.MaxWidth - r.Width
	default:
		return 0
	}
}

// WalkGlyphs calls fn with each glyph and its pen x position, starting at
// AlignX. It stops when fn returns false.
func (r *Row) WalkGlyphs(fn func(x float32, g *Glyph) bool) {
	x := r.AlignX()
	for i := range r.Glyphs {
		g := &r.Glyphs[i]
		if !fn(x, g) {
			return
		}
		x += g.Advance
	}
}

// contentEnd returns the row-relative end of the row text without its
// trailing hard line break.
func (r *Row) contentEnd() int {
	return len(r.Text) - trailingBreakLen(r.Text)
}

// Text is the result of a layout call.
type Text struct {
	Text string
	Rows []Row

	lineSpacing float32
}

// WalkRows calls fn with each row and the y coordinate of its baseline. It
// stops when fn returns false.
func (t *Text) WalkRows(fn func(y float32, row *Row) bool) {
	var y float32
	for i := range t.Rows {
		row := &t.Rows[i]
		if i > 0 {
			prev := &t.Rows[i-1]
			y += prev.LineGap + (t.lineSpacing-1)*prev.Height()
		}
		y += row.Ascender
		if !fn(y, row) {
			return
		}
		y -= row.Descender
	}
}

// Size returns the widest row width and the total height of the text.
func (t *Text) Size() (width, height float32) {
	t.WalkRows(func(y float32, row *Row) bool {
		width = max(width, row.Width)
		height = y - row.Descender
		return true
	})
	return width, height
}
