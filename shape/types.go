package shape

import (
	"github.com/gogpu/gtext/font"
)

// Params is the input of a shaping call and the key of the shape cache.
type Params struct {
	Text  string
	Fonts []*font.Font
}

// key is the comparable form of Params.
type key struct {
	text  string
	fonts string
}

func (p Params) key() key {
	return key{text: p.Text, fonts: font.Key(p.Fonts)}
}

// Glyph is one positioned glyph reference.
type Glyph struct {
	Font *font.Font
	ID   font.GlyphID

	// Cluster is the byte offset in the shaped text of the first character
	// this glyph represents.
	Cluster int

	AdvanceInEms float32
	OffsetInEms  font.Point
}

// ShapedText is the result of shaping.
type ShapedText struct {
	// Text is the shaped text. Glyph clusters index into it.
	Text   string
	Glyphs []Glyph

	// WidthInEms is the sum of all glyph advances.
	WidthInEms float32
}

func (t *ShapedText) push(g Glyph) {
	t.Glyphs = append(t.Glyphs, g)
	t.WidthInEms += g.AdvanceInEms
}

// WidthBefore returns the summed advance of all glyphs whose cluster lies
// before offset.
func (t *ShapedText) WidthBefore(offset int) float32 {
	var w float32
	for _, g := range t.Glyphs {
		if g.Cluster >= offset {
			break
		}
		w += g.AdvanceInEms
	}
	return w
}

// HeightInEms returns the tallest ascender-to-descender extent among the
// fonts used by the glyphs.
func (t *ShapedText) HeightInEms() float32 {
	var h float32
	for _, g := range t.Glyphs {
		h = max(h, g.Font.AscenderInEms()-g.Font.DescenderInEms())
	}
	return h
}
