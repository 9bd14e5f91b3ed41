package shape

import (
	"github.com/rivo/uniseg"

	"github.com/gogpu/gtext/font"
)

// Placeholder is the character drawn for every grapheme of obscured text.
const Placeholder = '•'

// ShapeObscured produces one placeholder glyph per grapheme cluster of text,
// without running the shaping engine over it and without caching. Each
// glyph's cluster is the byte offset of its grapheme.
//
// The placeholder glyph comes from the first font in fonts that covers
// U+2022; if none does, the primary font's notdef glyph is used.
func (s *Shaper) ShapeObscured(text string, fonts []*font.Font) *ShapedText {
	out := &ShapedText{Text: text}
	if text == "" || len(fonts) == 0 {
		return out
	}

	f, id := placeholderGlyph(fonts)
	adv := f.AdvanceInEms(id)
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, _ := g.Positions()
		out.push(Glyph{
			Font:         f,
			ID:           id,
			Cluster:      from,
			AdvanceInEms: adv,
		})
	}
	return out
}

func placeholderGlyph(fonts []*font.Font) (*font.Font, font.GlyphID) {
	for _, f := range fonts {
		if id := f.GlyphIndex(Placeholder); id != font.NotDef {
			return f, id
		}
	}
	return fonts[0], font.NotDef
}
