package layout

import (
	"github.com/gogpu/gtext/font"
	"github.com/gogpu/gtext/shape"
)

// layoutContext carries the state of one layout call. Text between
// startIndex and currentIndex has been appended to the row in progress.
type layoutContext struct {
	shaper  Shaper
	text    string
	options Options

	startIndex   int
	currentIndex int
	currentX     float32
	glyphs       []Glyph
	rows         []Row

	// Style and primary font of the latest span, used for the metrics of
	// rows without glyphs.
	style   Style
	primary *font.Font
}

func (c *layoutContext) layout(families FamilyResolver, spans []Span) {
	pos := 0
	style := Style{FontSize: DefaultFontSize}
	for _, span := range spans {
		style = span.Style
		end := min(pos+max(span.Len, 0), len(c.text))
		if end > pos {
			c.layoutSpan(families, style, pos, end)
		}
		pos = end
	}
	if pos < len(c.text) {
		c.layoutSpan(families, style, pos, len(c.text))
	}
	if c.primary == nil {
		c.setStyle(families, style)
	}
	c.finishRow()
}

func (c *layoutContext) setStyle(families FamilyResolver, style Style) []*font.Font {
	c.style = style
	c.primary = nil
	fam := families.Family(style.FamilyID)
	if fam == nil {
		return nil
	}
	c.primary = fam.Primary()
	return fam.Fonts()
}

func (c *layoutContext) layoutSpan(families FamilyResolver, style Style, start, end int) {
	fonts := c.setStyle(families, style)
	for start < end {
		bodyEnd, lineEnd := nextHardBreak(c.text, start, end)
		if bodyEnd > start {
			if c.options.unbounded() {
				c.appendText(style, c.shape(fonts, start, bodyEnd))
			} else {
				c.wrapByWord(style, fonts, start, bodyEnd)
			}
		}
		if lineEnd > bodyEnd {
			c.currentIndex = lineEnd
			c.finishRow()
		}
		start = lineEnd
	}
}

func (c *layoutContext) wrapByWord(style Style, fonts []*font.Font, start, end int) {
	f := newFitter(c, fonts, style.FontSize, start, wordSegments(c.text[start:end]))
	for !f.done() {
		if shaped := f.fit(c.remainingWidth()); shaped != nil {
			c.appendText(style, shaped)
			continue
		}
		if c.rowEmpty() {
			n := f.popFront()
			c.wrapByGrapheme(style, fonts, c.currentIndex, c.currentIndex+n)
			continue
		}
		c.finishRow()
	}
}

func (c *layoutContext) wrapByGrapheme(style Style, fonts []*font.Font, start, end int) {
	f := newFitter(c, fonts, style.FontSize, start, graphemeSegments(c.text[start:end]))
	for !f.done() {
		if shaped := f.fit(c.remainingWidth()); shaped != nil {
			c.appendText(style, shaped)
			continue
		}
		if c.rowEmpty() {
			// Nothing fits on an empty row: place one grapheme anyway.
			n := f.popFront()
			c.appendText(style, c.shape(fonts, c.currentIndex, c.currentIndex+n))
			continue
		}
		c.finishRow()
	}
}

func (c *layoutContext) shape(fonts []*font.Font, start, end int) *shape.ShapedText {
	if c.options.Obscured {
		return c.shaper.ShapeObscured(c.text[start:end], fonts)
	}
	return c.shaper.Shape(shape.Params{Text: c.text[start:end], Fonts: fonts})
}

func (c *layoutContext) remainingWidth() float32 {
	return c.options.MaxWidth - c.currentX
}

func (c *layoutContext) rowEmpty() bool {
	return c.currentIndex == c.startIndex
}

// appendText places shaped, which must start at currentIndex, on the row.
func (c *layoutContext) appendText(style Style, shaped *shape.ShapedText) {
	size := style.FontSize
	for _, g := range shaped.Glyphs {
		c.glyphs = append(c.glyphs, Glyph{
			Font:     g.Font,
			FontSize: size,
			Baseline: style.Baseline,
			Color:    style.Color,
			ID:       g.ID,
			Cluster:  c.currentIndex + g.Cluster,
			Advance:  g.AdvanceInEms * size,
			Offset:   g.OffsetInEms.Scale(size),
		})
		c.currentX += g.AdvanceInEms * size
	}
	c.currentIndex += len(shaped.Text)
}

func (c *layoutContext) finishRow() {
	row := Row{
		Text:     c.text[c.startIndex:c.currentIndex],
		Start:    c.startIndex,
		End:      c.currentIndex,
		Width:    c.currentX,
		MaxWidth: c.options.MaxWidth,
		Align:    c.options.Align,
		Glyphs:   c.glyphs,
	}
	if c.options.unbounded() {
		row.MaxWidth = c.currentX
	}

	metrics := c.glyphs
	if len(metrics) == 0 && c.primary != nil {
		metrics = []Glyph{{Font: c.primary, FontSize: c.style.FontSize, Baseline: c.style.Baseline}}
	}
	for i := range metrics {
		g := &metrics[i]
		y := g.BaselineY()
		if i == 0 {
			row.Ascender = y + g.Ascender()
			row.Descender = y + g.Descender()
			row.LineGap = g.LineGap()
			continue
		}
		row.Ascender = max(row.Ascender, y+g.Ascender())
		row.Descender = min(row.Descender, y+g.Descender())
		row.LineGap = max(row.LineGap, g.LineGap())
	}

	c.rows = append(c.rows, row)
	c.glyphs = nil
	c.startIndex = c.currentIndex
	c.currentX = 0
}
