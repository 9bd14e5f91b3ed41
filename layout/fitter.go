package layout

import (
	"github.com/gogpu/gtext/font"
	"github.com/gogpu/gtext/shape"
)

// fitter finds the longest prefix of a segment list that fits a width.
// Segment widths are measured in isolation once; candidates are shaped as a
// whole since shaping across segment boundaries can change the width.
type fitter struct {
	ctx      *layoutContext
	fonts    []*font.Font
	fontSize float32

	// start is the byte offset of the first remaining segment.
	start  int
	segs   []segment
	widths []float32
}

func newFitter(ctx *layoutContext, fonts []*font.Font, fontSize float32, start int, segs []segment) *fitter {
	f := &fitter{
		ctx:      ctx,
		fonts:    fonts,
		fontSize: fontSize,
		start:    start,
		segs:     segs,
		widths:   make([]float32, len(segs)),
	}
	off := start
	for i, s := range segs {
		f.widths[i] = ctx.shape(fonts, off, off+s.len).WidthInEms * fontSize
		off += s.len
	}
	return f
}

func (f *fitter) done() bool { return len(f.segs) == 0 }

// fit returns the shaped longest prefix of the remaining segments whose
// width, not counting trailing whitespace, is at most maxWidth. The prefix
// is consumed. It returns nil when not even one segment fits.
func (f *fitter) fit(maxWidth float32) *shape.ShapedText {
	count := len(f.segs)
	textLen := 0
	var width float32
	for i, s := range f.segs {
		textLen += s.len
		width += f.widths[i]
	}
	for count > 0 {
		if shaped := f.fitStep(maxWidth, count, textLen, width); shaped != nil {
			f.start += textLen
			f.segs = f.segs[count:]
			f.widths = f.widths[count:]
			return shaped
		}
		count--
		textLen -= f.segs[count].len
		width -= f.widths[count]
	}
	return nil
}

func (f *fitter) fitStep(maxWidth float32, count, textLen int, width float32) *shape.ShapedText {
	// Trailing whitespace hangs past the edge.
	hangLen := 0
	var hangWidth float32
	for i := count - 1; i >= 0 && f.segs[i].space; i-- {
		hangLen += f.segs[i].len
		hangWidth += f.widths[i]
	}
	// Shaping never shrinks a run to less than half its isolated width.
	if 0.5*(width-hangWidth) > maxWidth {
		return nil
	}
	shaped := f.ctx.shape(f.fonts, f.start, f.start+textLen)
	if shaped.WidthBefore(textLen-hangLen)*f.fontSize > maxWidth {
		return nil
	}
	return shaped
}

// popFront drops the first remaining segment and returns its byte length.
func (f *fitter) popFront() int {
	n := f.segs[0].len
	f.start += n
	f.segs = f.segs[1:]
	f.widths = f.widths[1:]
	return n
}
