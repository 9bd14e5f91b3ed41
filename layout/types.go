package layout

import (
	"encoding/binary"
	"image/color"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/gtext/font"
)

const unknownStr = "Unknown"

// Unbounded is the MaxWidth that disables wrapping.
var Unbounded = math32.Inf(1)

// DefaultFontSize is the font size, in logical pixels, of text not covered
// by any span when no span exists at all.
const DefaultFontSize = 16

// Baseline selects the vertical reference a glyph is positioned against.
type Baseline uint8

const (
	// BaselineAlphabetic places the alphabetic baseline on the row origin.
	BaselineAlphabetic Baseline = iota

	// BaselineTop shifts glyphs down by the font ascender.
	BaselineTop

	// BaselineBottom shifts glyphs by the font descender.
	BaselineBottom
)

// String returns the string representation of the baseline.
func (b Baseline) String() string {
	switch b {
	case BaselineAlphabetic:
		return "Alphabetic"
	case BaselineTop:
		return "Top"
	case BaselineBottom:
		return "Bottom"
	default:
		return unknownStr
	}
}

// Align is the horizontal alignment of rows within the maximum width.
type Align uint8

const (
	// AlignLeft aligns rows to the left edge.
	AlignLeft Align = iota

	// AlignCenter centers rows.
	AlignCenter

	// AlignRight aligns rows to the right edge.
	AlignRight
)

// String returns the string representation of the alignment.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	default:
		return unknownStr
	}
}

// Style is the uniform styling of one span.
type Style struct {
	FamilyID font.FamilyID
	FontSize float32
	Baseline Baseline
	Color    color.RGBA
}

// Span applies Style to the next Len bytes of the text.
type Span struct {
	Style Style
	Len   int
}

// Options control line breaking.
type Options struct {
	// MaxWidth is the available row width. Unbounded (or NaN) disables
	// wrapping.
	MaxWidth float32

	Align Align

	// LineSpacing scales the height of every row. Zero means 1.
	LineSpacing float32

	// Obscured replaces every grapheme with a placeholder glyph, as used by
	// password fields. Obscured layouts are never cached.
	Obscured bool
}

// DefaultOptions returns unbounded, left-aligned options.
func DefaultOptions() Options {
	return Options{MaxWidth: Unbounded, LineSpacing: 1}
}

func (o Options) unbounded() bool {
	return math32.IsInf(o.MaxWidth, 1) || math32.IsNaN(o.MaxWidth)
}

func (o Options) lineSpacing() float32 {
	if o.LineSpacing <= 0 || math32.IsNaN(o.LineSpacing) {
		return 1
	}
	return o.LineSpacing
}

// Params is the input of a layout call and the key of the layout cache.
type Params struct {
	Text    string
	Spans   []Span
	Options Options
}

type key struct {
	text        string
	spans       string
	maxWidth    uint32
	align       Align
	lineSpacing uint32
}

func (p Params) key() key {
	buf := make([]byte, 0, len(p.Spans)*26)
	for _, s := range p.Spans {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Style.FamilyID))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(s.Style.FontSize))
		buf = append(buf, byte(s.Style.Baseline),
			s.Style.Color.R, s.Style.Color.G, s.Style.Color.B, s.Style.Color.A)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Len))
	}
	maxWidth := p.Options.MaxWidth
	if p.Options.unbounded() {
		maxWidth = Unbounded
	}
	return key{
		text:        p.Text,
		spans:       string(buf),
		maxWidth:    math.Float32bits(maxWidth),
		align:       p.Options.Align,
		lineSpacing: math.Float32bits(p.Options.lineSpacing()),
	}
}
