package font

import (
	"bytes"
	"fmt"
	"sync"

	gotext "github.com/go-text/typesetting/font"
)

// ID identifies a font. Two fonts with the same ID are considered equal.
type ID string

// GlyphID is a glyph index within one font. Zero is the notdef glyph.
type GlyphID uint16

// NotDef is the glyph id a font uses for characters it does not cover.
const NotDef GlyphID = 0

// Fallback vertical metrics for faces without an hhea/OS2 table.
const (
	fallbackAscender  = 0.8
	fallbackDescender = -0.2
)

// Font is one parsed font face plus its derived metrics.
//
// GlyphIndex is safe for concurrent use. The remaining methods read the
// underlying face and, like shaping, must be serialized by the owner of
// the pipeline.
type Font struct {
	id   ID
	face *gotext.Face

	upem      float32
	ascender  float32
	descender float32
	lineGap   float32

	mu     sync.RWMutex
	glyphs map[rune]GlyphID
}

// New parses a single-face TrueType or OpenType font.
func New(id ID, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, &ParseError{ID: id, Err: ErrEmptyData}
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{ID: id, Err: err}
	}
	return newFont(id, face), nil
}

// NewFromCollection parses the face at index of a font collection (.ttc).
// A plain font file is accepted for index 0.
func NewFromCollection(id ID, data []byte, index int) (*Font, error) {
	if len(data) == 0 {
		return nil, &ParseError{ID: id, Err: ErrEmptyData}
	}
	faces, err := gotext.ParseTTC(bytes.NewReader(data))
	if err != nil {
		if index == 0 {
			return New(id, data)
		}
		return nil, &ParseError{ID: id, Err: err}
	}
	if index < 0 || index >= len(faces) {
		return nil, &ParseError{ID: id, Err: fmt.Errorf("%w: %d of %d", ErrFaceIndex, index, len(faces))}
	}
	return newFont(id, faces[index]), nil
}

func newFont(id ID, face *gotext.Face) *Font {
	f := &Font{
		id:     id,
		face:   face,
		upem:   float32(face.Upem()),
		glyphs: make(map[rune]GlyphID),
	}
	if f.upem == 0 {
		f.upem = 1000
	}
	if ext, ok := face.FontHExtents(); ok {
		f.ascender = ext.Ascender / f.upem
		f.descender = ext.Descender / f.upem
		f.lineGap = ext.LineGap / f.upem
	} else {
		f.ascender = fallbackAscender
		f.descender = fallbackDescender
	}
	return f
}

// ID returns the font identifier.
func (f *Font) ID() ID { return f.id }

// Face returns the go-text face used for shaping.
func (f *Font) Face() *gotext.Face { return f.face }

// UnitsPerEm returns the size of the design grid.
func (f *Font) UnitsPerEm() float32 { return f.upem }

// AscenderInEms returns the typographic ascender, positive above the baseline.
func (f *Font) AscenderInEms() float32 { return f.ascender }

// DescenderInEms returns the typographic descender, negative below the baseline.
func (f *Font) DescenderInEms() float32 { return f.descender }

// LineGapInEms returns the recommended gap between lines.
func (f *Font) LineGapInEms() float32 { return f.lineGap }

// GlyphIndex returns the nominal glyph for r, or NotDef when the font does
// not cover it. Results are memoized per rune.
func (f *Font) GlyphIndex(r rune) GlyphID {
	f.mu.RLock()
	id, ok := f.glyphs[r]
	f.mu.RUnlock()
	if ok {
		return id
	}

	id = NotDef
	if gid, ok := f.face.NominalGlyph(r); ok && gid <= 0xFFFF {
		id = GlyphID(gid)
	}

	f.mu.Lock()
	f.glyphs[r] = id
	f.mu.Unlock()
	return id
}

// AdvanceInEms returns the horizontal advance of a glyph.
func (f *Font) AdvanceInEms(id GlyphID) float32 {
	return f.face.HorizontalAdvance(gotext.GID(id)) / f.upem
}

// String implements fmt.Stringer.
func (f *Font) String() string { return string(f.id) }
