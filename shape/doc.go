// Package shape converts text into positioned glyph references using an
// ordered list of fallback fonts.
//
// Shaping runs HarfBuzz (via github.com/go-text/typesetting) with the
// first font of the list. Every maximal run of clusters for which that font
// produced only notdef glyphs is shaped again, recursively, with the
// remaining fonts. When no fonts remain the notdef glyph is kept; a
// missing glyph is never an error.
//
// Output is independent of font size: advances and offsets are in ems and
// clusters are byte offsets into the shaped text, always at grapheme
// boundaries.
//
// Results are cached by (text, font list) in a FIFO cache.
package shape
