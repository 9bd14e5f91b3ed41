// Package font wraps parsed OpenType faces for the shaping, layout and
// rasterization pipeline.
//
// A Font is immutable once constructed. All metrics are normalized to ems
// (font units divided by units-per-em), so callers multiply by a font size
// to obtain logical or device pixels. The only mutable state is a memoized
// rune to glyph id table.
//
// A Family is an ordered list of fonts that defines fallback priority: the
// first font with a non-notdef glyph for a cluster wins.
//
// Parsing, outlines and embedded color bitmaps come from
// github.com/go-text/typesetting.
package font
