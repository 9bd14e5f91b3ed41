// Package layout breaks styled text into rows of positioned glyphs.
//
// A Layouter consumes the full text, an ordered list of style spans that
// partition it and layout Options. Each span is shaped with its font
// family and appended to the current row. When a maximum width is set,
// text is fitted greedily word by word (Unicode word boundaries), falling
// back to grapheme clusters for words that do not fit on an empty row, so
// that at least one grapheme is placed on every row.
//
// Rows partition the text: concatenating Row.Text in order yields the
// input exactly. All output distances are in logical pixels with y
// pointing down.
//
// Results are cached by structural equality of the parameters in a FIFO
// cache.
package layout
