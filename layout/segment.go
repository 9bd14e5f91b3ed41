package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// segment is a run of text that line breaking never splits.
type segment struct {
	len   int
	space bool
}

func wordSegments(s string) []segment {
	var segs []segment
	state := -1
	for s != "" {
		var word string
		word, s, state = uniseg.FirstWordInString(s, state)
		segs = append(segs, segment{len: len(word), space: isSpace(word)})
	}
	return segs
}

func graphemeSegments(s string) []segment {
	var segs []segment
	state := -1
	for s != "" {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		segs = append(segs, segment{len: len(cluster), space: isSpace(cluster)})
	}
	return segs
}

func isSpace(s string) bool {
	return s != "" && strings.TrimLeftFunc(s, unicode.IsSpace) == ""
}

const hardBreaks = "\n\r\u0085\u2028\u2029"

// nextHardBreak finds the first mandatory line break in text[start:end].
// It returns the end of the text before the break and the end of the break
// sequence. Without a break both are end.
func nextHardBreak(text string, start, end int) (bodyEnd, lineEnd int) {
	i := strings.IndexAny(text[start:end], hardBreaks)
	if i < 0 {
		return end, end
	}
	bodyEnd = start + i
	r, size := utf8.DecodeRuneInString(text[bodyEnd:end])
	lineEnd = bodyEnd + size
	if r == '\r' && lineEnd < end && text[lineEnd] == '\n' {
		lineEnd++
	}
	return bodyEnd, lineEnd
}

// trailingBreakLen returns the byte length of the hard break sequence s
// ends with, or 0.
func trailingBreakLen(s string) int {
	if strings.HasSuffix(s, "\r\n") {
		return 2
	}
	r, size := utf8.DecodeLastRuneInString(s)
	if size > 0 && strings.ContainsRune(hardBreaks, r) {
		return size
	}
	return 0
}
