package shape

import (
	"sort"

	"github.com/go-text/typesetting/di"
	gtlang "github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/rivo/uniseg"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/gtext/font"
	"github.com/gogpu/gtext/internal/cache"
	"github.com/gogpu/gtext/internal/logger"
)

// Shaper shapes text with font fallback and caches the results.
//
// Shaper is not safe for concurrent use. HarfbuzzShaper keeps internal
// buffers that are reused across calls.
type Shaper struct {
	hb    shaping.HarfbuzzShaper
	lang  gtlang.Language
	cache *cache.FIFO[key, *ShapedText]
}

// New creates a Shaper.
func New(opts ...Option) *Shaper {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Shaper{
		lang:  gtlang.NewLanguage(cfg.language.String()),
		cache: cache.NewFIFO[key, *ShapedText](cfg.cacheCapacity),
	}
}

// Shape returns the shaped form of p.Text, computing it on a cache miss.
// The returned value is shared with the cache and must not be modified.
func (s *Shaper) Shape(p Params) *ShapedText {
	return s.cache.GetOrCreate(p.key(), func() *ShapedText {
		return s.shape(p)
	})
}

// Stats returns shape cache statistics.
func (s *Shaper) Stats() cache.Stats {
	return s.cache.Stats()
}

// Reset drops every cached result. Call it after fonts were redefined.
func (s *Shaper) Reset() {
	s.cache.Clear()
}

func (s *Shaper) shape(p Params) *ShapedText {
	out := &ShapedText{Text: p.Text}
	if p.Text == "" || len(p.Fonts) == 0 {
		return out
	}
	s.shapeRecursive(p.Text, p.Fonts, 0, len(p.Text), out)

	for i := 1; i < len(out.Glyphs); i++ {
		if out.Glyphs[i].Cluster < out.Glyphs[i-1].Cluster {
			logger.Get().Debug("shape: non-monotonic clusters",
				"text", p.Text, "index", i,
				"prev", out.Glyphs[i-1].Cluster, "cluster", out.Glyphs[i].Cluster)
			break
		}
	}
	return out
}

// shapeRecursive shapes text[start:end] with fonts[0] and re-shapes runs of
// missing clusters with fonts[1:]. Clusters stay relative to text.
func (s *Shaper) shapeRecursive(text string, fonts []*font.Font, start, end int, out *ShapedText) {
	glyphs := s.shapeRun(fonts[0], text, start, end)
	rest := fonts[1:]

	for i := 0; i < len(glyphs); {
		j := groupEnd(glyphs, i)
		if len(rest) == 0 || !allMissing(glyphs[i:j]) {
			for _, g := range glyphs[i:j] {
				out.push(g)
			}
			i = j
			continue
		}

		k := j
		for k < len(glyphs) {
			e := groupEnd(glyphs, k)
			if !allMissing(glyphs[k:e]) {
				break
			}
			k = e
		}
		missingStart := glyphs[i].Cluster
		missingEnd := end
		if k < len(glyphs) {
			missingEnd = glyphs[k].Cluster
		}
		if missingEnd <= missingStart {
			for _, g := range glyphs[i:k] {
				out.push(g)
			}
		} else {
			s.shapeRecursive(text, rest, missingStart, missingEnd, out)
		}
		i = k
	}
}

// shapeRun runs the shaping engine over text[start:end] with a single font.
func (s *Shaper) shapeRun(f *font.Font, text string, start, end int) []Glyph {
	sub := text[start:end]
	runes := []rune(sub)
	if len(runes) == 0 {
		return nil
	}

	// offsets[i] is the byte offset in text of runes[i].
	offsets := make([]int, 0, len(runes)+1)
	for off := range sub {
		offsets = append(offsets, start+off)
	}
	offsets = append(offsets, end)
	starts := graphemeStarts(sub, start)

	upem := f.UnitsPerEm()
	output := s.hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.Face(),
		Size:      fixed.I(int(upem)),
		Script:    detectScript(runes),
		Language:  s.lang,
	})

	glyphs := make([]Glyph, 0, len(output.Glyphs))
	for _, g := range output.Glyphs {
		ci := min(max(g.ClusterIndex, 0), len(runes)-1)
		glyphs = append(glyphs, Glyph{
			Font:         f,
			ID:           font.GlyphID(g.GlyphID),
			Cluster:      snapToGrapheme(starts, offsets[ci]),
			AdvanceInEms: fixedToFloat(g.XAdvance) / upem,
			OffsetInEms: font.Point{
				X: fixedToFloat(g.XOffset) / upem,
				Y: fixedToFloat(g.YOffset) / upem,
			},
		})
	}
	return glyphs
}

// groupEnd returns the end of the cluster group starting at i.
func groupEnd(glyphs []Glyph, i int) int {
	j := i + 1
	for j < len(glyphs) && glyphs[j].Cluster == glyphs[i].Cluster {
		j++
	}
	return j
}

func allMissing(group []Glyph) bool {
	for _, g := range group {
		if g.ID != font.NotDef {
			return false
		}
	}
	return true
}

// graphemeStarts returns the byte offsets, shifted by base, at which the
// grapheme clusters of s begin.
func graphemeStarts(s string, base int) []int {
	starts := make([]int, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		from, _ := g.Positions()
		starts = append(starts, base+from)
	}
	return starts
}

// snapToGrapheme returns the start of the grapheme containing offset.
func snapToGrapheme(starts []int, offset int) int {
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
	if i == 0 {
		return offset
	}
	return starts[i-1]
}

// detectScript returns the script of the first character that has one.
func detectScript(runes []rune) gtlang.Script {
	for _, r := range runes {
		if sc := gtlang.LookupScript(r); sc != gtlang.Common && sc != gtlang.Inherited && sc != gtlang.Unknown {
			return sc
		}
	}
	return gtlang.Latin
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
