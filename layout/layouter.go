package layout

import (
	"github.com/gogpu/gtext/font"
	"github.com/gogpu/gtext/internal/cache"
	"github.com/gogpu/gtext/shape"
)

// FamilyResolver maps family ids to font families. Family may return nil,
// in which case the text is laid out without glyphs.
type FamilyResolver interface {
	Family(id font.FamilyID) *font.Family
}

// Shaper shapes text runs. *shape.Shaper implements it.
type Shaper interface {
	Shape(p shape.Params) *shape.ShapedText
	ShapeObscured(text string, fonts []*font.Font) *shape.ShapedText
}

// Layouter lays out styled text and caches the results.
//
// Layouter is not safe for concurrent use.
type Layouter struct {
	families FamilyResolver
	shaper   Shaper
	cache    *cache.FIFO[key, *Text]
}

// New creates a Layouter.
func New(families FamilyResolver, shaper Shaper, opts ...Option) *Layouter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Layouter{
		families: families,
		shaper:   shaper,
		cache:    cache.NewFIFO[key, *Text](cfg.cacheCapacity),
	}
}

// Layout lays out p. The result is shared with the cache and must not be
// modified.
func (l *Layouter) Layout(p Params) *Text {
	if p.Options.Obscured {
		return l.layout(p)
	}
	return l.cache.GetOrCreate(p.key(), func() *Text {
		return l.layout(p)
	})
}

// Stats returns layout cache statistics.
func (l *Layouter) Stats() cache.Stats {
	return l.cache.Stats()
}

// Reset drops every cached layout.
func (l *Layouter) Reset() {
	l.cache.Clear()
}

func (l *Layouter) layout(p Params) *Text {
	ctx := &layoutContext{
		shaper:  l.shaper,
		text:    p.Text,
		options: p.Options,
	}
	ctx.layout(l.families, p.Spans)
	return &Text{
		Text:        p.Text,
		Rows:        ctx.rows,
		lineSpacing: p.Options.lineSpacing(),
	}
}
