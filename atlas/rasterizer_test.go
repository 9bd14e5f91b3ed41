package atlas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gtext/font"
)

func loadRegular(t *testing.T) *font.Font {
	t.Helper()
	f, err := font.New("go-regular", goregular.TTF)
	require.NoError(t, err)
	return f
}

func newRasterizer(t *testing.T, mutate func(*Config)) *Rasterizer {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	r, err := NewRasterizer(cfg)
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func TestNewRasterizer_InvalidConfig(t *testing.T) {
	_, err := NewRasterizer(Config{})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "GraySize", cfgErr.Field)
}

func TestRasterize_SlotStability(t *testing.T) {
	f := loadRegular(t)
	r := newRasterizer(t, nil)
	id := f.GlyphIndex('A')

	first, ok := r.Rasterize(f, id, 32)
	require.True(t, ok)
	assert.Equal(t, Grayscale, first.Kind)
	assert.Equal(t, image.Pt(512, 512), first.AtlasSize)
	assert.False(t, first.BoundsInDpxs.Empty())

	again, ok := r.Rasterize(f, id, 32)
	require.True(t, ok)
	assert.Equal(t, first, again)

	other, ok := r.Rasterize(f, id, 48)
	require.True(t, ok)
	assert.NotEqual(t, first.AtlasBounds, other.AtlasBounds, "each size gets its own page")

	stats := r.Stats()
	assert.Equal(t, 2, stats.Glyphs)
	assert.Equal(t, 2, stats.Pending)
}

func TestRasterize_BlankGlyph(t *testing.T) {
	f := loadRegular(t)
	r := newRasterizer(t, nil)

	_, ok := r.Rasterize(f, f.GlyphIndex(' '), 32)
	assert.False(t, ok)
	_, ok = r.Rasterize(f, f.GlyphIndex(' '), 32)
	assert.False(t, ok)
	assert.Zero(t, r.Stats().Glyphs)

	_, ok = r.Rasterize(f, f.GlyphIndex('A'), 0)
	assert.False(t, ok)
	_, ok = r.Rasterize(nil, 1, 32)
	assert.False(t, ok)
}

func TestFlush_WritesDistanceField(t *testing.T) {
	f := loadRegular(t)
	r := newRasterizer(t, nil)

	g, ok := r.Rasterize(f, f.GlyphIndex('I'), 32)
	require.True(t, ok)
	a := r.Atlas(Grayscale)
	assert.True(t, a.Dirty().Empty(), "nothing is drawn before Flush")

	r.Flush()

	assert.Zero(t, r.Stats().Pending)
	assert.Equal(t, uint64(1), r.Stats().Rasterized)
	assert.Equal(t, g.AtlasBounds, a.Dirty())

	gray := a.Image().(*image.Gray)
	var peak uint8
	for y := g.AtlasBounds.Min.Y; y < g.AtlasBounds.Max.Y; y++ {
		for x := g.AtlasBounds.Min.X; x < g.AtlasBounds.Max.X; x++ {
			peak = max(peak, gray.GrayAt(x, y).Y)
		}
	}
	contour := uint8(255 * (1 - DefaultConfig().SDF.Cutoff))
	assert.Greater(t, peak, contour, "the stem interior lies inside the contour")
	assert.Less(t, gray.GrayAt(g.AtlasBounds.Min.X, g.AtlasBounds.Min.Y).Y, contour,
		"padding lies outside the contour")

	assert.Equal(t, g.AtlasBounds, a.TakeDirty())
	assert.True(t, a.Dirty().Empty())
}

func TestRasterize_ResetsFullAtlas(t *testing.T) {
	f := loadRegular(t)
	// The longer edge of every SDF slot is at least 72 pixels, so a 128
	// pixel atlas runs out of shelves within a few glyphs.
	r := newRasterizer(t, func(c *Config) { c.GraySize = 128 })

	var got []Glyph
	for _, ch := range "WMQGOD" {
		g, ok := r.Rasterize(f, f.GlyphIndex(ch), 16)
		require.True(t, ok, "glyph %q", ch)
		got = append(got, g)
		if r.Stats().Resets > 0 {
			break
		}
	}

	stats := r.Stats()
	require.Equal(t, uint64(1), stats.Resets)
	assert.True(t, r.Atlas(Grayscale).Overflowed())
	assert.Equal(t, 1, stats.Glyphs, "slots from before the reset are dropped")
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, image.Point{}, got[len(got)-1].AtlasBounds.Min)

	r.Reset(Grayscale)
	assert.False(t, r.Atlas(Grayscale).Overflowed())
	assert.Zero(t, r.Stats().Glyphs)
	assert.Zero(t, r.Stats().Pending)
	assert.Equal(t, uint64(1), r.Stats().Resets, "explicit resets are not overflows")
}

func TestRasterize_TooLarge(t *testing.T) {
	f := loadRegular(t)
	r := newRasterizer(t, func(c *Config) { c.GraySize = 64 })

	_, ok := r.Rasterize(f, f.GlyphIndex('A'), 32)
	assert.False(t, ok)
	assert.Zero(t, r.Stats().Resets)
}

func TestResetAll(t *testing.T) {
	f := loadRegular(t)
	r := newRasterizer(t, nil)
	r.Rasterize(f, f.GlyphIndex('A'), 32)
	r.Flush()

	r.ResetAll()

	assert.Zero(t, r.Stats().Glyphs)
	assert.Zero(t, r.Atlas(Grayscale).Len())
	assert.Equal(t, image.Rect(0, 0, 512, 512), r.Atlas(Grayscale).Dirty(),
		"cleared pixels must be uploaded")
	for _, v := range r.Atlas(Grayscale).Image().(*image.Gray).Pix {
		if v != 0 {
			t.Fatal("atlas pixels must be cleared")
		}
	}
}

func TestDrawColor(t *testing.T) {
	r := newRasterizer(t, nil)
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	red := color.NRGBA{R: 255, A: 255}
	for y := range 4 {
		for x := range 4 {
			src.SetNRGBA(x, y, red)
		}
	}
	slot, ok := r.color.alloc.Alloc(8, 8)
	require.True(t, ok)
	r.pending = append(r.pending, job{
		kind:  Color,
		slot:  slot,
		dpx:   8,
		image: &font.RasterImage{Image: src},
	})

	r.Flush()

	img := r.Atlas(Color).Image().(*image.NRGBA)
	assert.Equal(t, red, img.NRGBAAt(5, 5))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 0), "padding stays transparent")
	assert.Equal(t, slot.Rect, r.Atlas(Color).Dirty())
}

func TestCoverage_Square(t *testing.T) {
	o := &font.Outline{
		Segments: []font.OutlineSegment{
			{Op: font.OutlineOpMoveTo, Points: [3]font.Point{{X: 0, Y: 0}}},
			{Op: font.OutlineOpLineTo, Points: [3]font.Point{{X: 1, Y: 0}}},
			{Op: font.OutlineOpLineTo, Points: [3]font.Point{{X: 1, Y: 1}}},
			{Op: font.OutlineOpLineTo, Points: [3]font.Point{{X: 0, Y: 1}}},
		},
		Bounds: font.Rect{Max: font.Point{X: 1, Y: 1}},
	}

	cov := coverage(o, 10, 2, 14, 14)

	assert.Equal(t, uint8(255), cov.AlphaAt(7, 7).A)
	assert.Equal(t, uint8(255), cov.AlphaAt(2, 2).A)
	assert.Equal(t, uint8(0), cov.AlphaAt(1, 1).A)
	assert.Equal(t, uint8(0), cov.AlphaAt(12, 12).A)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Grayscale", Grayscale.String())
	assert.Equal(t, "Color", Color.String())
	assert.Equal(t, "Unknown", Kind(7).String())
}

func TestFlush_WorkersMatchSequential(t *testing.T) {
	f := loadRegular(t)
	seq := newRasterizer(t, func(c *Config) { c.Workers = 1 })
	par := newRasterizer(t, func(c *Config) { c.Workers = 4 })

	for _, ch := range "Sphinx of black quartz" {
		_, ok1 := seq.Rasterize(f, f.GlyphIndex(ch), 24)
		_, ok2 := par.Rasterize(f, f.GlyphIndex(ch), 24)
		require.Equal(t, ok1, ok2)
	}
	seq.Flush()
	par.Flush()

	assert.Equal(t, seq.Stats().Rasterized, par.Stats().Rasterized)
	assert.Equal(t, seq.Atlas(Grayscale).Dirty(), par.Atlas(Grayscale).Dirty())
	assert.Equal(t,
		seq.Atlas(Grayscale).Image().(*image.Gray).Pix,
		par.Atlas(Grayscale).Image().(*image.Gray).Pix)

	// Flushing after Close still draws.
	par.Close()
	_, ok := par.Rasterize(f, f.GlyphIndex('Z'), 40)
	require.True(t, ok)
	par.Flush()
	assert.Zero(t, par.Stats().Pending)
}
