package gtext

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gtext/atlas"
	"github.com/gogpu/gtext/font"
	"github.com/gogpu/gtext/fontload"
	"github.com/gogpu/gtext/layout"
)

func newFonts(t *testing.T, opts ...Option) *Fonts {
	t.Helper()
	f, err := NewFonts(opts...)
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func params(fid font.FamilyID, text string, size, maxWidth float32) layout.Params {
	opts := layout.DefaultOptions()
	opts.MaxWidth = maxWidth
	return layout.Params{
		Text:    text,
		Spans:   []layout.Span{{Style: layout.Style{FamilyID: fid, FontSize: size}, Len: len(text)}},
		Options: opts,
	}
}

func newTextures(f *Fonts) (gray, col *MemoryTexture) {
	gd, cd := f.TextureDescs()
	return NewMemoryTexture(gd), NewMemoryTexture(cd)
}

func rasterizeAll(f *Fonts, text *layout.Text, dpxPerPx float32) int {
	n := 0
	for i := range text.Rows {
		text.Rows[i].WalkGlyphs(func(_ float32, g *layout.Glyph) bool {
			if _, ok := f.Rasterize(g, dpxPerPx); ok {
				n++
			}
			return true
		})
	}
	return n
}

func TestNewFonts_Builtins(t *testing.T) {
	f := newFonts(t)
	sans, ok := f.FamilyID(fontload.FamilySans)
	require.True(t, ok)
	def, ok := f.DefaultFamilyID()
	require.True(t, ok)
	assert.Equal(t, sans, def)
	assert.True(t, f.IsFontKnown(fontload.GoMono))
	assert.True(t, f.IsFontFamilyKnown(sans))
	assert.False(t, f.IsFontKnown("nope"))
}

func TestNewFonts_InvalidAtlasConfig(t *testing.T) {
	_, err := NewFonts(WithAtlasConfig(atlas.Config{}))
	var cerr *atlas.ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "GraySize", cerr.Field)
}

func TestNewFonts_MissingManifest(t *testing.T) {
	_, err := NewFonts(WithManifest(filepath.Join(t.TempDir(), "fonts.toml")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewFonts_WithRegistry(t *testing.T) {
	reg := fontload.NewRegistry()
	reg.DefineFont("m", fontload.Definition{Data: gomono.TTF})
	fid := reg.DefineFamily("only", "m")

	f := newFonts(t, WithRegistry(reg))
	assert.False(t, f.IsFontKnown(fontload.GoRegular))

	text := f.Layout(params(fid, "hi", 16, layout.Unbounded))
	require.Len(t, text.Rows, 1)
	require.Len(t, text.Rows[0].Glyphs, 2)
	assert.Equal(t, font.ID("m"), text.Rows[0].Glyphs[0].Font.ID())
}

func TestFonts_LayoutIsCached(t *testing.T) {
	f := newFonts(t)
	sans, _ := f.FamilyID(fontload.FamilySans)
	p := params(sans, "The quick brown fox", 16, 100)

	a := f.Layout(p)
	b := f.Layout(p)
	assert.Same(t, a, b)

	stats := f.Stats()
	assert.Equal(t, uint64(1), stats.Layout.Hits)
	assert.Equal(t, 1, stats.Layout.Len)

	f.Reset()
	assert.NotSame(t, a, f.Layout(p))
}

func TestFonts_UpdateTextures(t *testing.T) {
	f := newFonts(t)
	sans, _ := f.FamilyID(fontload.FamilySans)
	text := f.Layout(params(sans, "Hello", 16, layout.Unbounded))
	require.Equal(t, 5, rasterizeAll(f, text, 1))

	gray, col := newTextures(f)
	require.True(t, f.UpdateTextures(gray, col))

	assert.Equal(t, 1, gray.Uploads)
	assert.False(t, gray.Dirty.Empty())
	assert.Zero(t, col.Uploads, "no color glyphs were rasterized")
	assert.Len(t, gray.Pix, 512*512)

	var lit int
	for _, v := range gray.Pix {
		if v > 0 {
			lit++
		}
	}
	assert.Positive(t, lit)
	assert.Zero(t, f.Stats().Atlas.Pending)

	// Nothing changed since the last upload.
	gray.ResetDirty()
	require.True(t, f.UpdateTextures(gray, col))
	assert.Equal(t, 1, gray.Uploads)
	assert.True(t, gray.Dirty.Empty())
}

func TestFonts_UpdateTexturesReplacesWrongBuffer(t *testing.T) {
	f := newFonts(t)
	gray := &MemoryTexture{Pix: make([]byte, 7)}
	col := &MemoryTexture{}

	require.True(t, f.UpdateTextures(gray, col))
	assert.Len(t, gray.Pix, 512*512)
	assert.Len(t, col.Pix, 512*512*4)
	assert.Equal(t, image.Rect(0, 0, 512, 512), gray.Dirty)
	assert.Equal(t, image.Rect(0, 0, 512, 512), col.Dirty)
}

func TestFonts_ColorTexturePacking(t *testing.T) {
	f := newFonts(t)
	gray, col := newTextures(f)

	// A reset marks the whole atlas dirty.
	f.raster.Reset(atlas.Color)
	img := f.raster.Atlas(atlas.Color).Image().(*image.NRGBA)
	img.SetNRGBA(3, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	require.True(t, f.UpdateTextures(gray, col))
	i := (2*512 + 3) * 4
	assert.Equal(t, []byte{30, 20, 10, 40}, col.Pix[i:i+4])
}

func TestFonts_UpdateTexturesAfterOverflow(t *testing.T) {
	cfg := atlas.DefaultConfig()
	cfg.GraySize = 128
	f := newFonts(t, WithAtlasConfig(cfg))
	sans, _ := f.FamilyID(fontload.FamilySans)
	gray, col := newTextures(f)

	text := f.Layout(params(sans, "WMQGOD", 16, layout.Unbounded))
	rasterizeAll(f, text, 1)
	require.Positive(t, f.Stats().Atlas.Resets)

	assert.False(t, f.UpdateTextures(gray, col), "an overflowed atlas asks for a redraw")
	assert.Zero(t, f.Stats().Atlas.Glyphs)

	g := &text.Rows[0].Glyphs[0]
	_, ok := f.Rasterize(g, 1)
	require.True(t, ok)
	assert.True(t, f.UpdateTextures(gray, col))
}

func TestFonts_DefineFontInvalidates(t *testing.T) {
	f := newFonts(t)
	f.DefineFont("code", fontload.Definition{Data: []byte("broken")})
	fid := f.DefineFamily("code", "code")

	text := f.Layout(params(fid, "x", 16, layout.Unbounded))
	require.Len(t, text.Rows, 1)
	assert.Empty(t, text.Rows[0].Glyphs, "a family without loadable fonts has no glyphs")

	f.DefineFont("code", fontload.Definition{Data: gomono.TTF})
	text = f.Layout(params(fid, "x", 16, layout.Unbounded))
	require.Len(t, text.Rows[0].Glyphs, 1)
	assert.Equal(t, font.ID("code"), text.Rows[0].Glyphs[0].Font.ID())
}

func TestFonts_LoadManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mono.ttf"), gomono.TTF, 0o600))
	path := filepath.Join(dir, "fonts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fonts:\n  code: {path: mono.ttf}\nfamilies:\n  code: [code, go-regular]\ndefault: code\n"), 0o600))

	f := newFonts(t, WithManifest(path))
	fid, ok := f.FamilyID("code")
	require.True(t, ok)
	def, _ := f.DefaultFamilyID()
	assert.Equal(t, fid, def)

	g := f.Layout(params(fid, "a", 16, layout.Unbounded)).Rows[0].Glyphs[0]
	assert.Equal(t, font.ID("code"), g.Font.ID())

	require.Error(t, f.LoadManifest(filepath.Join(dir, "fonts.ini")))
}

func TestFonts_Watch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mono.ttf"), gomono.TTF, 0o600))
	path := filepath.Join(dir, "fonts.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	f := newFonts(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- f.Watch(ctx, path, fontload.WithDebounce(10*time.Millisecond)) }()
	time.Sleep(100 * time.Millisecond)

	data := "[fonts.code]\npath = \"mono.ttf\"\n\n[families]\ncode = [\"code\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	require.Eventually(t, func() bool {
		_, ok := f.FamilyID("code")
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestFonts_ConcurrentUse(t *testing.T) {
	f := newFonts(t)
	sans, _ := f.FamilyID(fontload.FamilySans)
	gray, col := newTextures(f)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text := f.Layout(params(sans, "concurrent text layout", 16, float32(60+i*10)))
			rasterizeAll(f, text, 1)
		}()
	}
	wg.Wait()
	assert.True(t, f.UpdateTextures(gray, col))
}

func TestTextureDescs(t *testing.T) {
	cfg := atlas.DefaultConfig()
	cfg.ColorSize = 256
	f := newFonts(t, WithAtlasConfig(cfg))
	gray, col := f.TextureDescs()

	assert.Equal(t, gputypes.TextureFormatR8Unorm, gray.Format)
	assert.Equal(t, gputypes.TextureFormatBGRA8Unorm, col.Format)
	assert.Equal(t, gputypes.Extent3D{Width: 512, Height: 512, DepthOrArrayLayers: 1}, gray.Size)
	assert.Equal(t, uint32(256), col.Size.Width)
	assert.Equal(t, 512*512, gray.Len())
	assert.Equal(t, 256*256*4, col.Len())
	assert.NotZero(t, gray.Usage&gputypes.TextureUsageCopyDst)
}
