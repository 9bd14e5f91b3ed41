package gtext

import (
	"context"
	"sync"

	"github.com/gogpu/gtext/atlas"
	"github.com/gogpu/gtext/font"
	"github.com/gogpu/gtext/fontload"
	"github.com/gogpu/gtext/internal/cache"
	"github.com/gogpu/gtext/internal/logger"
	"github.com/gogpu/gtext/layout"
	"github.com/gogpu/gtext/shape"
)

// Fonts owns the font registry, the shaping and layout caches and the
// glyph atlases. Create one per renderer and share it.
//
// Fonts is safe for concurrent use. The Text values it returns are shared
// with its cache and must not be modified.
type Fonts struct {
	mu       sync.Mutex
	registry *fontload.Registry
	shaper   *shape.Shaper
	layouter *layout.Layouter
	raster   *atlas.Rasterizer
}

// Stats holds cache and atlas statistics.
type Stats struct {
	Shape  cache.Stats
	Layout cache.Stats
	Atlas  atlas.Stats
}

// NewFonts creates a Fonts. Without WithRegistry the builtin fonts are
// registered and "sans" is the default family.
func NewFonts(opts ...Option) (*Fonts, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.atlas.Validate(); err != nil {
		return nil, err
	}
	reg := o.registry
	if reg == nil {
		reg = fontload.NewRegistry()
		fontload.RegisterBuiltins(reg)
	}
	if o.manifest != "" {
		m, err := fontload.LoadManifest(o.manifest)
		if err != nil {
			return nil, err
		}
		if err := m.Apply(reg); err != nil {
			return nil, err
		}
	}

	raster, err := atlas.NewRasterizer(o.atlas)
	if err != nil {
		return nil, err
	}
	s := shape.New(shape.WithCacheCapacity(o.shapeCacheCapacity), shape.WithLanguage(o.language))
	return &Fonts{
		registry: reg,
		shaper:   s,
		layouter: layout.New(reg, s, layout.WithCacheCapacity(o.layoutCacheCapacity)),
		raster:   raster,
	}, nil
}

// Layout lays out p, reusing a cached result when the same text, spans and
// options were laid out before.
func (f *Fonts) Layout(p layout.Params) *layout.Text {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.layouter.Layout(p)
}

// Rasterize returns the atlas slot of a laid out glyph drawn at dpxPerPx
// device pixels per logical pixel. The slot holds pixels after the next
// Flush or UpdateTextures.
func (f *Fonts) Rasterize(g *layout.Glyph, dpxPerPx float32) (atlas.Glyph, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raster.Rasterize(g.Font, g.ID, g.FontSize*dpxPerPx)
}

// RasterizeFontGlyph is Rasterize for a glyph given by font and id.
func (f *Fonts) RasterizeFontGlyph(fnt *font.Font, id font.GlyphID, dpxPerEm float32) (atlas.Glyph, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raster.Rasterize(fnt, id, dpxPerEm)
}

// Flush draws pending glyphs into the atlases.
func (f *Fonts) Flush() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raster.Flush()
}

// UpdateTextures flushes pending glyphs and copies the changed atlas
// regions into the textures.
//
// If an atlas overflowed since the last update, the glyph slots handed
// out this frame are stale: the atlas is reset and UpdateTextures returns
// false. The caller should then lay out and rasterize the frame again.
func (f *Fonts) UpdateTextures(gray, color Texture) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.raster.Flush()
	for _, u := range []struct {
		kind atlas.Kind
		tex  Texture
	}{
		{atlas.Grayscale, gray},
		{atlas.Color, color},
	} {
		a := f.raster.Atlas(u.kind)
		if a.Overflowed() {
			f.raster.Reset(u.kind)
			return false
		}
		upload(u.tex, a)
	}
	return true
}

// TextureDescs returns the descriptions of the textures UpdateTextures
// writes to.
func (f *Fonts) TextureDescs() (gray, color TextureDesc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return textureDesc(f.raster.Atlas(atlas.Grayscale)), textureDesc(f.raster.Atlas(atlas.Color))
}

// DefineFont defines or redefines a font. Cached layouts and atlas slots
// are dropped.
func (f *Fonts) DefineFont(id font.ID, def fontload.Definition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registry.DefineFont(id, def)
	f.invalidate()
}

// DefineFamily defines a named family with the given fallback order and
// returns its id. Cached layouts and atlas slots are dropped.
func (f *Fonts) DefineFamily(name string, ids ...font.ID) font.FamilyID {
	f.mu.Lock()
	defer f.mu.Unlock()
	fid := f.registry.DefineFamily(name, ids...)
	f.invalidate()
	return fid
}

// FamilyID returns the id of the named family.
func (f *Fonts) FamilyID(name string) (font.FamilyID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registry.FamilyIDByName(name)
}

// DefaultFamilyID returns the id of the family used for unknown ids.
func (f *Fonts) DefaultFamilyID() (font.FamilyID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registry.DefaultFamilyID()
}

// IsFontKnown reports whether a font with the given id was defined.
func (f *Fonts) IsFontKnown(id font.ID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registry.IsFontKnown(id)
}

// IsFontFamilyKnown reports whether a family with the given id was defined.
func (f *Fonts) IsFontFamilyKnown(fid font.FamilyID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registry.IsFontFamilyKnown(fid)
}

// ApplyManifest defines the manifest's fonts and families.
func (f *Fonts) ApplyManifest(m *fontload.Manifest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := m.Apply(f.registry); err != nil {
		return err
	}
	f.invalidate()
	return nil
}

// LoadManifest reads the manifest at path and applies it.
func (f *Fonts) LoadManifest(path string) error {
	m, err := fontload.LoadManifest(path)
	if err != nil {
		return err
	}
	return f.ApplyManifest(m)
}

// Watch applies the manifest at path every time it changes until ctx is
// done. It blocks; run it in its own goroutine.
func (f *Fonts) Watch(ctx context.Context, path string, opts ...fontload.WatchOption) error {
	return fontload.Watch(ctx, path, func(m *fontload.Manifest) {
		if err := f.ApplyManifest(m); err != nil {
			logger.Get().Warn("gtext: manifest not applied", "path", path, "err", err)
		}
	}, opts...)
}

// Close stops the rasterizer's workers. Fonts remains usable.
func (f *Fonts) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raster.Close()
}

// Reset drops all cached shapes, layouts and atlas contents.
func (f *Fonts) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidate()
}

// Stats returns cache and atlas statistics.
func (f *Fonts) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Stats{
		Shape:  f.shaper.Stats(),
		Layout: f.layouter.Stats(),
		Atlas:  f.raster.Stats(),
	}
}

func (f *Fonts) invalidate() {
	f.shaper.Reset()
	f.layouter.Reset()
	f.raster.ResetAll()
}
