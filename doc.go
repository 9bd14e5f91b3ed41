// Package gtext shapes, lays out and rasterizes text for GPU renderers.
//
// # Overview
//
// gtext turns styled strings into rows of positioned glyphs and keeps the
// glyph images in two texture atlases: a grayscale atlas of signed distance
// fields for outline glyphs and a color atlas for bitmap glyphs such as
// emoji. Renderers draw each glyph as a textured quad.
//
// # Quick Start
//
//	fonts, err := gtext.NewFonts()
//	if err != nil {
//	    return err
//	}
//	sans, _ := fonts.FamilyID("sans")
//
//	text := fonts.Layout(layout.Params{
//	    Text:    "Hello, world",
//	    Spans:   []layout.Span{{Style: layout.Style{FamilyID: sans, FontSize: 16}, Len: 12}},
//	    Options: layout.DefaultOptions(),
//	})
//	text.WalkRows(func(y float32, row *layout.Row) bool {
//	    row.WalkGlyphs(func(x float32, g *layout.Glyph) bool {
//	        slot, ok := fonts.Rasterize(g, dpxPerPx)
//	        // queue a quad for slot at (x, y)
//	        return true
//	    })
//	    return true
//	})
//
//	// Once per frame, before drawing:
//	if !fonts.UpdateTextures(grayTexture, colorTexture) {
//	    // An atlas overflowed; lay out and rasterize the frame again.
//	}
//
// # Architecture
//
// The library is organized into:
//   - font: parsed font files, outlines, color bitmaps and families
//   - shape: shaping with per-grapheme font fallback and a FIFO cache
//   - layout: line breaking, alignment and cursor mapping
//   - atlas: slot allocation, SDF and color rasterization, dirty regions
//   - sdf: distance field generation from coverage masks
//   - fontload: font registry, builtin fonts, manifests and hot reload
//
// Fonts ties them together behind one mutex.
//
// # Coordinate System
//
// Layout sizes are in logical pixels. The y axis points down; glyph
// outlines use font units with y up and are flipped when rasterized.
package gtext

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
