// Package atlas packs rasterized glyphs into two texture atlases.
//
// Outline glyphs are stored as signed distance fields in a grayscale atlas
// (see package sdf). Their slots are scaled so that the longer edge becomes
// a power of two of at least 64 pixels, which lets one slot serve any
// display size. Embedded color bitmaps, such as emoji, are stored as
// straight RGBA at device size in a color atlas.
//
// Both atlases use a shelf allocator and never free single slots. When an
// atlas runs out of space it is reset as a whole: every slot handed out
// before becomes invalid and the atlas reports Overflowed until the next
// Reset, which tells the caller to redraw.
//
// Flush generates distance fields on a worker pool sized by Config.Workers.
//
// Basic usage:
//
//	r, err := atlas.NewRasterizer(atlas.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	g, ok := r.Rasterize(f, glyphID, 32)
//	r.Flush()
//	dirty := r.Atlas(atlas.Grayscale).TakeDirty()
package atlas
