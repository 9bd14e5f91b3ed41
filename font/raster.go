package font

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/tiff"

	"github.com/gogpu/gtext/internal/logger"
)

// RasterImage is an embedded color bitmap of a glyph, such as an emoji.
type RasterImage struct {
	// Image holds straight (non-premultiplied) RGBA pixels.
	Image *image.NRGBA

	// Bounds is the glyph box in ems, y pointing up.
	Bounds Rect
}

// RasterImage returns the embedded bitmap for a glyph at the strike closest
// to dpxPerEm. It returns false when the glyph has no bitmap or the bitmap
// cannot be decoded; other glyphs are unaffected.
func (f *Font) RasterImage(id GlyphID, dpxPerEm float32) (*RasterImage, bool) {
	ppem := uint16(min(max(dpxPerEm, 1), 0xFFFF))
	f.face.SetPpem(ppem, ppem)
	data := f.face.GlyphData(gotext.GID(id))
	ext, hasExt := f.face.GlyphExtents(gotext.GID(id))
	f.face.SetPpem(0, 0)

	bitmap, ok := data.(gotext.GlyphBitmap)
	if !ok || bitmap.Width <= 0 || bitmap.Height <= 0 {
		return nil, false
	}
	img, err := decodeBitmap(bitmap)
	if err != nil {
		logger.Get().Debug("font: skipping corrupt glyph bitmap",
			"font", string(f.id), "glyph", id, "err", err)
		return nil, false
	}

	var bounds Rect
	if hasExt && ext.Width != 0 && ext.Height != 0 {
		// Extents follow the HarfBuzz convention: YBearing is the top and
		// Height is negative.
		bounds = Rect{
			Min: Point{X: ext.XBearing, Y: ext.YBearing + ext.Height},
			Max: Point{X: ext.XBearing + ext.Width, Y: ext.YBearing},
		}.Scale(1 / f.upem)
	} else {
		b := img.Bounds()
		w := float32(b.Dx()) / float32(b.Dy())
		bounds = Rect{
			Min: Point{X: 0, Y: f.descender},
			Max: Point{X: w * (f.ascender - f.descender), Y: f.ascender},
		}
	}
	return &RasterImage{Image: img, Bounds: bounds}, true
}

func decodeBitmap(b gotext.GlyphBitmap) (*image.NRGBA, error) {
	var (
		img image.Image
		err error
	)
	switch b.Format {
	case gotext.PNG:
		img, err = png.Decode(bytes.NewReader(b.Data))
	case gotext.JPG:
		img, err = jpeg.Decode(bytes.NewReader(b.Data))
	case gotext.TIFF:
		img, err = tiff.Decode(bytes.NewReader(b.Data))
	case gotext.BlackAndWhite:
		img, err = decodeMono(b.Data, b.Width, b.Height)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedBitmap, b.Format)
	}
	if err != nil {
		return nil, err
	}
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba, nil
	}
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out, nil
}

// decodeMono expands a 1 bit per pixel bitmap whose rows are padded to a
// byte boundary.
func decodeMono(data []byte, w, h int) (image.Image, error) {
	stride := (w + 7) / 8
	if len(data) < stride*h {
		return nil, fmt.Errorf("font: short monochrome bitmap: %d bytes for %dx%d", len(data), w, h)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := data[y*stride:]
		for x := 0; x < w; x++ {
			if row[x/8]&(0x80>>(x%8)) != 0 {
				img.SetNRGBA(x, y, color.NRGBA{A: 0xFF})
			}
		}
	}
	return img, nil
}
