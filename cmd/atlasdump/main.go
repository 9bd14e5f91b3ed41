// Command atlasdump lays out text, rasterizes its glyphs and writes the
// glyph atlases as PNG images.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gtext"
	"github.com/gogpu/gtext/layout"
)

func main() {
	var (
		text     = flag.String("text", "The quick brown fox jumps over the lazy dog", "text to lay out")
		family   = flag.String("family", "sans", "font family name")
		size     = flag.Float64("size", 16, "font size in logical pixels")
		width    = flag.Float64("width", 0, "maximum row width, 0 for unbounded")
		scale    = flag.Float64("scale", 1, "device pixels per logical pixel")
		manifest = flag.String("manifest", "", "font manifest (.toml or .yaml)")
		grayOut  = flag.String("gray", "atlas-gray.png", "grayscale atlas output file")
		colorOut = flag.String("color", "", "color atlas output file, empty to skip")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		gtext.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var opts []gtext.Option
	if *manifest != "" {
		opts = append(opts, gtext.WithManifest(*manifest))
	}
	fonts, err := gtext.NewFonts(opts...)
	if err != nil {
		log.Fatalf("Failed to create fonts: %v", err)
	}
	defer fonts.Close()

	fid, ok := fonts.FamilyID(*family)
	if !ok {
		log.Fatalf("Unknown font family %q", *family)
	}

	lopts := layout.DefaultOptions()
	if *width > 0 {
		lopts.MaxWidth = float32(*width)
	}
	laid := fonts.Layout(layout.Params{
		Text:    *text,
		Spans:   []layout.Span{{Style: layout.Style{FamilyID: fid, FontSize: float32(*size)}, Len: len(*text)}},
		Options: lopts,
	})

	glyphs := 0
	laid.WalkRows(func(y float32, row *layout.Row) bool {
		fmt.Printf("%6.1f  %q\n", y, row.Text)
		row.WalkGlyphs(func(_ float32, g *layout.Glyph) bool {
			if _, ok := fonts.Rasterize(g, float32(*scale)); ok {
				glyphs++
			}
			return true
		})
		return true
	})
	fonts.Flush()

	stats := fonts.Stats().Atlas
	gray, color := fonts.TextureDescs()
	grayTex, colorTex := gtext.NewMemoryTexture(gray), gtext.NewMemoryTexture(color)
	if !fonts.UpdateTextures(grayTex, colorTex) {
		log.Fatalf("Atlas overflowed; use a larger atlas or less text")
	}

	w, h := int(gray.Size.Width), int(gray.Size.Height)
	grayImg := &image.Gray{Pix: grayTex.Pix, Stride: w, Rect: image.Rect(0, 0, w, h)}
	if err := savePNG(*grayOut, grayImg); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Grayscale atlas saved to %s (%dx%d, %d glyphs, %.1f%% used)\n",
		*grayOut, w, h, glyphs, stats.GrayUtilization*100)

	if *colorOut != "" {
		w, h := int(color.Size.Width), int(color.Size.Height)
		if err := savePNG(*colorOut, bgraToNRGBA(colorTex.Pix, w, h)); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Color atlas saved to %s (%dx%d, %.1f%% used)\n",
			*colorOut, w, h, stats.ColorUtilization*100)
	}
}

// bgraToNRGBA converts texture pixels back to an image.
func bgraToNRGBA(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pix) && i+3 < len(img.Pix); i += 4 {
		img.Pix[i+0] = pix[i+2]
		img.Pix[i+1] = pix[i+1]
		img.Pix[i+2] = pix[i+0]
		img.Pix[i+3] = pix[i+3]
	}
	return img
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
