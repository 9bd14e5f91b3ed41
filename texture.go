package gtext

import (
	"encoding/binary"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gtext/atlas"
)

// TextureDesc describes the GPU texture that mirrors one atlas.
type TextureDesc struct {
	Format gputypes.TextureFormat
	Size   gputypes.Extent3D
	Usage  gputypes.TextureUsage
}

// BytesPerPixel returns the pixel size of the texture format.
func (d TextureDesc) BytesPerPixel() int {
	if d.Format == gputypes.TextureFormatR8Unorm {
		return 1
	}
	return 4
}

// Len returns the size in bytes of the texture's pixel buffer.
func (d TextureDesc) Len() int {
	return int(d.Size.Width) * int(d.Size.Height) * d.BytesPerPixel()
}

// TextureFormat returns the texture format that mirrors an atlas of the
// given kind: R8 for distance fields and BGRA8 for color glyphs.
func TextureFormat(kind atlas.Kind) gputypes.TextureFormat {
	if kind == atlas.Color {
		return gputypes.TextureFormatBGRA8Unorm
	}
	return gputypes.TextureFormatR8Unorm
}

func textureDesc(a *atlas.Atlas) TextureDesc {
	size := a.Size()
	return TextureDesc{
		Format: TextureFormat(a.Kind()),
		Size: gputypes.Extent3D{
			Width:              uint32(size.X),
			Height:             uint32(size.Y),
			DepthOrArrayLayers: 1,
		},
		Usage: gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}

// Texture is the destination of atlas uploads.
//
// TakePixels hands out the texture's CPU-side pixel buffer, tightly packed
// rows in the texture's format. A buffer of the wrong length is replaced.
// PutBackPixels returns the buffer together with the region that changed,
// which the implementation should upload.
type Texture interface {
	TakePixels() []byte
	PutBackPixels(pix []byte, dirty image.Rectangle)
}

// MemoryTexture is a Texture held in memory. It records the union of the
// regions put back since the last ResetDirty.
type MemoryTexture struct {
	Desc  TextureDesc
	Pix   []byte
	Dirty image.Rectangle

	// Uploads counts PutBackPixels calls with a non-empty region.
	Uploads int
}

// NewMemoryTexture creates a zeroed texture.
func NewMemoryTexture(desc TextureDesc) *MemoryTexture {
	return &MemoryTexture{Desc: desc, Pix: make([]byte, desc.Len())}
}

// TakePixels implements Texture.
func (t *MemoryTexture) TakePixels() []byte {
	pix := t.Pix
	t.Pix = nil
	return pix
}

// PutBackPixels implements Texture.
func (t *MemoryTexture) PutBackPixels(pix []byte, dirty image.Rectangle) {
	t.Pix = pix
	if dirty.Empty() {
		return
	}
	t.Dirty = t.Dirty.Union(dirty)
	t.Uploads++
}

// ResetDirty clears the recorded dirty region.
func (t *MemoryTexture) ResetDirty() {
	t.Dirty = image.Rectangle{}
}

// upload copies the dirty region of a into tex. Gray atlases copy
// verbatim; color pixels are packed as a<<24 | r<<16 | g<<8 | b in little
// endian byte order, which is BGRA in memory.
func upload(tex Texture, a *atlas.Atlas) {
	desc := textureDesc(a)
	dirty := a.TakeDirty()
	pix := tex.TakePixels()
	if len(pix) != desc.Len() {
		pix = make([]byte, desc.Len())
		dirty = image.Rect(0, 0, int(desc.Size.Width), int(desc.Size.Height))
	}
	stride := int(desc.Size.Width) * desc.BytesPerPixel()

	switch img := a.Image().(type) {
	case *image.Gray:
		for y := dirty.Min.Y; y < dirty.Max.Y; y++ {
			src := img.Pix[img.PixOffset(dirty.Min.X, y):img.PixOffset(dirty.Max.X, y)]
			copy(pix[y*stride+dirty.Min.X:], src)
		}
	case *image.NRGBA:
		for y := dirty.Min.Y; y < dirty.Max.Y; y++ {
			for x := dirty.Min.X; x < dirty.Max.X; x++ {
				i := img.PixOffset(x, y)
				r, g, b, al := img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
				v := uint32(al)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
				binary.LittleEndian.PutUint32(pix[y*stride+x*4:], v)
			}
		}
	}
	tex.PutBackPixels(pix, dirty)
}
