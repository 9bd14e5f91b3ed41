package atlas

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gtext/font"
	"github.com/gogpu/gtext/internal/logger"
	"github.com/gogpu/gtext/internal/parallel"
	"github.com/gogpu/gtext/sdf"
)

// colorPad is the padding around color glyphs. They are sampled at device
// size, so one texel is enough to keep neighbors from bleeding in.
const colorPad = 1

// Glyph describes where a rasterized glyph lives in its atlas.
type Glyph struct {
	Kind      Kind
	AtlasSize image.Point

	// AtlasBounds is the slot rectangle in atlas pixels, padding included.
	AtlasBounds image.Rectangle

	// T1 and T2 are the normalized texture coordinates of the glyph box,
	// padding excluded.
	T1, T2 font.Point

	// BoundsInDpxs is the glyph box in device pixels relative to the pen
	// position, y pointing up.
	BoundsInDpxs font.Rect

	DpxsPerEm float32
}

// Stats holds rasterizer statistics.
type Stats struct {
	// Glyphs is the number of live slots over both atlases.
	Glyphs int

	// Pending is the number of glyphs waiting for Flush.
	Pending int

	// Rasterized counts glyphs drawn by Flush.
	Rasterized uint64

	// Resets counts atlas resets caused by overflow.
	Resets uint64

	GrayUtilization  float64
	ColorUtilization float64
}

type slotKey struct {
	font  font.ID
	page  int
	glyph font.GlyphID
}

type job struct {
	kind    Kind
	slot    Slot
	dpx     float32
	outline *font.Outline
	image   *font.RasterImage
}

// Rasterizer allocates atlas slots for glyphs and draws them on Flush.
//
// A glyph is keyed by its font, the font's page for the requested size and
// its glyph id. Slots are stable until the atlas holding them is reset.
//
// Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	cfg   Config
	gray  *Atlas
	color *Atlas

	// pages lists, per font, the sizes requested so far. The page of a
	// size is its index.
	pages map[font.ID][]float32
	slots map[slotKey]Glyph
	blank map[slotKey]struct{}

	pending []job
	pool    *parallel.WorkerPool

	rasterized uint64
	resets     uint64
}

// NewRasterizer creates a rasterizer with two empty atlases. Call Close to
// stop its workers.
func NewRasterizer(cfg Config) (*Rasterizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Rasterizer{
		cfg:   cfg,
		gray:  newAtlas(Grayscale, cfg.GraySize, cfg.SDF.Pad),
		color: newAtlas(Color, cfg.ColorSize, colorPad),
		pages: make(map[font.ID][]float32),
		slots: make(map[slotKey]Glyph),
		blank: make(map[slotKey]struct{}),
	}
	if cfg.Workers != 1 {
		if pool := parallel.NewWorkerPool(cfg.Workers); pool.Workers() > 1 {
			r.pool = pool
		} else {
			pool.Close()
		}
	}
	return r, nil
}

// Close stops the distance field workers. Later flushes run on the calling
// goroutine.
func (r *Rasterizer) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Config returns the configuration the rasterizer was created with.
func (r *Rasterizer) Config() Config { return r.cfg }

// Atlas returns the atlas of the given kind.
func (r *Rasterizer) Atlas(kind Kind) *Atlas {
	if kind == Color {
		return r.color
	}
	return r.gray
}

// Rasterize returns the atlas slot of a glyph at dpxPerEm device pixels per
// em, allocating it on first use. A newly allocated slot holds no pixels
// until Flush.
//
// It returns false for glyphs without an outline or bitmap, such as
// whitespace, and for glyphs too large for the atlas. When the atlas is
// full it is reset first; the atlas then reports Overflowed and every slot
// returned earlier is invalid.
func (r *Rasterizer) Rasterize(f *font.Font, id font.GlyphID, dpxPerEm float32) (Glyph, bool) {
	if f == nil || !(dpxPerEm > 0) {
		return Glyph{}, false
	}
	key := slotKey{font: f.ID(), page: r.page(f.ID(), dpxPerEm), glyph: id}
	if g, ok := r.slots[key]; ok {
		return g, true
	}
	if _, ok := r.blank[key]; ok {
		return Glyph{}, false
	}

	j := job{dpx: dpxPerEm}
	var bounds font.Rect
	if img, ok := f.RasterImage(id, dpxPerEm); ok {
		j.kind, j.image, bounds = Color, img, img.Bounds
	} else if o, ok := f.Outline(id); ok {
		j.kind, j.outline, bounds = Grayscale, o, o.Bounds
	} else {
		r.blank[key] = struct{}{}
		return Glyph{}, false
	}
	bounds = bounds.Scale(dpxPerEm)
	if bounds.Empty() {
		r.blank[key] = struct{}{}
		return Glyph{}, false
	}

	a := r.Atlas(j.kind)
	slot, ok := a.alloc.Alloc(bounds.Width(), bounds.Height())
	if !ok && a.alloc.Full() {
		r.reset(a, "overflow")
		a.overflowed = true
		slot, ok = a.alloc.Alloc(bounds.Width(), bounds.Height())
	}
	if !ok {
		logger.Get().Warn("atlas: glyph does not fit",
			"font", string(f.ID()), "glyph", id, "dpxPerEm", dpxPerEm, "kind", j.kind)
		r.blank[key] = struct{}{}
		return Glyph{}, false
	}
	j.slot = slot

	g := Glyph{
		Kind:         j.kind,
		AtlasSize:    a.Size(),
		AtlasBounds:  slot.Rect,
		T1:           slot.T1,
		T2:           slot.T2,
		BoundsInDpxs: bounds,
		DpxsPerEm:    dpxPerEm,
	}
	r.slots[key] = g
	r.pending = append(r.pending, j)
	return g, true
}

// Flush draws every pending glyph into its atlas and extends the atlas
// dirty regions.
func (r *Rasterizer) Flush() {
	fields := make([]*image.Gray, len(r.pending))
	var work []func()
	for i := range r.pending {
		j := &r.pending[i]
		if j.kind == Grayscale {
			work = append(work, func() { fields[i] = r.distanceField(j) })
		}
	}
	if r.pool != nil && len(work) > 1 {
		r.pool.ExecuteAll(work)
	} else {
		for _, fn := range work {
			fn()
		}
	}

	for i := range r.pending {
		j := &r.pending[i]
		switch j.kind {
		case Color:
			r.drawColor(j)
		default:
			draw.Draw(r.gray.img, j.slot.Rect, fields[i], image.Point{}, draw.Src)
			r.gray.markDirty(j.slot.Rect)
		}
		r.rasterized++
	}
	clear(r.pending)
	r.pending = r.pending[:0]
}

// Reset clears the atlas of the given kind and forgets its slots.
func (r *Rasterizer) Reset(kind Kind) {
	r.reset(r.Atlas(kind), "")
}

// ResetAll clears both atlases and every cached lookup. Call it after fonts
// were redefined.
func (r *Rasterizer) ResetAll() {
	r.Reset(Grayscale)
	r.Reset(Color)
	clear(r.pages)
	clear(r.blank)
}

// Stats returns rasterizer statistics.
func (r *Rasterizer) Stats() Stats {
	return Stats{
		Glyphs:           len(r.slots),
		Pending:          len(r.pending),
		Rasterized:       r.rasterized,
		Resets:           r.resets,
		GrayUtilization:  r.gray.Utilization(),
		ColorUtilization: r.color.Utilization(),
	}
}

func (r *Rasterizer) page(id font.ID, dpxPerEm float32) int {
	sizes := r.pages[id]
	for i, s := range sizes {
		if s == dpxPerEm {
			return i
		}
	}
	r.pages[id] = append(sizes, dpxPerEm)
	return len(sizes)
}

func (r *Rasterizer) reset(a *Atlas, reason string) {
	if reason != "" {
		r.resets++
		logger.Get().Info("atlas: reset",
			"kind", a.kind, "reason", reason, "glyphs", a.Len(), "utilization", a.Utilization())
	}
	for k, g := range r.slots {
		if g.Kind == a.kind {
			delete(r.slots, k)
		}
	}
	kept := r.pending[:0]
	for _, j := range r.pending {
		if j.kind != a.kind {
			kept = append(kept, j)
		}
	}
	clear(r.pending[len(kept):])
	r.pending = kept
	a.reset()
}

// distanceField only reads the job, so calls for different jobs may run
// concurrently.
func (r *Rasterizer) distanceField(j *job) *image.Gray {
	rect := j.slot.Rect
	cov := coverage(j.outline, j.dpx*j.slot.Scale, r.cfg.SDF.Pad, rect.Dx(), rect.Dy())
	return sdf.Generate(cov, r.cfg.SDF)
}

func (r *Rasterizer) drawColor(j *job) {
	rect := j.slot.Rect
	src := j.image.Image
	xdraw.CatmullRom.Scale(r.color.img, rect.Inset(colorPad), src, src.Bounds(), xdraw.Src, nil)
	r.color.markDirty(rect)
}
