package fontload

import (
	"fmt"
	"os"
	"slices"

	"github.com/flopp/go-findfont"

	"github.com/gogpu/gtext/font"
	"github.com/gogpu/gtext/internal/logger"
)

// Definition tells a Registry where to load a font from. Exactly one of
// Data, Path and System is used, in that order of preference.
type Definition struct {
	// Data holds the font file contents.
	Data []byte

	// Path is a font file on disk.
	Path string

	// System is a font file name looked up in the system font directories.
	System string

	// Index selects a face of a font collection.
	Index int
}

type fontEntry struct {
	def    Definition
	loaded bool
	font   *font.Font
	err    error
}

type familyEntry struct {
	ids []font.ID

	// fam is built on first use and dropped when fonts are redefined.
	fam *font.Family
}

// Registry holds font and family definitions.
//
// Registry is not safe for concurrent use.
type Registry struct {
	fonts    map[font.ID]*fontEntry
	families map[font.FamilyID]*familyEntry
	names    map[string]font.FamilyID
	def      font.FamilyID
	hasDef   bool

	findSystem func(name string) (string, error)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fonts:      make(map[font.ID]*fontEntry),
		families:   make(map[font.FamilyID]*familyEntry),
		names:      make(map[string]font.FamilyID),
		findSystem: findfont.Find,
	}
}

// DefineFont defines or redefines a font. A redefined font is reloaded on
// next use.
func (r *Registry) DefineFont(id font.ID, def Definition) {
	r.fonts[id] = &fontEntry{def: def}
	for _, fe := range r.families {
		if slices.Contains(fe.ids, id) {
			fe.fam = nil
		}
	}
}

// DefineFamily defines a family named name with the given fallback order
// and returns its id. Member fonts do not need to be defined yet. The
// first family defined becomes the default.
func (r *Registry) DefineFamily(name string, ids ...font.ID) font.FamilyID {
	fid := font.FamilyIDOf(ids...)
	if old, ok := r.names[name]; ok && old != fid {
		r.dropName(name, old)
	}
	fe, ok := r.families[fid]
	if !ok {
		fe = &familyEntry{ids: slices.Clone(ids)}
		r.families[fid] = fe
	}
	r.names[name] = fid
	if !r.hasDef {
		r.def, r.hasDef = fid, true
	}
	return fid
}

func (r *Registry) dropName(name string, fid font.FamilyID) {
	delete(r.names, name)
	for _, other := range r.names {
		if other == fid {
			return
		}
	}
	if r.def != fid {
		delete(r.families, fid)
	}
}

// SetDefault makes the named family the fallback for unknown family ids.
func (r *Registry) SetDefault(name string) error {
	fid, ok := r.names[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	r.def, r.hasDef = fid, true
	return nil
}

// DefaultFamilyID returns the id of the default family.
func (r *Registry) DefaultFamilyID() (font.FamilyID, bool) {
	return r.def, r.hasDef
}

// FamilyIDByName returns the id of the named family.
func (r *Registry) FamilyIDByName(name string) (font.FamilyID, bool) {
	fid, ok := r.names[name]
	return fid, ok
}

// IsFontKnown reports whether id was defined.
func (r *Registry) IsFontKnown(id font.ID) bool {
	_, ok := r.fonts[id]
	return ok
}

// IsFontFamilyKnown reports whether fid was defined.
func (r *Registry) IsFontFamilyKnown(fid font.FamilyID) bool {
	_, ok := r.families[fid]
	return ok
}

// FontIDs returns the ids of all defined fonts in sorted order.
func (r *Registry) FontIDs() []font.ID {
	ids := make([]font.ID, 0, len(r.fonts))
	for id := range r.fonts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// FamilyNames returns the names of all defined families in sorted order.
func (r *Registry) FamilyNames() []string {
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Font returns the font with the given id, loading it on first use. Load
// failures are remembered and returned again without retrying until the
// font is redefined.
func (r *Registry) Font(id font.ID) (*font.Font, error) {
	fe, ok := r.fonts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFont, id)
	}
	if !fe.loaded {
		fe.font, fe.err = r.load(id, fe.def)
		fe.loaded = true
		if fe.err != nil {
			logger.Get().Warn("fontload: font failed to load", "font", string(id), "err", fe.err)
		} else {
			logger.Get().Debug("fontload: font loaded", "font", string(id))
		}
	}
	return fe.font, fe.err
}

// Family returns the family with the given id. Unknown ids resolve to the
// default family; with no default family Family returns nil. Fonts that
// fail to load are left out.
func (r *Registry) Family(fid font.FamilyID) *font.Family {
	fe, ok := r.families[fid]
	if !ok {
		if !r.hasDef {
			return nil
		}
		if fe, ok = r.families[r.def]; !ok {
			return nil
		}
		fid = r.def
	}
	if fe.fam == nil {
		fonts := make([]*font.Font, 0, len(fe.ids))
		for _, id := range fe.ids {
			f, err := r.Font(id)
			if err != nil {
				continue
			}
			fonts = append(fonts, f)
		}
		fe.fam = font.NewFamilyWithID(fid, fonts...)
	}
	return fe.fam
}

func (r *Registry) load(id font.ID, def Definition) (*font.Font, error) {
	data := def.Data
	switch {
	case len(data) > 0:
	case def.Path != "":
		b, err := os.ReadFile(def.Path)
		if err != nil {
			return nil, fmt.Errorf("fontload: read %q: %w", id, err)
		}
		data = b
	case def.System != "":
		path, err := r.findSystem(def.System)
		if err != nil {
			return nil, fmt.Errorf("fontload: find system font %q: %w", def.System, err)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("fontload: read %q: %w", id, err)
		}
		data = b
	default:
		return nil, ErrEmptyDefinition
	}
	return font.NewFromCollection(id, data, def.Index)
}
