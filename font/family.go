package font

import (
	"hash/fnv"
	"strings"
)

// FamilyID identifies a font family. It is derived from the identities of
// the member fonts, in fallback order.
type FamilyID uint64

// FamilyIDOf computes the FamilyID for an ordered list of font ids.
func FamilyIDOf(ids ...ID) FamilyID {
	h := fnv.New64a()
	for _, id := range ids {
		_, _ = h.Write([]byte(id)) // fnv.Write never returns an error
		_, _ = h.Write([]byte{0})
	}
	return FamilyID(h.Sum64())
}

// Family is an ordered fallback list of fonts.
type Family struct {
	id    FamilyID
	fonts []*Font
}

// NewFamily creates a family whose id is derived from the given fonts.
func NewFamily(fonts ...*Font) *Family {
	ids := make([]ID, len(fonts))
	for i, f := range fonts {
		ids[i] = f.ID()
	}
	return NewFamilyWithID(FamilyIDOf(ids...), fonts...)
}

// NewFamilyWithID creates a family with an explicit id. Registries use it
// so that a family keeps its defined id when some members fail to load.
func NewFamilyWithID(id FamilyID, fonts ...*Font) *Family {
	return &Family{id: id, fonts: append([]*Font(nil), fonts...)}
}

// ID returns the family identifier.
func (fam *Family) ID() FamilyID { return fam.id }

// Fonts returns the fallback list. Callers must not modify it.
func (fam *Family) Fonts() []*Font { return fam.fonts }

// Len returns the number of fonts.
func (fam *Family) Len() int { return len(fam.fonts) }

// Primary returns the first font, or nil for an empty family.
func (fam *Family) Primary() *Font {
	if len(fam.fonts) == 0 {
		return nil
	}
	return fam.fonts[0]
}

// Key returns a string that is equal for two font lists exactly when they
// contain the same fonts in the same order.
func Key(fonts []*Font) string {
	var b strings.Builder
	for _, f := range fonts {
		b.WriteString(string(f.ID()))
		b.WriteByte(0)
	}
	return b.String()
}
