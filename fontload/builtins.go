package fontload

import (
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gtext/font"
)

// Builtin font ids.
const (
	GoRegular       font.ID = "go-regular"
	GoBold          font.ID = "go-bold"
	GoItalic        font.ID = "go-italic"
	GoMono          font.ID = "go-mono"
	LatinModern     font.ID = "lm-roman-regular"
	LatinModernBold font.ID = "lm-roman-bold"
)

// Builtin family names.
const (
	FamilySans       = "sans"
	FamilySansBold   = "sans-bold"
	FamilySansItalic = "sans-italic"
	FamilySerif      = "serif"
	FamilySerifBold  = "serif-bold"
	FamilyMono       = "mono"
)

// RegisterBuiltins defines the embedded fonts and their families and makes
// "sans" the default family. Every family falls back to Go Regular.
func RegisterBuiltins(r *Registry) {
	r.DefineFont(GoRegular, Definition{Data: goregular.TTF})
	r.DefineFont(GoBold, Definition{Data: gobold.TTF})
	r.DefineFont(GoItalic, Definition{Data: goitalic.TTF})
	r.DefineFont(GoMono, Definition{Data: gomono.TTF})
	r.DefineFont(LatinModern, Definition{Data: lmroman10regular.TTF})
	r.DefineFont(LatinModernBold, Definition{Data: lmroman10bold.TTF})

	r.DefineFamily(FamilySans, GoRegular)
	r.DefineFamily(FamilySansBold, GoBold, GoRegular)
	r.DefineFamily(FamilySansItalic, GoItalic, GoRegular)
	r.DefineFamily(FamilySerif, LatinModern, GoRegular)
	r.DefineFamily(FamilySerifBold, LatinModernBold, GoBold, GoRegular)
	r.DefineFamily(FamilyMono, GoMono, GoRegular)
	_ = r.SetDefault(FamilySans) // defined above
}
