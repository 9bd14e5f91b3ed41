package gtext

import (
	"golang.org/x/text/language"

	"github.com/gogpu/gtext/atlas"
	"github.com/gogpu/gtext/fontload"
)

// Option configures Fonts during creation.
//
// Example:
//
//	fonts, err := gtext.NewFonts(
//	    gtext.WithAtlasConfig(atlas.Config{GraySize: 1024, ColorSize: 512, SDF: sdf.DefaultParams()}),
//	    gtext.WithManifest("fonts.toml"),
//	)
type Option func(*options)

type options struct {
	shapeCacheCapacity  int
	layoutCacheCapacity int
	language            language.Tag
	atlas               atlas.Config
	registry            *fontload.Registry
	manifest            string
}

func defaultOptions() options {
	return options{
		language: language.English,
		atlas:    atlas.DefaultConfig(),
	}
}

// WithShapeCacheCapacity sets the number of shaped texts kept in the
// shaping cache. Non-positive values select the default.
func WithShapeCacheCapacity(n int) Option {
	return func(o *options) {
		o.shapeCacheCapacity = n
	}
}

// WithLayoutCacheCapacity sets the number of laid out texts kept in the
// layout cache. Non-positive values select the default.
func WithLayoutCacheCapacity(n int) Option {
	return func(o *options) {
		o.layoutCacheCapacity = n
	}
}

// WithLanguage sets the language used for shaping.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.language = tag
	}
}

// WithAtlasConfig sets the atlas sizes and distance field parameters.
func WithAtlasConfig(cfg atlas.Config) Option {
	return func(o *options) {
		o.atlas = cfg
	}
}

// WithRegistry uses reg for font and family definitions instead of a new
// registry holding the builtin fonts. Fonts takes ownership of reg.
func WithRegistry(reg *fontload.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithManifest applies the font manifest at path after the builtin fonts
// are registered.
func WithManifest(path string) Option {
	return func(o *options) {
		o.manifest = path
	}
}
