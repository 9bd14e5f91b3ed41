package shape

import (
	"golang.org/x/text/language"

	"github.com/gogpu/gtext/internal/cache"
)

// Option configures a Shaper.
type Option func(*config)

type config struct {
	cacheCapacity int
	language      language.Tag
}

func defaultConfig() config {
	return config{
		cacheCapacity: cache.DefaultCapacity,
		language:      language.English,
	}
}

// WithCacheCapacity sets the number of shaped texts kept in the cache.
// Non-positive values select the default of 4096.
func WithCacheCapacity(n int) Option {
	return func(c *config) {
		c.cacheCapacity = n
	}
}

// WithLanguage sets the language passed to the shaping engine. It affects
// language-specific substitutions such as localized forms.
func WithLanguage(tag language.Tag) Option {
	return func(c *config) {
		c.language = tag
	}
}
