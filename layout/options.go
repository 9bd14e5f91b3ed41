package layout

import "github.com/gogpu/gtext/internal/cache"

// Option configures a Layouter.
type Option func(*config)

type config struct {
	cacheCapacity int
}

func defaultConfig() config {
	return config{cacheCapacity: cache.DefaultCapacity}
}

// WithCacheCapacity sets the number of layouts kept in the cache.
// Non-positive values select cache.DefaultCapacity.
func WithCacheCapacity(n int) Option {
	return func(c *config) {
		c.cacheCapacity = n
	}
}
