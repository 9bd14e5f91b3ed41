package atlas

import (
	"github.com/gogpu/gtext/sdf"
)

// Config holds atlas configuration.
type Config struct {
	// GraySize is the width and height of the grayscale SDF atlas.
	// Default: 512
	GraySize int

	// ColorSize is the width and height of the color atlas.
	// Default: 512
	ColorSize int

	// SDF controls distance field generation. SDF.Pad is also the padding
	// around every grayscale slot.
	SDF sdf.Params

	// Workers is the number of goroutines generating distance fields on
	// Flush. 0 selects GOMAXPROCS, 1 generates them on the calling
	// goroutine.
	Workers int
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		GraySize:  512,
		ColorSize: 512,
		SDF:       sdf.DefaultParams(),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateSize("GraySize", c.GraySize); err != nil {
		return err
	}
	if err := validateSize("ColorSize", c.ColorSize); err != nil {
		return err
	}
	if c.SDF.Pad < 0 {
		return &ConfigError{Field: "SDF.Pad", Reason: "must be non-negative"}
	}
	if c.SDF.Pad >= 16 {
		return &ConfigError{Field: "SDF.Pad", Reason: "must be less than 16"}
	}
	if c.SDF.Radius <= 0 {
		return &ConfigError{Field: "SDF.Radius", Reason: "must be positive"}
	}
	if c.SDF.Cutoff < 0 || c.SDF.Cutoff >= 1 {
		return &ConfigError{Field: "SDF.Cutoff", Reason: "must be in [0, 1)"}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "Workers", Reason: "must be non-negative"}
	}
	return nil
}

func validateSize(field string, size int) error {
	if size < 64 {
		return &ConfigError{Field: field, Reason: "must be at least 64"}
	}
	if size > 8192 {
		return &ConfigError{Field: field, Reason: "must be at most 8192"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}
