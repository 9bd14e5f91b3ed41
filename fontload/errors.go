package fontload

import "errors"

var (
	// ErrUnknownFont is returned for font ids that were never defined.
	ErrUnknownFont = errors.New("fontload: unknown font")

	// ErrEmptyDefinition is returned when a definition names no source.
	ErrEmptyDefinition = errors.New("fontload: definition has no data, path or system name")

	// ErrUnknownFamily is returned for family names that were never
	// defined.
	ErrUnknownFamily = errors.New("fontload: unknown family")

	// ErrUnknownFormat is returned for manifest files whose extension is
	// neither TOML nor YAML.
	ErrUnknownFormat = errors.New("fontload: unknown manifest format")
)
