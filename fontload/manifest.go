package fontload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gtext/font"
)

// Format is a manifest encoding.
type Format uint8

const (
	// FormatTOML is TOML, selected by the .toml extension.
	FormatTOML Format = iota + 1

	// FormatYAML is YAML, selected by the .yaml and .yml extensions.
	FormatYAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "TOML"
	case FormatYAML:
		return "YAML"
	default:
		return "Unknown"
	}
}

// FormatOf returns the manifest format of a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// FontEntry is a font entry of a manifest.
type FontEntry struct {
	Path   string `toml:"path,omitempty" yaml:"path,omitempty"`
	System string `toml:"system,omitempty" yaml:"system,omitempty"`
	Index  int    `toml:"index,omitempty" yaml:"index,omitempty"`
}

// Manifest describes fonts and families to define in a Registry.
type Manifest struct {
	Fonts    map[string]FontEntry `toml:"fonts" yaml:"fonts"`
	Families map[string][]string `toml:"families" yaml:"families"`
	Default  string              `toml:"default,omitempty" yaml:"default,omitempty"`

	// dir resolves relative font paths.
	dir string
}

type decoder interface {
	Decode(v any) error
}

type decoderFunc func(r io.Reader) decoder

var decoders = map[Format]decoderFunc{
	FormatTOML: func(r io.Reader) decoder {
		d := toml.NewDecoder(r)
		d.DisallowUnknownFields()
		return d
	},
	FormatYAML: func(r io.Reader) decoder {
		d := yaml.NewDecoder(r)
		d.KnownFields(true)
		return d
	},
}

// ParseManifest decodes a manifest. Relative font paths are resolved
// against dir.
func ParseManifest(data []byte, format Format, dir string) (*Manifest, error) {
	newDecoder, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	m := &Manifest{dir: dir}
	if err := newDecoder(bytes.NewReader(data)).Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("fontload: decode %v manifest: %w", format, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadManifest reads and decodes the manifest at path. The format follows
// from the file extension.
func LoadManifest(path string) (*Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontload: read manifest: %w", err)
	}
	m, err := ParseManifest(data, format, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks that every font names exactly one source, that family
// members are not empty and that the default family exists. Family
// members may refer to fonts defined outside the manifest.
func (m *Manifest) Validate() error {
	for id, entry := range m.Fonts {
		if id == "" {
			return errors.New("fontload: manifest font with empty id")
		}
		if (entry.Path == "") == (entry.System == "") {
			return fmt.Errorf("fontload: manifest font %q: exactly one of path and system must be set", id)
		}
		if entry.Index < 0 {
			return fmt.Errorf("fontload: manifest font %q: negative index", id)
		}
	}
	for name, ids := range m.Families {
		if len(ids) == 0 {
			return fmt.Errorf("fontload: manifest family %q has no fonts", name)
		}
		if slices.Contains(ids, "") {
			return fmt.Errorf("fontload: manifest family %q has an empty font id", name)
		}
	}
	if m.Default != "" {
		if _, ok := m.Families[m.Default]; !ok {
			return fmt.Errorf("%w: default %q", ErrUnknownFamily, m.Default)
		}
	}
	return nil
}

// Apply defines the manifest's fonts and families in r. Families may only
// refer to fonts of the manifest or fonts r already knows; otherwise
// nothing is applied.
func (m *Manifest) Apply(r *Registry) error {
	for name, ids := range m.Families {
		for _, id := range ids {
			if _, ok := m.Fonts[id]; !ok && !r.IsFontKnown(font.ID(id)) {
				return fmt.Errorf("%w: %q in family %q", ErrUnknownFont, id, name)
			}
		}
	}

	for _, id := range sortedKeys(m.Fonts) {
		entry := m.Fonts[id]
		def := Definition{System: entry.System, Index: entry.Index}
		if entry.Path != "" {
			def.Path = entry.Path
			if !filepath.IsAbs(def.Path) && m.dir != "" {
				def.Path = filepath.Join(m.dir, def.Path)
			}
		}
		r.DefineFont(font.ID(id), def)
	}
	for _, name := range sortedKeys(m.Families) {
		ids := m.Families[name]
		fids := make([]font.ID, len(ids))
		for i, id := range ids {
			fids[i] = font.ID(id)
		}
		r.DefineFamily(name, fids...)
	}
	if m.Default != "" {
		return r.SetDefault(m.Default)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
