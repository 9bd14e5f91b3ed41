package fontload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/gogpu/gtext/font"
)

const tomlManifest = `
default = "code"

[fonts.mono]
path = "fonts/mono.ttf"

[fonts.fallback]
system = "DejaVuSans.ttf"

[families]
code = ["mono", "fallback"]
ui = ["go-regular"]
`

const yamlManifest = `
default: code
fonts:
  mono:
    path: fonts/mono.ttf
  fallback:
    system: DejaVuSans.ttf
families:
  code: [mono, fallback]
  ui: [go-regular]
`

func TestParseManifest_Formats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"toml", tomlManifest, FormatTOML},
		{"yaml", yamlManifest, FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.data), tt.format, "/base")
			require.NoError(t, err)
			assert.Equal(t, "code", m.Default)
			assert.Equal(t, FontEntry{Path: "fonts/mono.ttf"}, m.Fonts["mono"])
			assert.Equal(t, FontEntry{System: "DejaVuSans.ttf"}, m.Fonts["fallback"])
			assert.Equal(t, []string{"mono", "fallback"}, m.Families["code"])
			assert.Equal(t, []string{"go-regular"}, m.Families["ui"])
		})
	}
}

func TestParseManifest_Empty(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		m, err := ParseManifest(nil, format, "")
		require.NoError(t, err, format)
		assert.Empty(t, m.Fonts)
		assert.Empty(t, m.Families)
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"unknown toml field", "colour = 1\n", FormatTOML},
		{"unknown yaml field", "colour: 1\n", FormatYAML},
		{"both sources", "[fonts.a]\npath = \"a.ttf\"\nsystem = \"a.ttf\"\n", FormatTOML},
		{"no source", "fonts:\n  a: {index: 1}\n", FormatYAML},
		{"negative index", "fonts:\n  a: {path: a.ttf, index: -1}\n", FormatYAML},
		{"empty family", "[families]\nx = []\n", FormatTOML},
		{"empty member", "families:\n  x: [\"\"]\n", FormatYAML},
		{"missing default", "default = \"x\"\n", FormatTOML},
		{"syntax", "[fonts\n", FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data), tt.format, "")
			assert.Error(t, err)
		})
	}

	_, err := ParseManifest(nil, Format(0), "")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"fonts.toml", FormatTOML},
		{"dir/Fonts.TOML", FormatTOML},
		{"fonts.yaml", FormatYAML},
		{"fonts.yml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatOf("fonts.json")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, "TOML", FormatTOML.String())
	assert.Equal(t, "YAML", FormatYAML.String())
	assert.Equal(t, "Unknown", Format(9).String())
}

func writeManifestDir(t *testing.T, name, data string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fonts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fonts", "mono.ttf"), gomono.TTF, 0o600))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadManifest_Apply(t *testing.T) {
	path := writeManifestDir(t, "fonts.toml", tomlManifest)
	m, err := LoadManifest(path)
	require.NoError(t, err)

	r := NewRegistry()
	RegisterBuiltins(r)
	r.findSystem = func(string) (string, error) { return "", os.ErrNotExist }
	require.NoError(t, m.Apply(r))

	code, ok := r.FamilyIDByName("code")
	require.True(t, ok)
	def, _ := r.DefaultFamilyID()
	assert.Equal(t, code, def)

	// The system font is missing and left out; the relative path resolves
	// against the manifest directory.
	fam := r.Family(code)
	require.Equal(t, 1, fam.Len())
	assert.Equal(t, font.ID("mono"), fam.Primary().ID())

	ui, _ := r.FamilyIDByName("ui")
	assert.Equal(t, GoRegular, r.Family(ui).Primary().ID())
}

func TestManifest_ApplyUnknownFont(t *testing.T) {
	m, err := ParseManifest([]byte("families:\n  x: [nowhere]\n"), FormatYAML, "")
	require.NoError(t, err)

	r := NewRegistry()
	err = m.Apply(r)
	assert.ErrorIs(t, err, ErrUnknownFont)
	assert.Empty(t, r.FamilyNames())
}

func TestLoadManifest_Errors(t *testing.T) {
	_, err := LoadManifest("fonts.ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeManifestDir(t, "bad.yaml", "fonts: [1, 2]\n")
	_, err = LoadManifest(path)
	assert.ErrorContains(t, err, "bad.yaml")
}
