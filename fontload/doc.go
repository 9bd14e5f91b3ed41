// Package fontload defines and loads fonts and font families by name.
//
// A Registry maps font ids to definitions (embedded bytes, a file path or a
// system font name) and family names to ordered lists of font ids. Fonts
// are parsed on first use; a font that fails to load is remembered as
// failed and left out of every family it belongs to.
//
// RegisterBuiltins adds the Go fonts and Latin Modern Roman under the
// families "sans", "serif" and "mono". Manifests in TOML or YAML describe
// additional fonts and families:
//
//	default = "ui"
//
//	[fonts.inter]
//	path = "fonts/Inter-Regular.ttf"
//
//	[fonts.noto-cjk]
//	system = "NotoSansCJK-Regular.ttc"
//	index = 2
//
//	[families]
//	ui = ["inter", "noto-cjk", "go-regular"]
//
// Watch reloads a manifest whenever the file changes.
package fontload
