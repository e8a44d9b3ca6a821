package config

import (
	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/codepoints"
)

// Recognized option keys.
const (
	KeyInputDir      = "inputDir"
	KeyOutputDir     = "outputDir"
	KeyName          = "name"
	KeyFontTypes     = "fontTypes"
	KeyAssetTypes    = "assetTypes"
	KeyFormatOptions = "formatOptions"
	KeyPathOptions   = "pathOptions"
	KeyCodepoints    = "codepoints"
	KeyFontHeight    = "fontHeight"
	KeyDescent       = "descent"
	KeyNormalize     = "normalize"
	KeyRound         = "round"
	KeySelector      = "selector"
	KeyTag           = "tag"
	KeyPrefix        = "prefix"
	KeyFontsURL      = "fontsUrl"
)

// RunnerOptions is the normalized configuration of one build.
type RunnerOptions struct {
	// InputDir and OutputDir are empty when left undefined.
	InputDir  string
	OutputDir string
	Name      string

	FontTypes  []assettype.AssetType
	AssetTypes []assettype.AssetType

	FormatOptions FormatOptions
	PathOptions   map[assettype.AssetType]string
	Codepoints    codepoints.Table

	// Optional metrics are nil when undefined.
	FontHeight *float64
	Descent    *float64
	Normalize  *bool
	Round      *float64

	// Selector and FontsURL are nil when null.
	Selector *string
	Tag      string
	Prefix   string
	FontsURL *string
}

// RequestedTypes is the deduplicated union of FontTypes and AssetTypes.
func (o *RunnerOptions) RequestedTypes() []assettype.AssetType {
	return assettype.Merge(o.FontTypes, o.AssetTypes)
}

// FormatOptions holds free-form, per asset type generator settings, e.g.
// {"json": {"indent": 2}}.
type FormatOptions map[assettype.AssetType]map[string]any

// Get returns the setting key for asset type t.
func (f FormatOptions) Get(t assettype.AssetType, key string) (any, bool) {
	opts, ok := f[t]
	if !ok {
		return nil, false
	}
	v, ok := opts[key]
	return v, ok
}

// DefaultValues returns the defaults merged under every raw input. The map
// is freshly allocated on each call.
func DefaultValues() map[string]any {
	return map[string]any{
		KeyName:          "icons",
		KeyFontTypes:     assettype.Strings([]assettype.AssetType{assettype.EOT, assettype.WOFF2, assettype.WOFF}),
		KeyAssetTypes:    assettype.Strings([]assettype.AssetType{assettype.CSS, assettype.HTML, assettype.JSON, assettype.TS}),
		KeyFormatOptions: map[string]any{string(assettype.JSON): map[string]any{"indent": 4}},
		KeyPathOptions:   map[string]any{},
		KeyCodepoints:    map[string]any{},
		KeySelector:      nil,
		KeyTag:           "i",
		KeyPrefix:        "icon",
		KeyFontsURL:      nil,
	}
}
