// Package render holds the template data and helpers shared by the
// generators that emit text assets (stylesheets, previews, manifests).
package render

import (
	"slices"
	"strings"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/registry"
)

// Glyph is one icon as seen by templates.
type Glyph struct {
	ID        string
	Codepoint int
	// Hex is the codepoint in lower-case hex without prefix.
	Hex string
}

// FontSource is one entry of an @font-face src list.
type FontSource struct {
	Type   assettype.AssetType
	URL    string
	Format string
}

// Data is the input of every asset template.
type Data struct {
	Name     string
	Prefix   string
	Tag      string
	Selector string
	FontsURL string
	Glyphs   []Glyph
	Fonts    []FontSource
}

// fontPriority is the order browsers should try font formats in.
var fontPriority = []assettype.AssetType{
	assettype.EOT, assettype.WOFF2, assettype.WOFF, assettype.TTF, assettype.SVG,
}

var fontFormats = map[assettype.AssetType]string{
	assettype.EOT:   "embedded-opentype",
	assettype.WOFF2: "woff2",
	assettype.WOFF:  "woff",
	assettype.TTF:   "truetype",
	assettype.SVG:   "svg",
}

// NewData builds template data from the shared generator options. Glyphs are
// ordered by id.
func NewData(opts *registry.Options) *Data {
	d := &Data{
		Name:   opts.Name,
		Prefix: opts.Prefix,
		Tag:    opts.Tag,
	}
	if opts.Selector != nil {
		d.Selector = *opts.Selector
	}

	base := "."
	if opts.FontsURL != nil {
		base = strings.TrimSuffix(*opts.FontsURL, "/")
		d.FontsURL = base
	}

	for _, id := range opts.Assets.IDs() {
		d.Glyphs = append(d.Glyphs, Glyph{
			ID:        id,
			Codepoint: opts.Codepoints[id],
			Hex:       opts.Codepoints.Hex(id),
		})
	}

	for _, t := range fontPriority {
		if !slices.Contains(opts.FontTypes, t) {
			continue
		}
		url := base + "/" + opts.Name + "." + string(t)
		switch t {
		case assettype.EOT:
			url += "?#iefix"
		case assettype.SVG:
			url += "#" + opts.Name
		}
		d.Fonts = append(d.Fonts, FontSource{Type: t, URL: url, Format: fontFormats[t]})
	}
	return d
}
