// Package assettype enumerates the kinds of artifacts a build can produce.
//
// Font asset types and other asset types are two disjoint enumerations. Their
// union is the universe of generator keys: the generator registry must carry
// exactly one descriptor for every value returned by All.
package assettype

import "slices"

// AssetType identifies one kind of output artifact.
type AssetType string

// Font asset types.
const (
	SVG   AssetType = "svg"
	TTF   AssetType = "ttf"
	WOFF  AssetType = "woff"
	WOFF2 AssetType = "woff2"
	EOT   AssetType = "eot"
)

// Other (non-font) asset types.
const (
	CSS  AssetType = "css"
	SCSS AssetType = "scss"
	SASS AssetType = "sass"
	HTML AssetType = "html"
	JSON AssetType = "json"
	TS   AssetType = "ts"
)

// None is the zero AssetType. Descriptors use it to declare no dependency.
const None AssetType = ""

var (
	fontTypes  = []AssetType{SVG, TTF, WOFF, WOFF2, EOT}
	otherTypes = []AssetType{CSS, SCSS, SASS, HTML, JSON, TS}
)

// FontTypes returns every font asset type in declaration order.
func FontTypes() []AssetType {
	return slices.Clone(fontTypes)
}

// OtherTypes returns every non-font asset type in declaration order.
func OtherTypes() []AssetType {
	return slices.Clone(otherTypes)
}

// All returns the union of FontTypes and OtherTypes.
func All() []AssetType {
	return slices.Concat(fontTypes, otherTypes)
}

// IsFont reports whether t is a font asset type.
func (t AssetType) IsFont() bool {
	return slices.Contains(fontTypes, t)
}

// IsValid reports whether t belongs to either enumeration.
func (t AssetType) IsValid() bool {
	return t.IsFont() || slices.Contains(otherTypes, t)
}

func (t AssetType) String() string {
	return string(t)
}

// Strings converts a list of asset types to plain strings.
func Strings(types []AssetType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// FromStrings converts plain strings to asset types without validation.
func FromStrings(values []string) []AssetType {
	out := make([]AssetType, len(values))
	for i, v := range values {
		out[i] = AssetType(v)
	}
	return out
}

// Merge returns the deduplicated union of the given lists, keeping the order
// of first appearance.
func Merge(lists ...[]AssetType) []AssetType {
	var out []AssetType
	seen := make(map[AssetType]struct{})
	for _, list := range lists {
		for _, t := range list {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
