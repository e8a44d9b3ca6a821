// Package codepoints assigns a unicode codepoint to every icon of a build.
package codepoints

import (
	"maps"
	"strconv"

	"github.com/specialistvlad/glyphforge/internal/icon"
)

// Start is the first codepoint handed out to icons without a user-supplied
// value. It sits inside the Private Use Area.
const Start = 0xf101

// Max is the largest unicode codepoint.
const Max = 0x10ffff

// Valid reports whether cp is a unicode scalar value that XML documents can
// carry. Surrogates, most C0 controls and the noncharacters U+FFFE and
// U+FFFF are rejected.
func Valid(cp int) bool {
	switch {
	case cp == 0x9 || cp == 0xa || cp == 0xd:
		return true
	case cp < 0x20 || cp > Max:
		return false
	case cp >= 0xd800 && cp <= 0xdfff:
		return false
	case cp == 0xfffe || cp == 0xffff:
		return false
	}
	return true
}

// Table maps icon identifiers to codepoints. A table is read-only once a
// build has resolved it.
type Table map[string]int

// Resolve completes partial so that every icon in assets has a codepoint.
// User-supplied values are kept as-is; the remaining icons are visited in id
// order and receive the lowest free codepoint at or above Start. The partial
// table is never mutated.
func Resolve(assets icon.AssetsMap, partial Table) Table {
	out := make(Table, len(assets)+len(partial))
	maps.Copy(out, partial)

	used := make(map[int]struct{}, len(out))
	for _, cp := range out {
		used[cp] = struct{}{}
	}

	next := Start
	for _, id := range assets.IDs() {
		if _, ok := out[id]; ok {
			continue
		}
		for {
			if _, taken := used[next]; !taken && Valid(next) {
				break
			}
			next++
		}
		out[id] = next
		used[next] = struct{}{}
		next++
	}

	return out
}

// Hex returns the codepoint of id formatted as lower-case hex without prefix,
// the form stylesheets embed in `content: "\f101"`.
func (t Table) Hex(id string) string {
	return strconv.FormatInt(int64(t[id]), 16)
}
