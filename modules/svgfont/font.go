package svgfont

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"slices"
	"strconv"

	"github.com/specialistvlad/glyphforge/internal/codepoints"
)

// DefaultRound is the rounding multiplier applied to glyph coordinates when
// the round option is undefined.
const DefaultRound = 10e12

type svgDocument struct {
	XMLName xml.Name `xml:"svg"`
	Xmlns   string   `xml:"xmlns,attr"`
	Font    svgFont  `xml:"defs>font"`
}

type svgFont struct {
	ID           string      `xml:"id,attr"`
	HorizAdvX    string      `xml:"horiz-adv-x,attr"`
	FontFace     svgFontFace `xml:"font-face"`
	MissingGlyph svgGlyph    `xml:"missing-glyph"`
	Glyphs       []svgGlyph  `xml:"glyph"`
}

type svgFontFace struct {
	FontFamily string `xml:"font-family,attr"`
	FontWeight string `xml:"font-weight,attr"`
	FontStyle  string `xml:"font-style,attr"`
	UnitsPerEm string `xml:"units-per-em,attr"`
	Ascent     string `xml:"ascent,attr"`
	Descent    string `xml:"descent,attr"`
}

type svgGlyph struct {
	GlyphName string `xml:"glyph-name,attr,omitempty"`
	Unicode   string `xml:"unicode,attr,omitempty"`
	HorizAdvX string `xml:"horiz-adv-x,attr"`
	D         string `xml:"d,attr,omitempty"`
}

// glyph is an icon ready to be placed in the font.
type glyph struct {
	name      string
	codepoint int
	shape     *shape
}

// metrics are the font-wide settings derived from the options and icons.
type metrics struct {
	fontHeight float64
	descent    float64
	normalize  bool
	round      float64
}

// fontMetrics fills in the defaults: the font height falls back to the
// tallest icon.
func fontMetrics(glyphs []glyph, fontHeight, descent, round *float64, normalize *bool) metrics {
	m := metrics{round: DefaultRound}
	if fontHeight != nil {
		m.fontHeight = *fontHeight
	} else {
		m.fontHeight = tallest(glyphs)
	}
	if descent != nil {
		m.descent = *descent
	}
	if round != nil && *round > 0 {
		m.round = *round
	}
	if normalize != nil {
		m.normalize = *normalize
	}
	return m
}

// tallest returns the height of the tallest icon.
func tallest(glyphs []glyph) float64 {
	h := 0.0
	for _, g := range glyphs {
		h = max(h, g.shape.height)
	}
	return h
}

// renderFont assembles the SVG font document.
func renderFont(name string, glyphs []glyph, m metrics) ([]byte, error) {
	slices.SortFunc(glyphs, func(a, b glyph) int {
		return cmp.Or(cmp.Compare(a.codepoint, b.codepoint), cmp.Compare(a.name, b.name))
	})

	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	maxHeight := tallest(glyphs)
	ascent := m.fontHeight - m.descent

	doc := svgDocument{
		Xmlns: "http://www.w3.org/2000/svg",
		Font: svgFont{
			ID:        name,
			HorizAdvX: num(m.fontHeight),
			FontFace: svgFontFace{
				FontFamily: name,
				FontWeight: "400",
				FontStyle:  "normal",
				UnitsPerEm: num(m.fontHeight),
				Ascent:     num(ascent),
				Descent:    num(-m.descent),
			},
			MissingGlyph: svgGlyph{HorizAdvX: "0"},
		},
	}

	for _, g := range glyphs {
		// The XML encoder would silently write U+FFFD instead.
		if !codepoints.Valid(g.codepoint) {
			return nil, fmt.Errorf("icon '%s' has codepoint %#x, which an SVG font cannot encode", g.name, g.codepoint)
		}
		scale := 1.0
		switch {
		case m.normalize:
			scale = m.fontHeight / g.shape.height
		case maxHeight > 0:
			scale = m.fontHeight / maxHeight
		}
		t := transform{
			minX:   g.shape.minX,
			minY:   g.shape.minY,
			scale:  scale,
			ascent: ascent,
			round:  m.round,
		}
		segs := slices.Clone(g.shape.segments)
		for i := range segs {
			segs[i].args = slices.Clone(segs[i].args)
		}
		t.apply(segs)

		doc.Font.Glyphs = append(doc.Font.Glyphs, svgGlyph{
			GlyphName: g.name,
			Unicode:   string(rune(g.codepoint)),
			HorizAdvX: num(t.rnd(g.shape.width * scale)),
			D:         formatPath(segs),
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
