// Package svgfont generates the SVG font every binary font format is
// converted from.
package svgfont

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the svg generator.
func (m *Module) Register(r *registry.Registry) {
	r.Register(assettype.SVG, registry.Descriptor{
		NeedsCodepoints: true,
		Generate:        Generate,
	})
}

// Generate reads every icon and assembles them into an SVG font named after
// the build.
func Generate(ctx context.Context, opts *registry.Options, _ registry.Result) (registry.Result, error) {
	logger := ctxlog.FromContext(ctx).With("generator", assettype.SVG)

	glyphs := make([]glyph, 0, len(opts.Assets))
	for _, id := range opts.Assets.IDs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		asset := opts.Assets[id]

		cp, ok := opts.Codepoints[id]
		if !ok {
			return nil, fmt.Errorf("icon '%s' has no codepoint", id)
		}

		data, err := afero.ReadFile(opts.Fs, asset.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read icon '%s': %w", id, err)
		}
		s, err := parseShape(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse icon '%s' (%s): %w", id, asset.RelativePath, err)
		}
		if len(s.transformed) > 0 {
			logger.Warn("Icon uses transform attributes, which are ignored; its glyph may be misplaced.", "icon", id, "elements", s.transformed)
		}
		if len(s.segments) == 0 {
			logger.Warn("Icon has no drawable outline.", "icon", id)
		}
		glyphs = append(glyphs, glyph{name: id, codepoint: cp, shape: s})
	}
	if len(glyphs) == 0 {
		return nil, errors.New("no icons to build a font from")
	}

	m := fontMetrics(glyphs, opts.FontHeight, opts.Descent, opts.Round, opts.Normalize)
	logger.Debug("Font metrics computed.", "font_height", m.fontHeight, "descent", m.descent, "normalize", m.normalize)

	return renderFont(opts.Name, glyphs, m)
}
