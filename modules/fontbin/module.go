// Package fontbin produces the binary font formats by piping the font they
// derive from through external converters (svg2ttf, ttf2woff, ttf2woff2 and
// ttf2eot).
//
// The command line of each converter can be overridden through
// formatOptions.<type>.command. The placeholders {in} and {out} are replaced
// with scratch file paths; a command without {in} reads the source font from
// stdin and a command without {out} is expected to write the result to
// stdout.
package fontbin

import (
	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/registry"
)

// Converter describes how one binary format is produced.
type Converter struct {
	Type    assettype.AssetType
	From    assettype.AssetType
	Command string
}

// DefaultConverters lists the converters registered by Module.
var DefaultConverters = []Converter{
	{Type: assettype.TTF, From: assettype.SVG, Command: "svg2ttf {in} {out}"},
	{Type: assettype.WOFF, From: assettype.TTF, Command: "ttf2woff {in} {out}"},
	{Type: assettype.WOFF2, From: assettype.TTF, Command: "ttf2woff2"},
	{Type: assettype.EOT, From: assettype.TTF, Command: "ttf2eot"},
}

// Module implements the registry.Module interface for this package.
type Module struct {
	// Runner executes converter processes. Defaults to ExecRunner.
	Runner Runner
}

// Register registers a generator per converter.
func (m *Module) Register(r *registry.Registry) {
	runner := m.Runner
	if runner == nil {
		runner = NewExecRunner()
	}
	for _, c := range DefaultConverters {
		r.Register(c.Type, registry.Descriptor{
			DependsOn: c.From,
			Generate:  c.generator(runner),
		})
	}
}
