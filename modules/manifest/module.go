// Package manifest generates machine readable descriptions of the font: a
// JSON codepoint map and TypeScript typings.
package manifest

import (
	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the json and ts generators.
func (m *Module) Register(r *registry.Registry) {
	r.Register(assettype.JSON, registry.Descriptor{
		NeedsCodepoints: true,
		Generate:        GenerateJSON,
	})
	r.Register(assettype.TS, registry.Descriptor{
		NeedsCodepoints: true,
		Generate:        GenerateTS,
	})
}
