// Package stylesheet generates the CSS, SCSS and Sass assets that map icon
// classes onto font glyphs.
package stylesheet

import (
	"context"
	"embed"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/registry"
	"github.com/specialistvlad/glyphforge/internal/render"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the css, scss and sass generators.
func (m *Module) Register(r *registry.Registry) {
	for _, t := range []assettype.AssetType{assettype.CSS, assettype.SCSS, assettype.SASS} {
		r.Register(t, registry.Descriptor{
			NeedsCodepoints: true,
			Generate:        generator(t),
		})
	}
}

// DefaultTemplate returns the built-in template of t.
func DefaultTemplate(t assettype.AssetType) string {
	b, err := templates.ReadFile("templates/" + string(t) + ".tmpl")
	if err != nil {
		panic(err)
	}
	return string(b)
}

func generator(t assettype.AssetType) registry.GenerateFunc {
	def := DefaultTemplate(t)
	return func(ctx context.Context, opts *registry.Options, _ registry.Result) (registry.Result, error) {
		data := render.NewData(opts)
		ctxlog.FromContext(ctx).Debug("Rendering stylesheet.", "type", t, "glyphs", len(data.Glyphs), "fonts", len(data.Fonts))
		return render.Text(opts, t, def, data)
	}
}
