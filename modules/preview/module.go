// Package preview generates an HTML page showing every icon of the font,
// styled by the generated CSS.
package preview

import (
	"context"
	_ "embed"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/registry"
	"github.com/specialistvlad/glyphforge/internal/render"
)

//go:embed preview.html.tmpl
var defaultTemplate string

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the html generator, which embeds the css result.
func (m *Module) Register(r *registry.Registry) {
	r.Register(assettype.HTML, registry.Descriptor{
		DependsOn:       assettype.CSS,
		NeedsCodepoints: true,
		Generate:        Generate,
	})
}

// Icon is one preview tile.
type Icon struct {
	render.Glyph
	Markup template.HTML
}

// Data is the input of the preview template.
type Data struct {
	*render.Data
	CSS   template.CSS
	Icons []Icon
}

// Generate renders the preview page. css is the stylesheet the page embeds.
func Generate(ctx context.Context, opts *registry.Options, css registry.Result) (registry.Result, error) {
	base := render.NewData(opts)
	data := &Data{
		Data: base,
		// The stylesheet is produced by the css generator, not user input.
		CSS: template.CSS(css),
	}
	for _, g := range base.Glyphs {
		data.Icons = append(data.Icons, Icon{Glyph: g, Markup: markup(base, g.ID)})
	}

	ctxlog.FromContext(ctx).Debug("Rendering preview.", "icons", len(data.Icons), "css_bytes", len(css))
	return render.HTML(opts, assettype.HTML, defaultTemplate, data)
}

var simpleClass = regexp.MustCompile(`^\.[A-Za-z_][\w-]*$`)

// markup returns the element the stylesheet renders icon id on. A selector
// that is a single class is added to the element's classes.
func markup(d *render.Data, id string) template.HTML {
	tag := d.Tag
	if tag == "" {
		tag = "i"
	}
	classes := d.Prefix + "-" + id
	if simpleClass.MatchString(d.Selector) {
		classes = strings.TrimPrefix(d.Selector, ".") + " " + classes
	}
	tag = html.EscapeString(tag)
	return template.HTML(fmt.Sprintf(`<%s class="%s"></%s>`, tag, html.EscapeString(classes), tag))
}
