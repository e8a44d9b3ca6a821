package app

import (
	"github.com/specialistvlad/glyphforge/internal/registry"
	"github.com/specialistvlad/glyphforge/modules/fontbin"
	"github.com/specialistvlad/glyphforge/modules/manifest"
	"github.com/specialistvlad/glyphforge/modules/preview"
	"github.com/specialistvlad/glyphforge/modules/stylesheet"
	"github.com/specialistvlad/glyphforge/modules/svgfont"
)

// coreModules is the definitive list of all generator modules that are
// compiled into the glyphforge binary.
var coreModules = []registry.Module{
	&svgfont.Module{},
	&fontbin.Module{},
	&stylesheet.Module{},
	&preview.Module{},
	&manifest.Module{},
}
