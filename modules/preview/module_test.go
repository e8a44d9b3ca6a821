package preview

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/codepoints"
	"github.com/specialistvlad/glyphforge/internal/config"
	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/icon"
	"github.com/specialistvlad/glyphforge/internal/registry"
	"github.com/specialistvlad/glyphforge/internal/render"
)

func testOptions() *registry.Options {
	return &registry.Options{
		RunnerOptions: config.RunnerOptions{Name: "my-icons", Prefix: "icon", Tag: "i"},
		Codepoints:    codepoints.Table{"arrow": 0xf101},
		Assets:        icon.AssetsMap{"arrow": {ID: "arrow"}},
		Fs:            afero.NewMemMapFs(),
	}
}

func TestModule_Register(t *testing.T) {
	r := registry.New(&Module{})

	d, ok := r.Descriptor(assettype.HTML)
	require.True(t, ok)
	assert.Equal(t, assettype.CSS, d.DependsOn)
	assert.True(t, d.NeedsCodepoints)
}

func TestGenerate(t *testing.T) {
	css := []byte(`i.icon-arrow:before { content: "\f101"; }`)

	out, err := Generate(ctxlog.Discard(context.Background()), testOptions(), css)

	require.NoError(t, err)
	page := string(out)
	assert.Contains(t, page, "<title>my-icons</title>")
	assert.Contains(t, page, `i.icon-arrow:before { content: "\f101"; }`, "css is embedded verbatim")
	assert.Contains(t, page, `<span class="inner"><i class="icon-arrow"></i></span>`)
	assert.Contains(t, page, `<span class="codepoint">\f101</span>`)
}

func TestMarkup(t *testing.T) {
	testCases := []struct {
		name     string
		data     render.Data
		expected string
	}{
		{name: "tag and prefix", data: render.Data{Tag: "i", Prefix: "icon"}, expected: `<i class="icon-x"></i>`},
		{name: "default tag", data: render.Data{Prefix: "fa"}, expected: `<i class="fa-x"></i>`},
		{name: "class selector", data: render.Data{Tag: "span", Prefix: "icon", Selector: ".glyph"}, expected: `<span class="glyph icon-x"></span>`},
		{name: "complex selector is ignored", data: render.Data{Tag: "i", Prefix: "icon", Selector: "[data-icon]"}, expected: `<i class="icon-x"></i>`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, string(markup(&tc.data, "x")))
		})
	}
}
