package svgfont

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/glyphforge/internal/codepoints"
	"github.com/specialistvlad/glyphforge/internal/config"
	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/icon"
	"github.com/specialistvlad/glyphforge/internal/registry"
	"github.com/specialistvlad/glyphforge/internal/testutil"
)

const bigSquare = `<svg xmlns="http://www.w3.org/2000/svg" width="48" height="48"><path d="M2 2h20v20H2z"/></svg>`

func newOptions(t *testing.T, files map[string]string) *registry.Options {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/icons", 0o755))
	testutil.WriteIcons(t, fsys, "/icons", files)
	assets, err := icon.Discover(ctxlog.Discard(context.Background()), fsys, "/icons")
	require.NoError(t, err)

	return &registry.Options{
		RunnerOptions: config.RunnerOptions{Name: "icons"},
		Codepoints:    codepoints.Resolve(assets, nil),
		Assets:        assets,
		Fs:            fsys,
	}
}

func TestGenerate(t *testing.T) {
	// --- Arrange ---
	ctx := ctxlog.Discard(context.Background())
	opts := newOptions(t, map[string]string{
		"foo.svg":     testutil.SquareIcon,
		"nav/bar.svg": testutil.SquareIcon,
	})

	// --- Act ---
	out, err := Generate(ctx, opts, nil)

	// --- Assert ---
	require.NoError(t, err)
	font := string(out)
	assert.Contains(t, font, `<font id="icons" horiz-adv-x="24">`)
	assert.Contains(t, font, `<font-face font-family="icons" font-weight="400" font-style="normal" units-per-em="24" ascent="24" descent="0">`)
	assert.Contains(t, font, `<glyph glyph-name="foo" unicode="`+string(rune(0xf101))+`" horiz-adv-x="24" d="M2 22h20v-20H2z">`)
	assert.Contains(t, font, `glyph-name="nav-bar" unicode="`+string(rune(0xf102))+`"`)
	assert.Less(t, strings.Index(font, `glyph-name="foo"`), strings.Index(font, `glyph-name="nav-bar"`), "glyphs are ordered by codepoint")
}

func TestGenerate_Metrics(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	files := map[string]string{
		"small.svg": testutil.SquareIcon,
		"big.svg":   bigSquare,
	}
	f := func(v float64) *float64 { return &v }
	yes := true

	testCases := []struct {
		name      string
		configure func(o *config.RunnerOptions)
		contains  []string
	}{
		{
			name:      "font height defaults to tallest icon",
			configure: func(o *config.RunnerOptions) {},
			contains: []string{
				`units-per-em="48"`,
				`glyph-name="small" unicode="` + string(rune(0xf102)) + `" horiz-adv-x="24" d="M2 46h20v-20H2z"`,
			},
		},
		{
			name:      "normalize scales each icon to the font height",
			configure: func(o *config.RunnerOptions) { o.Normalize = &yes },
			contains: []string{
				`glyph-name="small" unicode="` + string(rune(0xf102)) + `" horiz-adv-x="48" d="M4 44h40v-40H4z"`,
				`glyph-name="big" unicode="` + string(rune(0xf101)) + `" horiz-adv-x="48" d="M2 46h20v-20H2z"`,
			},
		},
		{
			name: "descent shifts the baseline",
			configure: func(o *config.RunnerOptions) {
				o.FontHeight = f(24)
				o.Descent = f(4)
				o.Normalize = &yes
			},
			contains: []string{
				`units-per-em="24" ascent="20" descent="-4"`,
				`glyph-name="small" unicode="` + string(rune(0xf102)) + `" horiz-adv-x="24" d="M2 18h20v-20H2z"`,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts := newOptions(t, files)
			tc.configure(&opts.RunnerOptions)

			out, err := Generate(ctx, opts, nil)

			require.NoError(t, err)
			for _, s := range tc.contains {
				assert.Contains(t, string(out), s)
			}
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())

	t.Run("malformed icon", func(t *testing.T) {
		opts := newOptions(t, map[string]string{"broken.svg": `<svg viewBox="0 0 24 24"><path d="M0 0L1"/></svg>`})
		_, err := Generate(ctx, opts, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse icon 'broken' (broken.svg)")
	})

	t.Run("missing codepoint", func(t *testing.T) {
		opts := newOptions(t, map[string]string{"foo.svg": testutil.SquareIcon})
		opts.Codepoints = codepoints.Table{}
		_, err := Generate(ctx, opts, nil)
		assert.EqualError(t, err, "icon 'foo' has no codepoint")
	})

	t.Run("no icons", func(t *testing.T) {
		opts := newOptions(t, map[string]string{})
		_, err := Generate(ctx, opts, nil)
		assert.EqualError(t, err, "no icons to build a font from")
	})
}

func TestGenerate_RejectsUnencodableCodepoints(t *testing.T) {
	testCases := []struct {
		name      string
		codepoint int
	}{
		{name: "surrogate", codepoint: 0xd800},
		{name: "zero", codepoint: 0},
		{name: "noncharacter", codepoint: 0xfffe},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			ctx := ctxlog.Discard(context.Background())
			opts := newOptions(t, map[string]string{"home.svg": testutil.SquareIcon})
			opts.Codepoints = codepoints.Table{"home": tc.codepoint}

			// --- Act ---
			out, err := Generate(ctx, opts, nil)

			// --- Assert ---
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Contains(t, err.Error(), "icon 'home'")
			assert.Contains(t, err.Error(), "cannot encode")
		})
	}
}

func TestGenerate_WarnsAboutTransforms(t *testing.T) {
	// --- Arrange ---
	logs := &testutil.SafeBuffer{}
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(logs, nil)))
	opts := newOptions(t, map[string]string{
		"moved.svg": `<svg viewBox="0 0 24 24"><g transform="translate(4 0)"><path d="M2 2h20v20H2z"/></g></svg>`,
		"plain.svg": testutil.SquareIcon,
	})

	// --- Act ---
	_, err := Generate(ctx, opts, nil)

	// --- Assert ---
	require.NoError(t, err)
	out := logs.String()
	assert.Contains(t, out, "transform attributes")
	assert.Contains(t, out, "icon=moved")
	assert.NotContains(t, out, "icon=plain")
}
