package configfile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fsys afero.Fs, name, content string) string {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	return name
}

func TestLoad_HCL(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeFile(t, fsys, "glyphforge.hcl", `
		name          = "brand"
		inputDir      = "./icons"
		fontTypes     = ["woff2", "woff"]
		fontHeight    = 512.5
		normalize     = true
		selector      = null
		codepoints    = { home = 61697 }
		formatOptions = { json = { indent = 2 } }
	`)

	raw, err := NewLoader(fsys).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":          "brand",
		"inputDir":      "./icons",
		"fontTypes":     []any{"woff2", "woff"},
		"fontHeight":    512.5,
		"normalize":     true,
		"selector":      nil,
		"codepoints":    map[string]any{"home": int64(61697)},
		"formatOptions": map[string]any{"json": map[string]any{"indent": int64(2)}},
	}, raw)
}

func TestLoad_HCLRejectsBlocks(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeFile(t, fsys, "glyphforge.hcl", `
		font "woff" {
			enabled = true
		}
	`)

	_, err := NewLoader(fsys).Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode config file")
}

func TestLoad_HCLSyntaxError(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeFile(t, fsys, "broken.hcl", `name = `)

	_, err := NewLoader(fsys).Load(context.Background(), path)
	require.Error(t, err)
}

func TestLoad_YAML(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeFile(t, fsys, "cfg.yaml", `
name: brand
assetTypes: [css, json]
fontsUrl: ~
codepoints:
  home: 61697
`)

	raw, err := NewLoader(fsys).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "brand", raw["name"])
	assert.Equal(t, []any{"css", "json"}, raw["assetTypes"])
	assert.Contains(t, raw, "fontsUrl")
	assert.Nil(t, raw["fontsUrl"])
	assert.Equal(t, map[string]any{"home": 61697}, raw["codepoints"])
}

func TestLoad_TOML(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeFile(t, fsys, "cfg.toml", `
name = "brand"
fontTypes = ["ttf"]

[codepoints]
home = 61697
`)

	raw, err := NewLoader(fsys).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "brand", raw["name"])
	assert.Equal(t, []any{"ttf"}, raw["fontTypes"])
	assert.Equal(t, map[string]any{"home": int64(61697)}, raw["codepoints"])
}

func TestLoad_JSONAndRCFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	jsonPath := writeFile(t, fsys, "cfg.json", `{"name": "brand", "round": 1.5, "codepoints": {"home": 61697}}`)
	rcPath := writeFile(t, fsys, ".glyphforgerc", `{"name": "rc", "tag": "span"}`)

	loader := NewLoader(fsys)

	raw, err := loader.Load(context.Background(), jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 1.5, raw["round"])
	assert.Equal(t, map[string]any{"home": int64(61697)}, raw["codepoints"])

	raw, err = loader.Load(context.Background(), rcPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "rc", "tag": "span"}, raw)
}

func TestLoad_EmptyFileYieldsEmptyMap(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeFile(t, fsys, "empty.json", "")

	raw, err := NewLoader(fsys).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, raw)
	assert.NotNil(t, raw)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeFile(t, fsys, "cfg.ini", "name=brand")

	_, err := NewLoader(fsys).Load(context.Background(), path)
	require.EqualError(t, err, "unsupported config file format '.ini' for cfg.ini")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader(afero.NewMemMapFs()).Load(context.Background(), "nope.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file nope.hcl")
}

func TestFind_PriorityOrder(t *testing.T) {
	fsys := afero.NewMemMapFs()
	loader := NewLoader(fsys)

	found, err := loader.Find("project")
	require.NoError(t, err)
	assert.Empty(t, found)

	writeFile(t, fsys, filepath.Join("project", ".glyphforgerc"), "{}")
	writeFile(t, fsys, filepath.Join("project", ".glyphforgerc.yaml"), "{}")

	found, err = loader.Find("project")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("project", ".glyphforgerc.yaml"), found)

	writeFile(t, fsys, filepath.Join("project", "glyphforge.hcl"), "")
	found, err = loader.Find("project")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("project", "glyphforge.hcl"), found)
}
