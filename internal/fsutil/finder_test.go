package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIconFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fsys, filepath.FromSlash(f), []byte("<svg/>"), 0o644))
	}
	return fsys
}

func TestFindFilesByExtension_Recursive(t *testing.T) {
	fsys := newIconFs(t,
		"icons/home.svg",
		"icons/nested/deep/star.SVG",
		"icons/readme.md",
		"other/ignored.svg",
	)

	files, err := FindFilesByExtension(fsys, "icons", ".svg")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("icons", "home.svg"),
		filepath.Join("icons", "nested", "deep", "star.SVG"),
	}, files)
}

func TestFindFiles_MissingRoot(t *testing.T) {
	_, err := FindFiles(afero.NewMemMapFs(), "nope", "**/*.svg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestFindFiles_EmptyPatternPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = FindFiles(afero.NewMemMapFs(), ".", "")
	})
}

func TestCaseInsensitiveGlob(t *testing.T) {
	assert.Equal(t, ".[sS][vV][gG]", caseInsensitiveGlob(".svg"))
	assert.Equal(t, ".[wW][oO][fF][fF]2", caseInsensitiveGlob(".woff2"))
}

func TestDirChecker(t *testing.T) {
	fsys := newIconFs(t, "icons/home.svg")
	checker := NewDirChecker(fsys)

	ok, err := checker.IsDir("icons")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = checker.IsDir(filepath.Join("icons", "home.svg"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = checker.IsDir("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
