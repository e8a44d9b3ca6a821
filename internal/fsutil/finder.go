// Package fsutil provides file system utility functions on top of afero so
// that callers can swap the operating system for an in-memory filesystem.
package fsutil

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// FindFiles returns every regular file below rootPath whose path relative to
// rootPath matches the doublestar pattern. Results are joined with rootPath
// and sorted.
func FindFiles(fsys afero.Fs, rootPath string, pattern string) ([]string, error) {
	if pattern == "" {
		panic("pattern must not be empty")
	}

	isDir, err := afero.DirExists(fsys, rootPath)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", rootPath, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%s is not a directory", rootPath)
	}

	iofs := afero.NewIOFS(afero.NewBasePathFs(fsys, rootPath))
	matches, err := doublestar.Glob(iofs, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob %q in %s: %w", pattern, rootPath, err)
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		fullPath := filepath.Join(rootPath, filepath.FromSlash(path.Clean(match)))
		info, err := fsys.Stat(fullPath)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			continue
		}
		files = append(files, fullPath)
	}
	sort.Strings(files)

	return files, nil
}

// FindFilesByExtension recursively searches the given root path for all files
// ending with the specified extension, ignoring its case.
func FindFilesByExtension(fsys afero.Fs, rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}
	return FindFiles(fsys, rootPath, ExtensionPattern(extension))
}

// ExtensionPattern returns the doublestar pattern matching files with the
// given extension at any depth, ignoring its case.
func ExtensionPattern(extension string) string {
	return "**/*" + caseInsensitiveGlob(extension)
}

// caseInsensitiveGlob turns ".svg" into ".[sS][vV][gG]".
func caseInsensitiveGlob(s string) string {
	var out []rune
	for _, r := range s {
		lower, upper := unicode.ToLower(r), unicode.ToUpper(r)
		if lower == upper {
			if r == '*' || r == '?' || r == '[' || r == ']' || r == '{' || r == '}' || r == '\\' {
				out = append(out, '\\')
			}
			out = append(out, r)
			continue
		}
		out = append(out, '[', lower, upper, ']')
	}
	return string(out)
}
