// Package icon models the SVG icons a build consumes: how they are found on
// disk and how their identifiers are derived from file paths.
package icon

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Asset describes a single discovered icon file.
type Asset struct {
	ID string
	// Path is the file location on the filesystem the icon was discovered on.
	Path         string
	RelativePath string
	AbsolutePath string
}

// AssetsMap maps icon identifiers to their assets.
type AssetsMap map[string]*Asset

// IDs returns the identifiers of the map in sorted order.
func (m AssetsMap) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var separators = regexp.MustCompile(`[/\\.]+`)

// ID derives an icon identifier from a file path relative to baseDir. The
// extension is stripped, path segments and dots are joined with '-' and the
// result is lower-cased.
func ID(path, baseDir string) string {
	rel, err := filepath.Rel(filepath.Clean(baseDir), filepath.Clean(path))
	if err != nil {
		rel = path
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	rel = strings.Trim(separators.ReplaceAllString(rel, "-"), "-")
	return strings.ToLower(rel)
}
