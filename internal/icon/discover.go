package icon

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/fsutil"
)

// Discover walks inputDir for SVG files and returns them keyed by icon id.
// Two files resolving to the same id are rejected.
func Discover(ctx context.Context, fsys afero.Fs, inputDir string) (AssetsMap, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Discovering icons.", "input_dir", inputDir)

	files, err := fsutil.FindFilesByExtension(fsys, inputDir, ".svg")
	if err != nil {
		return nil, fmt.Errorf("failed to discover icons in %s: %w", inputDir, err)
	}

	assets := make(AssetsMap, len(files))
	for _, file := range files {
		id := ID(file, inputDir)
		if existing, ok := assets[id]; ok {
			return nil, fmt.Errorf("icons %s and %s both resolve to id '%s'", existing.RelativePath, file, id)
		}

		rel, err := filepath.Rel(inputDir, file)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, err
		}
		assets[id] = &Asset{ID: id, Path: file, RelativePath: rel, AbsolutePath: abs}
	}

	if len(assets) == 0 {
		logger.Warn("No .svg icons found in input directory.", "input_dir", inputDir)
	} else {
		logger.Debug("Icons discovered.", "count", len(assets))
	}
	return assets, nil
}
