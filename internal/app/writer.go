package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/config"
	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/registry"
)

// WrittenFile describes one artifact on disk.
type WrittenFile struct {
	Type assettype.AssetType
	Path string
	Size int
}

// OutputPath is pathOptions[t] when set, <outputDir>/<name>.<t> otherwise.
func OutputPath(opts *config.RunnerOptions, t assettype.AssetType) string {
	if p := opts.PathOptions[t]; p != "" {
		return p
	}
	return filepath.Join(opts.OutputDir, opts.Name+"."+string(t))
}

// WriteAssets writes every result to its output path, creating parent
// directories as needed. Files are written in the order of the requested
// types.
func WriteAssets(ctx context.Context, fsys afero.Fs, opts *config.RunnerOptions, results map[assettype.AssetType]registry.Result) ([]WrittenFile, error) {
	logger := ctxlog.FromContext(ctx)

	written := make([]WrittenFile, 0, len(results))
	for _, t := range opts.RequestedTypes() {
		data, ok := results[t]
		if !ok {
			continue
		}
		path := OutputPath(opts, t)
		if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s asset: %w", t, err)
		}
		if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s asset to %s: %w", t, path, err)
		}
		logger.Debug("Asset written.", "type", t, "path", path, "bytes", len(data))
		written = append(written, WrittenFile{Type: t, Path: path, Size: len(data)})
	}
	return written, nil
}
