package configfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/specialistvlad/glyphforge/internal/config"
	"github.com/specialistvlad/glyphforge/internal/ctxlog"
)

// DefaultNames lists the file names Find looks for, in priority order.
var DefaultNames = []string{
	".glyphforgerc.hcl",
	"glyphforge.hcl",
	".glyphforgerc.yaml",
	".glyphforgerc.yml",
	".glyphforgerc.toml",
	".glyphforgerc.json",
	".glyphforgerc",
}

type decodeFunc func(filename string, src []byte) (map[string]any, error)

// Loader is the file-based implementation of the config.Loader interface.
type Loader struct {
	fs       afero.Fs
	decoders map[string]decodeFunc
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a Loader reading from fsys.
func NewLoader(fsys afero.Fs) *Loader {
	return &Loader{
		fs: fsys,
		decoders: map[string]decodeFunc{
			".hcl":  decodeHCL,
			".yaml": decodeYAML,
			".yml":  decodeYAML,
			".toml": decodeTOML,
			".json": decodeJSON,
			// Extension-less rc files are JSON, which the YAML decoder reads too.
			"": decodeYAML,
		},
	}
}

// Load reads the file at path and returns its top-level attributes as a raw
// option map.
func (l *Loader) Load(ctx context.Context, path string) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)

	ext := strings.ToLower(filepath.Ext(path))
	if strings.HasPrefix(filepath.Base(path), ".") && filepath.Ext(path) == filepath.Base(path) {
		ext = ""
	}
	decode, ok := l.decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format '%s' for %s", ext, path)
	}

	src, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	raw, err := decode(path, src)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	logger.Debug("Config file loaded.", "path", path, "keys", len(raw))
	return raw, nil
}

// Find returns the first of DefaultNames present in dir, or "" when there is
// none.
func (l *Loader) Find(dir string) (string, error) {
	for _, name := range DefaultNames {
		candidate := filepath.Join(dir, name)
		exists, err := afero.Exists(l.fs, candidate)
		if err != nil {
			return "", fmt.Errorf("error accessing path %s: %w", candidate, err)
		}
		if exists {
			return candidate, nil
		}
	}
	return "", nil
}
