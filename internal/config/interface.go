package config

import "context"

// Loader is the interface for a format-specific configuration file loader.
// It produces the raw option map that Parser validates.
type Loader interface {
	Load(ctx context.Context, path string) (map[string]any, error)
}
