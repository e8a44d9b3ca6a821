package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/afero"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/codepoints"
	"github.com/specialistvlad/glyphforge/internal/config"
	"github.com/specialistvlad/glyphforge/internal/icon"
)

// Module is the interface that all generator modules implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Result is the artifact produced by a generator. The core never inspects it.
type Result = []byte

// Options is the bag shared by every generator invocation of a build.
// Generators must treat it, and everything it references, as read-only.
type Options struct {
	config.RunnerOptions

	// Codepoints shadows RunnerOptions.Codepoints with the resolved table. It
	// is nil unless a generator of the build declared NeedsCodepoints.
	Codepoints codepoints.Table
	Assets     icon.AssetsMap
	// Fs is the filesystem icons are read from.
	Fs afero.Fs
}

// GenerateFunc produces the artifact of one asset type. dependency is the
// result of the descriptor's DependsOn generator, or nil when there is none.
type GenerateFunc func(ctx context.Context, opts *Options, dependency Result) (Result, error)

// Descriptor describes the generator of one asset type.
type Descriptor struct {
	// DependsOn is the asset type whose result Generate receives, or
	// assettype.None.
	DependsOn       assettype.AssetType
	NeedsCodepoints bool
	Generate        GenerateFunc
}

// Registry holds the generator descriptors of a single application instance.
type Registry struct {
	generators map[assettype.AssetType]*Descriptor
}

// New creates an empty Registry and registers the given modules into it.
func New(modules ...Module) *Registry {
	r := &Registry{generators: make(map[assettype.AssetType]*Descriptor)}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// Register adds the generator of asset type t. Registering a type twice or a
// descriptor without Generate is a programming error and panics.
func (r *Registry) Register(t assettype.AssetType, d Descriptor) {
	if _, exists := r.generators[t]; exists {
		panic(fmt.Sprintf("generator for asset type '%s' already registered", t))
	}
	if d.Generate == nil {
		panic(fmt.Sprintf("generator for asset type '%s' has no Generate function", t))
	}
	slog.Debug("Registering generator.", "type", t, "depends_on", d.DependsOn, "needs_codepoints", d.NeedsCodepoints)
	r.generators[t] = &d
}

// Descriptor returns the descriptor registered for t.
func (r *Registry) Descriptor(t assettype.AssetType) (*Descriptor, bool) {
	d, ok := r.generators[t]
	return d, ok
}

// Types returns the registered asset types in sorted order.
func (r *Registry) Types() []assettype.AssetType {
	types := make([]assettype.AssetType, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
