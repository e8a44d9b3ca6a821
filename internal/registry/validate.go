package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/dag"
)

// Graph returns the dependency graph of the registered generators. An edge
// points from a dependency to its dependent.
func (r *Registry) Graph() *dag.Graph {
	g := dag.New()
	for _, t := range r.Types() {
		d := r.generators[t]
		if d.DependsOn == assettype.None {
			g.AddNode(string(t))
			continue
		}
		g.AddEdge(string(d.DependsOn), string(t))
	}
	return g
}

// Validate checks that universe and the registered types match one to one,
// that every dependency is registered and that dependencies are acyclic.
func (r *Registry) Validate(ctx context.Context, universe []assettype.AssetType) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, t := range universe {
		if _, ok := r.generators[t]; !ok {
			errs = append(errs, fmt.Sprintf("asset type '%s' has no generator", t))
		}
	}
	for _, t := range r.Types() {
		if !slices.Contains(universe, t) {
			errs = append(errs, fmt.Sprintf("generator registered for unknown asset type '%s'", t))
		}
	}

	g := r.Graph()
	for _, id := range g.Nodes() {
		for _, dep := range g.Dependencies(id) {
			if dep == id {
				errs = append(errs, fmt.Sprintf("generator '%s' depends on itself", id))
			} else if _, ok := r.generators[assettype.AssetType(dep)]; !ok {
				errs = append(errs, fmt.Sprintf("generator '%s' depends on unregistered asset type '%s'", id, dep))
			}
		}
	}

	if len(errs) == 0 {
		if _, err := g.TopologicalSort(); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "generators", len(r.generators))
	return nil
}
