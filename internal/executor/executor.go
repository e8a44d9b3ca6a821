package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/codepoints"
	"github.com/specialistvlad/glyphforge/internal/config"
	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/icon"
	"github.com/specialistvlad/glyphforge/internal/registry"
)

// CodepointResolver completes a partial codepoint table for the given icons.
type CodepointResolver func(assets icon.AssetsMap, partial codepoints.Table) codepoints.Table

// Executor runs the generators of a registry.
type Executor struct {
	registry    *registry.Registry
	resolve     CodepointResolver
	fs          afero.Fs
	concurrency int
}

// Option configures an Executor.
type Option func(*Executor)

// WithCodepointResolver replaces codepoints.Resolve.
func WithCodepointResolver(fn CodepointResolver) Option {
	return func(e *Executor) { e.resolve = fn }
}

// WithFs sets the filesystem handed to generators. Defaults to the OS.
func WithFs(fsys afero.Fs) Option {
	return func(e *Executor) { e.fs = fsys }
}

// WithConcurrency caps the number of generators running at once. Zero or a
// negative value means no limit.
func WithConcurrency(n int) Option {
	return func(e *Executor) { e.concurrency = n }
}

// New creates an Executor for reg.
func New(reg *registry.Registry, opts ...Option) *Executor {
	e := &Executor{
		registry: reg,
		resolve:  codepoints.Resolve,
		fs:       afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// cell memoizes one generator invocation within a run.
type cell struct {
	once   sync.Once
	result registry.Result
	err    error
}

// run holds the state of one GenerateAssets call.
type run struct {
	registry *registry.Registry
	options  *registry.Options
	cells    map[assettype.AssetType]*cell
}

// Plan returns the requested types plus everything they transitively depend
// on, in an order satisfying every dependency. Asking for a type without a
// registered generator is a programming error and panics.
func (e *Executor) Plan(requested []assettype.AssetType) ([]assettype.AssetType, error) {
	roots := assettype.Strings(requested)
	order, err := e.registry.Graph().Closure(roots...)
	if err != nil {
		return nil, err
	}

	plan := assettype.FromStrings(order)
	for _, t := range plan {
		if _, ok := e.registry.Descriptor(t); !ok {
			panic(fmt.Sprintf("no generator registered for asset type '%s'", t))
		}
	}
	return plan, nil
}

// GenerateAssets runs the generators of the deduplicated union of
// opts.FontTypes and opts.AssetTypes and returns their results keyed by asset
// type. Dependencies that were not requested are generated but left out of
// the result.
func (e *Executor) GenerateAssets(ctx context.Context, assets icon.AssetsMap, opts *config.RunnerOptions) (map[assettype.AssetType]registry.Result, error) {
	logger := ctxlog.FromContext(ctx)

	requested := opts.RequestedTypes()
	plan, err := e.Plan(requested)
	if err != nil {
		return nil, fmt.Errorf("failed to plan generators: %w", err)
	}
	logger.Debug("Generator plan computed.", "requested", requested, "plan", plan)

	r := &run{
		registry: e.registry,
		options: &registry.Options{
			RunnerOptions: *opts,
			Assets:        assets,
			Fs:            e.fs,
		},
		cells: make(map[assettype.AssetType]*cell, len(plan)),
	}

	// The cell lives for this run only, so concurrent builds never share a
	// codepoint table.
	resolveCodepoints := sync.OnceValue(func() codepoints.Table {
		return e.resolve(assets, opts.Codepoints)
	})

	for _, t := range plan {
		r.cells[t] = &cell{}
		if d, _ := e.registry.Descriptor(t); d.NeedsCodepoints && r.options.Codepoints == nil {
			r.options.Codepoints = resolveCodepoints()
			logger.Debug("Codepoints resolved.", "count", len(r.options.Codepoints), "needed_by", t)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}
	for _, t := range requested {
		g.Go(func() error {
			_, err := r.generate(gctx, t)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[assettype.AssetType]registry.Result, len(requested))
	for _, t := range requested {
		out[t] = r.cells[t].result
	}
	logger.Debug("All generators completed.", "generated", len(plan), "returned", len(out))
	return out, nil
}

// generate runs the generator of t once, after its dependency.
func (r *run) generate(ctx context.Context, t assettype.AssetType) (registry.Result, error) {
	c := r.cells[t]
	c.once.Do(func() {
		d, _ := r.registry.Descriptor(t)

		var dependency registry.Result
		if d.DependsOn != assettype.None {
			dependency, c.err = r.generate(ctx, d.DependsOn)
			if c.err != nil {
				return
			}
		}
		if err := ctx.Err(); err != nil {
			c.err = err
			return
		}

		logger := ctxlog.FromContext(ctx).With("type", t)
		logger.Info("▶️ Generating asset")
		result, err := d.Generate(ctx, r.options, dependency)
		if err != nil {
			logger.Error("Generator failed.", "error", err)
			c.err = &GeneratorFailureError{Type: t, Err: err}
			return
		}
		c.result = result
		logger.Info("✅ Generated asset", "bytes", len(result))
	})
	return c.result, c.err
}
