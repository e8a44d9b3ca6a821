package testutil

import (
	"context"
	"sync"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/codepoints"
	"github.com/specialistvlad/glyphforge/internal/registry"
)

// Dependencies mirrors the dependency table of the production generators.
var Dependencies = map[assettype.AssetType]assettype.AssetType{
	assettype.TTF:   assettype.SVG,
	assettype.WOFF:  assettype.TTF,
	assettype.WOFF2: assettype.TTF,
	assettype.EOT:   assettype.TTF,
	assettype.HTML:  assettype.CSS,
}

// NeedsCodepoints reports whether the production generator of t reads the
// codepoint table.
func NeedsCodepoints(t assettype.AssetType) bool {
	switch t {
	case assettype.TTF, assettype.WOFF, assettype.WOFF2, assettype.EOT:
		return false
	}
	return true
}

// Call is one recorded generator invocation.
type Call struct {
	Type       assettype.AssetType
	Dependency registry.Result
	Codepoints codepoints.Table
}

// Recorder collects generator invocations from concurrent goroutines.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// Record appends a call.
func (r *Recorder) Record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

// Calls returns a copy of the recorded calls in arrival order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Count returns how often the generator of t ran.
func (r *Recorder) Count(t assettype.AssetType) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Type == t {
			n++
		}
	}
	return n
}

// StubModule registers a generator for every asset type using the production
// dependency table. Each generator returns "<type>" or "<type>(<dependency>)".
type StubModule struct {
	Recorder *Recorder
	// Failures makes the generator of a type return the given error.
	Failures map[assettype.AssetType]error
}

// Register implements the registry.Module interface.
func (m *StubModule) Register(r *registry.Registry) {
	for _, t := range assettype.All() {
		r.Register(t, registry.Descriptor{
			DependsOn:       Dependencies[t],
			NeedsCodepoints: NeedsCodepoints(t),
			Generate:        m.generator(t),
		})
	}
}

func (m *StubModule) generator(t assettype.AssetType) registry.GenerateFunc {
	return func(_ context.Context, opts *registry.Options, dependency registry.Result) (registry.Result, error) {
		if m.Recorder != nil {
			m.Recorder.Record(Call{Type: t, Dependency: dependency, Codepoints: opts.Codepoints})
		}
		if err := m.Failures[t]; err != nil {
			return nil, err
		}
		if dependency == nil {
			return registry.Result(t), nil
		}
		return registry.Result(string(t) + "(" + string(dependency) + ")"), nil
	}
}
