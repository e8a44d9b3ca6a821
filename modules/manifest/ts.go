package manifest

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/registry"
	"github.com/specialistvlad/glyphforge/internal/render"
)

//go:embed ts.tmpl
var tsTemplate string

// TSTypes are the declarations GenerateTS can emit, selectable through
// formatOptions.ts.types. All of them are emitted by default.
var TSTypes = []string{"enum", "constant", "literalId", "literalKey"}

type tsData struct {
	*render.Data
	Types map[string]bool
}

// GenerateTS renders TypeScript typings for the icon ids and codepoints.
func GenerateTS(_ context.Context, opts *registry.Options, _ registry.Result) (registry.Result, error) {
	types, err := tsTypes(opts)
	if err != nil {
		return nil, err
	}
	return render.Text(opts, assettype.TS, tsTemplate, &tsData{Data: render.NewData(opts), Types: types})
}

func tsTypes(opts *registry.Options) (map[string]bool, error) {
	selected := map[string]bool{}
	v, ok := opts.FormatOptions.Get(assettype.TS, "types")
	if !ok || v == nil {
		for _, t := range TSTypes {
			selected[t] = true
		}
		return selected, nil
	}

	var names []string
	switch x := v.(type) {
	case []string:
		names = x
	case []any:
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("formatOptions.ts.types must list strings, got %v", item)
			}
			names = append(names, s)
		}
	default:
		return nil, fmt.Errorf("formatOptions.ts.types must be a list, got %v", v)
	}
	for _, name := range names {
		if !slices.Contains(TSTypes, name) {
			return nil, fmt.Errorf("formatOptions.ts.types: %q doesn't exist in [%s]", name, strings.Join(TSTypes, ", "))
		}
		selected[name] = true
	}
	return selected, nil
}
