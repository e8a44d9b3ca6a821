package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/registry"
)

// GenerateJSON renders the codepoint table as a JSON object keyed by icon id.
// formatOptions.json.indent is either a number of spaces or an indent string;
// without it the output is compact.
func GenerateJSON(_ context.Context, opts *registry.Options, _ registry.Result) (registry.Result, error) {
	indent, err := jsonIndent(opts)
	if err != nil {
		return nil, err
	}

	table := make(map[string]int, len(opts.Assets))
	for _, id := range opts.Assets.IDs() {
		table[id] = opts.Codepoints[id]
	}

	var out []byte
	if indent == "" {
		out, err = json.Marshal(table)
	} else {
		out, err = json.MarshalIndent(table, "", indent)
	}
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func jsonIndent(opts *registry.Options) (string, error) {
	v, ok := opts.FormatOptions.Get(assettype.JSON, "indent")
	if !ok || v == nil {
		return "", nil
	}
	var n float64
	switch x := v.(type) {
	case string:
		return x, nil
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case float64:
		n = x
	default:
		return "", fmt.Errorf("formatOptions.json.indent must be a number or a string, got %v", v)
	}
	if n < 0 || n != math.Trunc(n) {
		return "", fmt.Errorf("formatOptions.json.indent must be a non-negative integer, got %v", v)
	}
	return strings.Repeat(" ", int(n)), nil
}
