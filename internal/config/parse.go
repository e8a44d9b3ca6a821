package config

import (
	"context"
	"maps"
	"slices"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/fsutil"
)

// Parser validates raw option maps. It is safe for concurrent use.
type Parser struct {
	validators map[string][]Validator
}

// NewParser builds a Parser whose directory options are checked against
// checker.
func NewParser(checker fsutil.DirChecker) *Parser {
	parseDir := ParseDir(checker)

	return &Parser{
		validators: map[string][]Validator{
			KeyInputDir:      {Optional(ParseString), Optional(parseDir)},
			KeyOutputDir:     {Optional(ParseString), Optional(parseDir)},
			KeyName:          {ParseString},
			KeyFontTypes:     {ListMembersParser(assettype.FontTypes())},
			KeyAssetTypes:    {ListMembersParser(assettype.OtherTypes())},
			KeyFormatOptions: {},
			KeyPathOptions:   {},
			KeyCodepoints:    {},
			KeyFontHeight:    {Optional(ParseNumeric)},
			KeyDescent:       {Optional(ParseNumeric)},
			KeyNormalize:     {Optional(ParseBoolean)},
			KeyRound:         {Optional(ParseNumeric)},
			KeySelector:      {Nullable(ParseString)},
			KeyTag:           {ParseString},
			KeyPrefix:        {ParseString},
			KeyFontsURL:      {Nullable(ParseString)},
		},
	}
}

// RecognizedKeys returns the closed set of option keys in sorted order.
func (p *Parser) RecognizedKeys() []string {
	return slices.Sorted(maps.Keys(p.validators))
}

// Normalize merges DefaultValues under raw and runs every key through its
// validator chain. The result holds exactly one entry per processed key.
func (p *Parser) Normalize(ctx context.Context, raw map[string]any) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)

	merged := DefaultValues()
	maps.Copy(merged, raw)

	keys := slices.Collect(maps.Keys(merged))
	keys = append(keys, p.RecognizedKeys()...)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	out := make(map[string]any, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chain, ok := p.validators[key]
		if !ok {
			return nil, &UnrecognizedOptionError{Key: key}
		}

		value, present := merged[key]
		if !present {
			value = Undefined
		}
		original := value

		for _, fn := range chain {
			next, err := fn(value, original)
			if err != nil {
				return nil, &InvalidOptionValueError{Key: key, Err: err}
			}
			value = next
		}
		out[key] = value
	}

	logger.Debug("Options normalized.", "keys", len(out))
	return out, nil
}

// Parse normalizes raw and decodes the result into RunnerOptions.
func (p *Parser) Parse(ctx context.Context, raw map[string]any) (*RunnerOptions, error) {
	normalized, err := p.Normalize(ctx, raw)
	if err != nil {
		return nil, err
	}
	return Decode(normalized)
}
