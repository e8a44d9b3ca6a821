package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/specialistvlad/glyphforge/internal/codepoints"
)

// Decode converts a normalized option map into RunnerOptions. Every option is
// decoded on its own, so a shape error is reported as an
// InvalidOptionValueError for that key. Undefined and null options leave the
// field at its zero value.
func Decode(normalized map[string]any) (*RunnerOptions, error) {
	opts := &RunnerOptions{}
	fields := []struct {
		key    string
		target any
		hook   mapstructure.DecodeHookFunc
	}{
		{KeyInputDir, &opts.InputDir, nil},
		{KeyOutputDir, &opts.OutputDir, nil},
		{KeyName, &opts.Name, nil},
		{KeyFontTypes, &opts.FontTypes, nil},
		{KeyAssetTypes, &opts.AssetTypes, nil},
		{KeyFormatOptions, &opts.FormatOptions, nil},
		{KeyPathOptions, &opts.PathOptions, nil},
		{KeyCodepoints, &opts.Codepoints, codepointHook},
		{KeyFontHeight, &opts.FontHeight, nil},
		{KeyDescent, &opts.Descent, nil},
		{KeyNormalize, &opts.Normalize, nil},
		{KeyRound, &opts.Round, nil},
		{KeySelector, &opts.Selector, nil},
		{KeyTag, &opts.Tag, nil},
		{KeyPrefix, &opts.Prefix, nil},
		{KeyFontsURL, &opts.FontsURL, nil},
	}

	for _, f := range fields {
		if err := decodeOption(normalized[f.key], f.target, f.hook); err != nil {
			return nil, &InvalidOptionValueError{Key: f.key, Err: err}
		}
	}
	return opts, nil
}

func decodeOption(value, target any, hook mapstructure.DecodeHookFunc) error {
	if _, undefined := value.(UndefinedValue); undefined || value == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: hook,
		Result:     target,
	})
	if err != nil {
		return err
	}
	return dec.Decode(value)
}

// codepointHook turns every numeric value decoded into an int into a
// checked codepoint. Plain int conversion would truncate fractions.
func codepointHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	f, ok := toFloat(data)
	if !ok {
		return nil, fmt.Errorf("%s is not numeric", describe(data))
	}
	if f < 0 || f > codepoints.Max || f != math.Trunc(f) || !codepoints.Valid(int(f)) {
		return nil, fmt.Errorf("%v is not a valid codepoint", data)
	}
	return int(f), nil
}

// IsUserError reports whether err stems from invalid configuration rather
// than from the environment.
func IsUserError(err error) bool {
	var unrecognized *UnrecognizedOptionError
	var invalid *InvalidOptionValueError
	return errors.As(err, &unrecognized) || errors.As(err, &invalid)
}
