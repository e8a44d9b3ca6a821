package configfile

import (
	"bytes"
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func decodeYAML(_ string, src []byte) (map[string]any, error) {
	var out map[string]any
	if err := yaml.Unmarshal(src, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeTOML(_ string, src []byte) (map[string]any, error) {
	var out map[string]any
	if err := toml.Unmarshal(src, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeJSON(_ string, src []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return normalizeJSONNumbers(out).(map[string]any), nil
}

// normalizeJSONNumbers turns json.Number into int64 or float64 so that the
// validators see the same kinds as with the other formats.
func normalizeJSONNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeJSONNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeJSONNumbers(e)
		}
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	default:
		return v
	}
}
