package config

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/specialistvlad/glyphforge/internal/fsutil"
)

// Validator transforms an option value or rejects it. value is the output of
// the previous validator in the chain, original is the raw input value.
type Validator func(value, original any) (any, error)

// UndefinedValue is the type of Undefined.
type UndefinedValue struct{}

func (UndefinedValue) String() string { return "undefined" }

// Undefined stands for an option that is absent from both the defaults and
// the raw input. An explicit nil is a null value, which is different.
var Undefined = UndefinedValue{}

// Optional applies fn unless the value is Undefined.
func Optional(fn Validator) Validator {
	return func(value, original any) (any, error) {
		if value == Undefined {
			return value, nil
		}
		return fn(value, original)
	}
}

// Nullable applies fn unless the value is null.
func Nullable(fn Validator) Validator {
	return func(value, original any) (any, error) {
		if value == nil {
			return value, nil
		}
		return fn(value, original)
	}
}

// ParseString accepts strings only.
func ParseString(value, _ any) (any, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%s is not a string", describe(value))
}

// ParseBoolean accepts booleans, the strings "true", "false", "1", "0" and
// the numbers 0 and 1.
func ParseBoolean(value, _ any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch v {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
	default:
		if f, ok := toFloat(value); ok && (f == 0 || f == 1) {
			return f == 1, nil
		}
	}
	return nil, fmt.Errorf("%s is not a valid boolean", describe(value))
}

// ParseNumeric accepts any numeric value or numeric string and returns a
// float64.
func ParseNumeric(value, _ any) (any, error) {
	if s, ok := value.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && !math.IsNaN(f) {
			return f, nil
		}
	} else if f, ok := toFloat(value); ok && !math.IsNaN(f) {
		return f, nil
	}
	return nil, fmt.Errorf("%s is not numeric", describe(value))
}

// ParseDir returns a validator accepting paths that name an existing
// directory according to checker.
func ParseDir(checker fsutil.DirChecker) Validator {
	return func(value, _ any) (any, error) {
		dir, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%s is not a string", describe(value))
		}
		isDir, err := checker.IsDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", dir, err)
		}
		if !isDir {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
		return dir, nil
	}
}

// ListMembersParser returns a validator accepting sequences whose elements
// all belong to allowed. The result is a []string.
func ListMembersParser[T ~string](allowed []T) Validator {
	return func(value, _ any) (any, error) {
		var items []any
		switch v := value.(type) {
		case []string:
			for _, s := range v {
				items = append(items, s)
			}
		case []any:
			items = v
		default:
			return nil, fmt.Errorf("%s is not a list", describe(value))
		}

		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok || !slices.Contains(allowed, T(s)) {
				names := make([]string, len(allowed))
				for i, a := range allowed {
					names[i] = string(a)
				}
				return nil, fmt.Errorf("%s doesn't exist in [%s]", describe(item), strings.Join(names, ", "))
			}
			out = append(out, s)
		}
		return out, nil
	}
}

// toFloat converts any Go numeric kind to float64.
func toFloat(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func describe(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
