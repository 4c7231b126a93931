package loader

import (
	"fmt"

	"github.com/vk/matprop/internal/property"
)

// Field extraction helpers shared by the built-in constructors. Every
// failure here is a construction error for the enclosing node.

func asMapping(raw any) (map[string]any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("content must be a mapping, got %T", raw)
	}
	return m, nil
}

func reqString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("missing required field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string, got %T", key, v)
	}
	return s, nil
}

func optString(m map[string]any, key, fallback string) (string, error) {
	v, ok := m[key]
	if !ok {
		return fallback, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string, got %T", key, v)
	}
	return s, nil
}

func reqSlice(m map[string]any, key string) ([]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("missing required field %q", key)
	}
	s, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q must be a sequence, got %T", key, v)
	}
	return s, nil
}

func reqStrings(m map[string]any, key string) ([]string, error) {
	s, err := reqSlice(m, key)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(s))
	for i, v := range s {
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("field %q[%d] must be a string, got %T", key, i, v)
		}
		out[i] = str
	}
	return out, nil
}

func reqFloats(m map[string]any, key string) ([]float64, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("missing required field %q", key)
	}
	out, err := toFloats(v)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return out, nil
}

// reqValue accepts a scalar or a flat numeric sequence.
func reqValue(m map[string]any, key string) (property.Value, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("missing required field %q", key)
	}
	if f, err := toFloat(v); err == nil {
		return property.Scalar(f), nil
	}
	out, err := toFloats(v)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return out, nil
}

func reqBounds(m map[string]any, key string) ([][2]float64, error) {
	s, err := reqSlice(m, key)
	if err != nil {
		return nil, err
	}
	out := make([][2]float64, len(s))
	for i, v := range s {
		pair, err := toFloats(v)
		if err != nil || len(pair) != 2 {
			return nil, fmt.Errorf("field %q[%d] must be a [min, max] pair", key, i)
		}
		out[i] = [2]float64{pair[0], pair[1]}
	}
	return out, nil
}

// optScope decodes an optional alias mapping of scalars or flat arrays.
func optScope(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, nil
	}
	am, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field %q must be a mapping, got %T", key, v)
	}
	out := make(map[string]any, len(am))
	for name, av := range am {
		if f, err := toFloat(av); err == nil {
			out[name] = f
			continue
		}
		fs, err := toFloats(av)
		if err != nil {
			return nil, fmt.Errorf("alias %q: %w", name, err)
		}
		out[name] = fs
	}
	return out, nil
}

// normalizeArray converts a resolved sequence into []float64 when flat,
// keeping nested sequences as validated []any.
func normalizeArray(s []any) (any, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("empty array")
	}
	if _, err := toFloat(s[0]); err == nil {
		return toFloats(s)
	}
	out := make([]any, len(s))
	for i, v := range s {
		switch inner := v.(type) {
		case []any:
			norm, err := normalizeArray(inner)
			if err != nil {
				return nil, err
			}
			out[i] = norm
		case []float64:
			out[i] = inner
		default:
			return nil, fmt.Errorf("ragged array at index %d", i)
		}
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

func toFloats(v any) ([]float64, error) {
	switch s := v.(type) {
	case []float64:
		return s, nil
	case property.Value:
		return s, nil
	case []any:
		out := make([]float64, len(s))
		for i, e := range s {
			f, err := toFloat(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("not a numeric sequence: %T", v)
	}
}
