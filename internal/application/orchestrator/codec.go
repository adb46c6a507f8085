package orchestrator

import (
	"encoding/json"
)

// serialize encodes a value to its fast-layer string representation. Plain
// strings pass through unchanged, so serialize(serialize(v)) == serialize(v).
func serialize(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// deserialize decodes a fast-layer string back into a structured value. When
// decoding fails the original string is returned as-is, so plain strings
// survive round-trips unchanged.
func deserialize(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

// deserializeFields applies deserialize field-by-field to a whole fast-layer
// hash, preserving its shape.
func deserializeFields(fields map[string]string) map[string]any {
	out := make(map[string]any, len(fields))
	for field, raw := range fields {
		out[field] = deserialize(raw)
	}
	return out
}
