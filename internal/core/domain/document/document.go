package document

import (
	"fmt"
)

// FieldKind is the closed set of declared field types a collection schema may use.
type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
	KindBoolean
	KindOther
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// ParseFieldKind maps a declared type name to its FieldKind.
func ParseFieldKind(s string) (FieldKind, error) {
	switch s {
	case "string":
		return KindString, nil
	case "number":
		return KindNumber, nil
	case "boolean", "bool":
		return KindBoolean, nil
	case "other", "object", "array":
		return KindOther, nil
	default:
		return KindOther, fmt.Errorf("unknown field kind %q", s)
	}
}

// Record is a stored document: named fields addressed by a primary identifier.
type Record map[string]any

// Schema declares the permitted fields of a collection and their kinds.
type Schema map[string]FieldKind

// KindOf returns the declared kind for field. ok=false if the field is undeclared.
func (s Schema) KindOf(field string) (FieldKind, bool) {
	k, ok := s[field]
	return k, ok
}

// Fields returns the declared field names.
func (s Schema) Fields() []string {
	out := make([]string, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	return out
}
