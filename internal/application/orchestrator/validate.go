package orchestrator

import (
	"fmt"

	"github.com/cachefront/cachefront/internal/core/domain/document"
)

// runtimeKind classifies a deserialized value into the closed FieldKind set.
// JSON numbers decode as float64; anything structured maps to KindOther.
func runtimeKind(v any) document.FieldKind {
	switch v.(type) {
	case string:
		return document.KindString
	case float64, int, int64:
		return document.KindNumber
	case bool:
		return document.KindBoolean
	default:
		return document.KindOther
	}
}

// validateFieldType checks the deserialized runtime type of value against the
// schema-declared kind for field. The check is shallow: Other-kinded fields
// pass once parsing succeeded, without structural validation.
func validateFieldType(schema document.Schema, field string, value any) error {
	declared, ok := schema.KindOf(field)
	if !ok {
		return fmt.Errorf("%w: field %s is not declared", ErrSchemaViolation, field)
	}

	actual := runtimeKind(deserializeValue(value))
	switch declared {
	case document.KindString:
		if actual != document.KindString {
			return mismatch(field, declared, actual)
		}
	case document.KindNumber:
		if actual != document.KindNumber {
			return mismatch(field, declared, actual)
		}
	case document.KindBoolean:
		if actual != document.KindBoolean {
			return mismatch(field, declared, actual)
		}
	case document.KindOther:
		// Parsing succeeded; no structural validation beyond that.
	}
	return nil
}

// deserializeValue normalizes an incoming write value the same way the fast
// layer round-trip would: strings are decoded, everything else used as-is.
func deserializeValue(value any) any {
	if s, ok := value.(string); ok {
		return deserialize(s)
	}
	return value
}

func mismatch(field string, declared, actual document.FieldKind) error {
	return fmt.Errorf("%w: field %s declared %s, got %s", ErrSchemaViolation, field, declared, actual)
}
