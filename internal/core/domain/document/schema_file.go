package document

import (
	"encoding/json"
	"fmt"
	"os"
)

// SchemaFile is the on-disk declaration of collections and their field types,
// loaded once at startup before any traffic is accepted.
//
//	{
//	  "Dog": {"_id": "string", "name": "string", "isBarking": "boolean"}
//	}
type SchemaFile map[string]map[string]string

// LoadSchemas parses a schema declaration file into per-collection Schemas.
func LoadSchemas(path string) (map[string]Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var decl SchemaFile
	if err := json.Unmarshal(raw, &decl); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	out := make(map[string]Schema, len(decl))
	for collection, fields := range decl {
		schema := make(Schema, len(fields))
		for field, typeName := range fields {
			kind, err := ParseFieldKind(typeName)
			if err != nil {
				return nil, fmt.Errorf("collection %s, field %s: %w", collection, field, err)
			}
			schema[field] = kind
		}
		out[collection] = schema
	}
	return out, nil
}
