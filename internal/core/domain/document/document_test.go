package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFieldKind(t *testing.T) {
	cases := map[string]FieldKind{
		"string":  KindString,
		"number":  KindNumber,
		"boolean": KindBoolean,
		"bool":    KindBoolean,
		"object":  KindOther,
		"array":   KindOther,
		"other":   KindOther,
	}
	for name, want := range cases {
		got, err := ParseFieldKind(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseFieldKind("decimal")
	require.Error(t, err)
}

func TestFieldKindString(t *testing.T) {
	require.Equal(t, "string", KindString.String())
	require.Equal(t, "number", KindNumber.String())
	require.Equal(t, "boolean", KindBoolean.String())
	require.Equal(t, "other", KindOther.String())
}

func TestSchemaKindOf(t *testing.T) {
	schema := Schema{"name": KindString, "age": KindNumber}

	kind, ok := schema.KindOf("name")
	require.True(t, ok)
	require.Equal(t, KindString, kind)

	_, ok = schema.KindOf("missing")
	require.False(t, ok)
}

func TestLoadSchemas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.json")
	decl := `{"Dog": {"_id": "string", "name": "string", "isBarking": "boolean"}}`
	require.NoError(t, os.WriteFile(path, []byte(decl), 0o600))

	schemas, err := LoadSchemas(path)
	require.NoError(t, err)
	require.Len(t, schemas, 1)

	dog := schemas["Dog"]
	kind, ok := dog.KindOf("isBarking")
	require.True(t, ok)
	require.Equal(t, KindBoolean, kind)
}

func TestLoadSchemas_RejectsUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.json")
	decl := `{"Dog": {"name": "varchar"}}`
	require.NoError(t, os.WriteFile(path, []byte(decl), 0o600))

	_, err := LoadSchemas(path)
	require.Error(t, err)
}

func TestLoadSchemas_MissingFile(t *testing.T) {
	_, err := LoadSchemas(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
