package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerialize_PlainStringPassesThrough(t *testing.T) {
	s, err := serialize("Rex")
	require.NoError(t, err)
	require.Equal(t, "Rex", s)

	// Idempotent: serializing an already-serialized form changes nothing.
	again, err := serialize(s)
	require.NoError(t, err)
	require.Equal(t, s, again)
}

func TestSerialize_StructuredValues(t *testing.T) {
	s, err := serialize(true)
	require.NoError(t, err)
	require.Equal(t, "true", s)

	s, err = serialize(3.5)
	require.NoError(t, err)
	require.Equal(t, "3.5", s)

	s, err = serialize(map[string]any{"a": 1})
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, s)
}

func TestDeserialize_FallsBackToOriginalString(t *testing.T) {
	require.Equal(t, "Rex", deserialize("Rex"))
	require.Equal(t, true, deserialize("true"))
	require.Equal(t, float64(42), deserialize("42"))
	require.Equal(t, map[string]any{"a": float64(1)}, deserialize(`{"a":1}`))
}

func TestDeserialize_RoundTripsPlainStrings(t *testing.T) {
	s, err := serialize("hello world")
	require.NoError(t, err)
	require.Equal(t, "hello world", deserialize(s))
}

func TestDeserializeFields_AppliesFieldByField(t *testing.T) {
	got := deserializeFields(map[string]string{
		"name":      "Rex",
		"isBarking": "true",
		"age":       "7",
	})
	require.Equal(t, map[string]any{
		"name":      "Rex",
		"isBarking": true,
		"age":       float64(7),
	}, got)
}
