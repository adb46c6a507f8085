package ports

import (
	"context"
)

// FastLayer defines the contract of the low-latency, non-durable cache tier.
// It is organized as mappings-of-mappings: an outer key addresses a hash of
// field -> serialized value. Implementations should degrade gracefully
// (returning an error without crashing callers) so orchestration logic can
// fall back to the durable store.
type FastLayer interface {
	// GetField returns the serialized value for (key, field). ok=false if the
	// field has never been populated.
	GetField(ctx context.Context, key, field string) (value string, ok bool, err error)
	// GetAllFields returns every populated field for key. ok=false if the
	// outer key has no entries at all.
	GetAllFields(ctx context.Context, key string) (fields map[string]string, ok bool, err error)
	// SetField stores the serialized value for (key, field), overwriting any
	// prior value. Entries never expire; they live until overwritten or the
	// layer is flushed externally.
	SetField(ctx context.Context, key, field, value string) error
	// Ping reports whether the layer is reachable.
	Ping(ctx context.Context) error
}
