package ports

import (
	"context"

	"github.com/cachefront/cachefront/internal/core/domain/document"
)

// Collection binds a registered collection name to its schema and the durable
// store accessor that persists its records.
type Collection struct {
	Name   string
	Schema document.Schema
	Store  DocumentStore
}

// CacheService is the orchestrator surface consumed by callers. Absence of a
// record or field is reported through the ok result, never as an error.
type CacheService interface {
	// RegisterCollection makes a collection resolvable by all other
	// operations. Registering a duplicate name overwrites the prior entry.
	RegisterCollection(col Collection)
	// Collections lists the registered collection names.
	Collections() []string
	// Get returns the value of one field of the record identified by id.
	Get(ctx context.Context, collection, id, field string) (value any, ok bool, err error)
	// GetAll returns the whole record identified by id.
	GetAll(ctx context.Context, collection, id string) (record document.Record, ok bool, err error)
	// Set writes one field of the record identified by id, creating the
	// record if missing.
	Set(ctx context.Context, collection, id, field string, value any) error
	// WaitReady blocks until both backing layers are reachable or ctx expires.
	WaitReady(ctx context.Context) error
}
