package ports

import (
	"context"

	"github.com/cachefront/cachefront/internal/core/domain/document"
)

// DocumentStore defines the contract of the durable, schema-bearing document
// tier, scoped to a single collection.
type DocumentStore interface {
	// FindByID returns the full record for id. ok=false if no record exists;
	// absence is a normal outcome, not an error.
	FindByID(ctx context.Context, id string) (record document.Record, ok bool, err error)
	// UpsertField writes one field of the record for id, creating the record
	// if it does not exist yet.
	UpsertField(ctx context.Context, id, field string, value any) error
	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}
