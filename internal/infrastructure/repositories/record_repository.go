package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cachefront/cachefront/internal/core/domain/document"
	"github.com/cachefront/cachefront/internal/core/ports"
	"github.com/cachefront/cachefront/internal/infrastructure/db"
	"github.com/sirupsen/logrus"
)

// RecordRepository implements the document store contract for one collection,
// persisting records as JSONB rows keyed by (collection, id).
type RecordRepository struct {
	db         *db.Database
	collection string
	logger     *logrus.Logger
}

// NewRecordRepository creates a durable store accessor scoped to collection.
func NewRecordRepository(database *db.Database, collection string, logger *logrus.Logger) ports.DocumentStore {
	return &RecordRepository{
		db:         database,
		collection: collection,
		logger:     logger,
	}
}

// FindByID retrieves the full record for id. Absence is a normal outcome.
func (r *RecordRepository) FindByID(ctx context.Context, id string) (document.Record, bool, error) {
	var raw []byte
	query := `
		SELECT fields
		FROM records
		WHERE collection = $1 AND id = $2`

	err := r.db.DB.GetContext(ctx, &raw, query, r.collection, id)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"collection": r.collection, "id": id}).Debug("db: record not found")
			}
			return nil, false, nil
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"collection": r.collection, "id": id}).WithError(err).Error("db: failed to find record")
		}
		return nil, false, fmt.Errorf("failed to find record %s/%s: %w", r.collection, id, err)
	}

	var record document.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, false, fmt.Errorf("failed to decode record %s/%s: %w", r.collection, id, err)
	}
	return record, true, nil
}

// UpsertField writes one field of the record for id, creating the record row
// when it does not exist yet.
func (r *RecordRepository) UpsertField(ctx context.Context, id, field string, value any) error {
	encoded, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		return fmt.Errorf("failed to encode field %s: %w", field, err)
	}

	query := `
		INSERT INTO records (collection, id, fields)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id)
		DO UPDATE SET fields = records.fields || EXCLUDED.fields, updated_at = NOW()`

	_, err = r.db.DB.ExecContext(ctx, query, r.collection, id, encoded)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"collection": r.collection, "id": id, "field": field}).WithError(err).Error("db: failed to upsert field")
		}
		return fmt.Errorf("failed to upsert %s/%s.%s: %w", r.collection, id, field, err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"collection": r.collection, "id": id, "field": field}).Debug("db: field upserted")
	}
	return nil
}

// Ping reports database reachability.
func (r *RecordRepository) Ping(ctx context.Context) error {
	return r.db.DB.PingContext(ctx)
}

var _ ports.DocumentStore = (*RecordRepository)(nil)
