package redis

import (
	"context"

	"github.com/cachefront/cachefront/internal/core/ports"
	"github.com/go-redis/redis/v8"
)

// HashStore implements ports.FastLayer on Redis hashes: one hash per cache
// entry, one hash field per record field. No TTL is applied; entries live
// until overwritten or flushed externally.
type HashStore struct {
	r redis.Cmdable
	// optional key prefix to namespace entries
	prefix string
}

// NewHashStore creates a new Redis-backed fast layer.
func NewHashStore(r redis.Cmdable, prefix string) *HashStore {
	return &HashStore{r: r, prefix: prefix}
}

func (s *HashStore) namespaced(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

// GetField implements FastLayer.GetField.
func (s *HashStore) GetField(ctx context.Context, key, field string) (string, bool, error) {
	ns := s.namespaced(key)
	val, err := s.r.HGet(ctx, ns, field).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// GetAllFields implements FastLayer.GetAllFields. An empty hash reads the
// same as a missing key in Redis, so both report absence.
func (s *HashStore) GetAllFields(ctx context.Context, key string) (map[string]string, bool, error) {
	ns := s.namespaced(key)
	fields, err := s.r.HGetAll(ctx, ns).Result()
	if err != nil {
		return nil, false, err
	}
	if len(fields) == 0 {
		return nil, false, nil
	}
	return fields, true, nil
}

// SetField implements FastLayer.SetField.
func (s *HashStore) SetField(ctx context.Context, key, field, value string) error {
	ns := s.namespaced(key)
	return s.r.HSet(ctx, ns, field, value).Err()
}

// Ping implements FastLayer.Ping.
func (s *HashStore) Ping(ctx context.Context) error {
	return s.r.Ping(ctx).Err()
}

var _ ports.FastLayer = (*HashStore)(nil)

