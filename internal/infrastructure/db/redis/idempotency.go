package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps an Idempotency-Key from a session submission to the
// session id it created, so the offline-first client can retry a POST
// without producing duplicates. Keys expire after idempotencyTTL.
// Key format: idem:session:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the session id previously recorded for key, or "" when the
// key has not been seen.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return val, nil
}

// Store records that key produced sessionID (expires after idempotencyTTL).
func (s *IdempotencyStore) Store(ctx context.Context, key, sessionID string) error {
	return s.client.Set(ctx, s.key(key), sessionID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:session:" + key
}
