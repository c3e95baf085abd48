// Package revocation records users whose outstanding tokens must no longer
// be accepted, typically because the account was deleted.
package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "credvault:revoked:"

// Store is implemented by RedisStore and NopStore.
type Store interface {
	Revoke(ctx context.Context, userID string) error
	IsRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// RedisStore keeps one tombstone per user holding the revocation time in
// unix seconds. Tokens issued at or before that second are rejected; later
// ones are not. A tombstone lives as long as the token validity window,
// after which every token it covers has expired anyway.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(userID string) string { return keyPrefix + userID }

func (s *RedisStore) Revoke(ctx context.Context, userID string) error {
	if err := s.client.Set(ctx, key(userID), time.Now().Unix(), s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: revoke: %w", common.ErrDatabase, err)
	}
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	revokedAt, err := s.client.Get(ctx, key(userID)).Int64()
	switch {
	case err == nil:
		return !issuedAt.After(time.Unix(revokedAt, 0)), nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("%w: revocation lookup: %w", common.ErrDatabase, err)
	}
}

// Ping checks the connection; used at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// NopStore never revokes: tokens stay valid until they expire.
type NopStore struct{}

func (NopStore) Revoke(context.Context, string) error { return nil }

func (NopStore) IsRevoked(context.Context, string, time.Time) (bool, error) { return false, nil }
