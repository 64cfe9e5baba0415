// Package storage holds the clients for the three backing stores:
// Redis for sessions, Postgres (via gorm) for metadata, and a local
// directory for blobs. All of them are constructed explicitly and
// injected; none of them is a package-level singleton.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/basit/filestash-backend/apperrors"
)

// SessionStore is a key-value store with per-key expiry. Get on an
// absent or expired key returns apperrors.ErrNotFound; connectivity
// failures surface as apperrors.ErrUnavailable so callers can tell
// "no such session" from "cannot check".
type SessionStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", apperrors.ErrUnavailable, err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: redis get: %v", apperrors.ErrUnavailable, err)
	}
	return val, nil
}

func (s *RedisSessionStore) Del(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: redis del: %v", apperrors.ErrUnavailable, err)
	}
	return nil
}

func (s *RedisSessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
