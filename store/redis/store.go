// Package redis implements store.JobStore on Redis, letting several
// processes share one job namespace. Each record is a Hash; queued jobs
// also sit in a Sorted Set scored by submission time, which gives
// oldest-first claims and a cheap queue-depth count.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	s := redisstore.New(client)
//	if err := s.Ping(ctx); err != nil { ... }
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/hiq-lab/qhal/store"
)

var _ store.JobStore = (*Store)(nil)

// Key naming: everything is prefixed "qhal:" to avoid collisions.
const (
	keyPrefix = "qhal:"
	queueKey  = keyPrefix + "queue"
)

func jobKey(id string) string { return keyPrefix + "job:" + id }

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store implements store.JobStore backed by Redis.
type Store struct {
	client redis.Cmdable
	logger *slog.Logger
}

// New creates a Redis-backed store. The caller owns the Redis client
// lifecycle.
func New(client redis.Cmdable, opts ...Option) *Store {
	s := &Store{client: client, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Client returns the underlying Redis client.
func (s *Store) Client() redis.Cmdable { return s.client }

// Ping verifies the Redis connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close is a no-op — the caller owns the Redis client lifecycle.
func (s *Store) Close() error { return nil }
