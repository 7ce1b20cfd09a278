// Package cache puts redis in front of the public read repositories.
package cache

import (
	"context"
	"expvar"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-backend/pkg/helpers"
)

const contentPrefix = "content:"

// stats is published on /debug/vars as "content_cache".
var stats = expvar.NewMap("content_cache")

// Store holds cached public reads under the "content:" prefix. A Store
// without a redis client passes every read straight through.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewStore(rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *Store {
	return &Store{rdb: rdb, ttl: ttl, logger: logger}
}

func (s *Store) enabled() bool {
	return s != nil && s.rdb != nil && s.ttl > 0
}

// Key joins parts under the content prefix: Key("projects", "slug", "demo").
func Key(parts ...string) string {
	return contentPrefix + strings.Join(parts, ":")
}

func (s *Store) warn(err error, msg, key string) {
	if s.logger != nil {
		s.logger.WithError(err).WithField("key", key).Warn(msg)
	}
}

// remember returns the cached value for key or loads and caches it. Redis
// failures fall back to the loader.
func remember[T any](ctx context.Context, s *Store, key string, load func(context.Context) (T, error)) (T, error) {
	if !s.enabled() {
		return load(ctx)
	}
	var cached T
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, key, &cached)
	if err != nil {
		stats.Add("errors", 1)
		s.warn(err, "cache read failed", key)
	} else if ok {
		stats.Add("hits", 1)
		return cached, nil
	}
	stats.Add("misses", 1)

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if err := helpers.RedisSetJSON(ctx, s.rdb, key, v, s.ttl); err != nil {
		stats.Add("errors", 1)
		s.warn(err, "cache write failed", key)
	}
	return v, nil
}

// Purge deletes every cached read.
func (s *Store) Purge(ctx context.Context) error {
	if !s.enabled() {
		return nil
	}
	n, err := helpers.RedisDelPattern(ctx, s.rdb, contentPrefix+"*", 200)
	stats.Add("purged", n)
	return err
}
