package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func RedisSetJSON(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// RedisGetJSON decodes key into dest. A missing key reports (false, nil).
func RedisGetJSON[T any](ctx context.Context, rdb *redis.Client, key string, dest *T) (bool, error) {
	res, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}

func RedisDel(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}

// RedisDelPattern deletes every key matching pattern, SCANning batch keys at
// a time so large keyspaces never block the server. It returns the number
// of keys removed.
func RedisDelPattern(ctx context.Context, rdb *redis.Client, pattern string, batch int) (int64, error) {
	if batch <= 0 {
		batch = 100
	}
	var removed int64
	flush := func(keys []string) error {
		n, err := rdb.Del(ctx, keys...).Result()
		removed += n
		return err
	}
	iter := rdb.Scan(ctx, 0, pattern, int64(batch)).Iterator()
	keys := make([]string, 0, batch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == batch {
			if err := flush(keys); err != nil {
				return removed, err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	if len(keys) > 0 {
		if err := flush(keys); err != nil {
			return removed, err
		}
	}
	return removed, nil
}
