package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/pkg/helpers"
)

func sessionKey(userID string) string {
	return "admin:session:" + userID
}

// SessionStore keeps admin sessions as redis hashes.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Save(ctx context.Context, sess entity.AdminSession, ttl time.Duration) error {
	key := sessionKey(sess.UserID)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		"user_id":      sess.UserID,
		"sid":          sess.SessionID,
		"email":        sess.Email,
		"display_name": sess.DisplayName,
		"created_at":   sess.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, userID string) (*entity.AdminSession, error) {
	data, err := s.rdb.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	sess := &entity.AdminSession{
		UserID:      data["user_id"],
		SessionID:   data["sid"],
		Email:       data["email"],
		DisplayName: data["display_name"],
	}
	if t, ok := helpers.ParseTime(data["created_at"]); ok {
		sess.CreatedAt = t
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return helpers.RedisDel(ctx, s.rdb, sessionKey(userID))
}
