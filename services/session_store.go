package services

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore issues and resolves opaque authenticated-session tokens.
type SessionStore interface {
	// Create stores a new session and returns its ID.
	Create(ctx context.Context, userID uint, ttl time.Duration) (string, error)
	// Get returns the user ID for a session, or 0 when the session is
	// unknown or expired.
	Get(ctx context.Context, sessionID string) (uint, error)
	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions in Redis with a per-session TTL.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Create(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	sid := uuid.New().String()
	err := s.rdb.Set(ctx, sessionKey(sid), strconv.FormatUint(uint64(userID), 10), ttl).Err()
	return sid, err
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (uint, error) {
	val, err := s.rdb.Get(ctx, sessionKey(sessionID)).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return uint(val), nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(sid string) string {
	return "session:" + sid
}
