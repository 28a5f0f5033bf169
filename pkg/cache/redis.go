package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"sat-prep/internal/models"
)

// Sessions are transient; anything older than a day is an abandoned
// quiz and may expire.
const sessionTTL = 24 * time.Hour

// RedisSessionStore keeps per-user quiz sessions in Redis as JSON.
// It backs the quiz engine's SessionStore interface.
type RedisSessionStore struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisSessionStore(addr string) *RedisSessionStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisSessionStore{
		client: client,
		ctx:    context.Background(),
	}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("practice:session:%d", userID)
}

// GetSession returns (nil, nil) when the user has no live session.
func (s *RedisSessionStore) GetSession(userID uint) (*models.QuizSession, error) {
	data, err := s.client.Get(s.ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session models.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) SaveSession(userID uint, session *models.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(s.ctx, sessionKey(userID), data, sessionTTL).Err()
}

func (s *RedisSessionStore) DeleteSession(userID uint) error {
	return s.client.Del(s.ctx, sessionKey(userID)).Err()
}

// Ping verifies the Redis connection at startup.
func (s *RedisSessionStore) Ping() error {
	return s.client.Ping(s.ctx).Err()
}
