package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"voltcare/models"
	"voltcare/utils"

	"github.com/go-redis/redis/v8"
)

// SessionStore persists wizard sessions between requests.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	Save(ctx context.Context, s *models.WizardSession) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps wizard sessions as JSON blobs in Redis with TTL.
type RedisSessionStore struct {
	Cache *redis.Client
}

func NewRedisSessionStore(cache *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Cache: cache}
}

func sessionKey(sessionID string) string {
	return utils.WizardKeyPrefix + sessionID
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, err := s.Cache.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("wizard session not found or expired")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}
	var sess models.WizardSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse wizard session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *models.WizardSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	if err := s.Cache.Set(ctx, sessionKey(sess.SessionID), data, utils.SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.Cache.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	return nil
}

// MemorySessionStore is an in-process SessionStore used in tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.WizardSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.WizardSession)}
}

func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("wizard session not found or expired")
	}
	return &sess, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, sess *models.WizardSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.SessionID] = *sess
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
