package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"github.com/feel-write/feelwrite-backend/internal/database"
	"github.com/feel-write/feelwrite-backend/internal/models"
)

const (
	// SessionDuration is 7 days
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
)

// SessionStore persists session state keyed by opaque token.
// Redis backs the running server; the memory store backs tests and
// Redis-less demo runs.
type SessionStore interface {
	Save(ctx context.Context, token string, sess *models.Session, ttl time.Duration) error
	Load(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

// NewSessionToken generates a secure opaque session token.
func NewSessionToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(tokenBytes), nil
}

// RedisSessionStore stores sessions as JSON values with a TTL matching the
// session expiry. The expires_at inside the payload is still checked on read,
// so lazy-expiry semantics hold even if the TTL lags.
type RedisSessionStore struct{}

func (RedisSessionStore) Save(ctx context.Context, token string, sess *models.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return database.RedisClient.Set(ctx, SessionKeyPrefix+token, data, ttl).Err()
}

func (RedisSessionStore) Load(ctx context.Context, token string) (*models.Session, error) {
	val, err := database.RedisClient.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil {
		return nil, nil // missing key means signed out
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (RedisSessionStore) Delete(ctx context.Context, token string) error {
	return database.RedisClient.Del(ctx, SessionKeyPrefix+token).Err()
}

// MemorySessionStore is the in-process session store.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*models.Session)}
}

func (s *MemorySessionStore) Save(ctx context.Context, token string, sess *models.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.sessions[token] = &cp
	return nil
}

func (s *MemorySessionStore) Load(ctx context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Len reports how many sessions are stored. Test hook.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
