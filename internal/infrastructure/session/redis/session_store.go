package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/usercore/account-service/internal/core/domain"
	"github.com/usercore/account-service/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore keeps session snapshots in Redis.
// Key format: session:<session_id>:<key>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// If ttl <= 0, defaultSessionTTL is used.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Bind returns a Session view scoped to sessionID.
func (s *SessionStore) Bind(sessionID string) ports.Session {
	return &session{store: s, id: sessionID}
}

// Delete drops every key held by the given session.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	pattern := fmt.Sprintf("session:%s:*", sessionID)

	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("session delete: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("session scan: %w", err)
	}
	return nil
}

type session struct {
	store *SessionStore
	id    string
}

func (s *session) key(key string) string {
	return fmt.Sprintf("session:%s:%s", s.id, key)
}

// Set stores the snapshot under key, refreshing the session TTL.
func (s *session) Set(ctx context.Context, key string, user *domain.SanitizedUser) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	if err := s.store.client.Set(ctx, s.key(key), payload, s.store.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

// Get returns the snapshot stored under key. A missing or expired key
// maps to domain.ErrNotAuthenticated.
func (s *session) Get(ctx context.Context, key string) (*domain.SanitizedUser, error) {
	payload, err := s.store.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("session get: %w", err)
	}

	var user domain.SanitizedUser
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	return &user, nil
}

func (s *session) Delete(ctx context.Context, key string) error {
	if err := s.store.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
