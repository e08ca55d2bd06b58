package ports

import (
	"context"

	"github.com/usercore/account-service/internal/core/domain"
)

// Session is a key/value view scoped to one session identifier. Its
// lifetime and the identity it is bound to are owned by the session
// store, not by the services that write into it.
type Session interface {
	// Set stores a sanitized user snapshot under key.
	Set(ctx context.Context, key string, user *domain.SanitizedUser) error
	// Get returns the snapshot stored under key, or
	// domain.ErrNotAuthenticated when nothing is stored.
	Get(ctx context.Context, key string) (*domain.SanitizedUser, error)
	// Delete removes the snapshot stored under key.
	Delete(ctx context.Context, key string) error
}

// SessionStore hands out Session views bound to a session identifier.
type SessionStore interface {
	Bind(sessionID string) Session
	// Delete drops every key held by the given session.
	Delete(ctx context.Context, sessionID string) error
}
