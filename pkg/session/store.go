package session

import (
	"context"
	"time"
)

// Store persists sessions keyed by token.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a live session by token.
	Get(ctx context.Context, token string) (*Session, error)

	// Update replaces an existing session.
	Update(ctx context.Context, s *Session) error

	// Delete removes a session; deleting a missing token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all expired sessions.
	DeleteExpired(ctx context.Context) error
}

// ttlUntil returns the remaining lifetime, at least one second.
func ttlUntil(t time.Time) time.Duration {
	if d := time.Until(t); d > time.Second {
		return d
	}
	return time.Second
}
