package session

import (
	"context"
	"time"
)

// Session is the server-side state associated with one client.
// An empty Token means the session exists but is unauthenticated;
// sessions are issued before any login succeeds.
type Session struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token,omitempty"` // identity token (user id), set on login
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticated reports whether an identity token is bound.
func (s *Session) Authenticated() bool {
	return s.Token != ""
}

// Store defines how sessions are persisted and retrieved.
// Implementations (e.g., Redis) must remain stateless and opaque.
// Get returns (nil, nil) when no session exists for the id.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, s Session) error
	Delete(ctx context.Context, sessionID string) error
}
