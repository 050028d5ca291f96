package session

import (
	"context"
	"time"
)

// Session associates a browser with an allow-listed identity. A record
// only ever exists for an email that passed the allow-list at callback
// time; the gate re-checks membership on every request regardless.
type Session struct {
	SessionID string    // opaque token delivered via cookie
	Email     string    // identity email attached at OAuth callback
	Provider  string    // identity provider that verified the email
	CreatedAt time.Time // when the session was established
	ExpiresAt time.Time // absolute expiry time
}

// Store defines how sessions are stored and retrieved. Get returns
// (nil, nil) for an unknown or expired session.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, s Session) error
	Delete(ctx context.Context, sessionID string) error
}
