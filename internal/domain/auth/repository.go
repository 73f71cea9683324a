package auth

import (
	"context"
	"time"
)

// Session is one issued refresh token, keyed by its jti. Logout marks
// the row revoked; the token itself stays valid-looking until expiry,
// so every refresh must consult the store.
type Session struct {
	ID        string
	UserID    string
	TokenID   string
	IPAddress string
	UserAgent string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

func (s *Session) Revoked() bool {
	return s.RevokedAt != nil
}

type SessionRepository interface {
	Create(ctx context.Context, s Session) (Session, error)
	GetByTokenID(ctx context.Context, tokenID string) (Session, error)
	Revoke(ctx context.Context, tokenID string, at time.Time) error

	// DeleteExpired removes sessions whose expiry is before the cutoff
	// and returns how many were dropped.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
