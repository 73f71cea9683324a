package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/auth"
	"github.com/officehub/officehub-backend-go/internal/pkg/database"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) auth.SessionRepository {
	return &sessionRepository{db: db}
}

// Create implements auth.SessionRepository.
func (r *sessionRepository) Create(ctx context.Context, s auth.Session) (auth.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (user_id, token_id, ip_address, user_agent, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		s.UserID,
		s.TokenID,
		s.IPAddress,
		s.UserAgent,
		s.ExpiresAt,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return auth.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return s, nil
}

// GetByTokenID implements auth.SessionRepository.
func (r *sessionRepository) GetByTokenID(ctx context.Context, tokenID string) (auth.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, token_id, ip_address, user_agent, expires_at, revoked_at, created_at
		FROM refresh_tokens
		WHERE token_id = $1
	`

	var s auth.Session
	err := q.QueryRow(ctx, query, tokenID).Scan(
		&s.ID, &s.UserID, &s.TokenID, &s.IPAddress, &s.UserAgent,
		&s.ExpiresAt, &s.RevokedAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, fmt.Errorf("failed to get session by token ID: %w", err)
	}

	return s, nil
}

// Revoke implements auth.SessionRepository. Revoking twice is a no-op.
func (r *sessionRepository) Revoke(ctx context.Context, tokenID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = $2 WHERE token_id = $1 AND revoked_at IS NULL`,
		tokenID, at,
	)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM refresh_tokens WHERE token_id = $1)`, tokenID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check session existence: %w", err)
		}
		if !exists {
			return auth.ErrSessionNotFound
		}
	}
	return nil
}

// DeleteExpired implements auth.SessionRepository.
func (r *sessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
