package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/officehub/officehub-backend-go/internal/domain/auth"
)

// SessionJobs prunes refresh token sessions past their expiry.
type SessionJobs struct {
	sessionRepo auth.SessionRepository
}

func NewSessionJobs(sessionRepo auth.SessionRepository) *SessionJobs {
	return &SessionJobs{sessionRepo: sessionRepo}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("cleanup_expired_sessions", 6*time.Hour, j.CleanupExpiredSessions)
}

func (j *SessionJobs) CleanupExpiredSessions(ctx context.Context) error {
	deleted, err := j.sessionRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Cron: Pruned expired sessions", "count", deleted)
	}
	return nil
}
