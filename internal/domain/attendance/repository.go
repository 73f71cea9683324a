package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. The store
// enforces at most one record per (user, date) with a unique constraint;
// Create surfaces a violation as ErrAlreadyCheckedIn so a concurrent
// double check-in loses cleanly. The state-transition methods use
// conditional updates and report ErrConcurrentUpdate when the guarded
// row was changed underneath them.
type Repository interface {
	Create(ctx context.Context, rec Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetByUserAndDate returns nil when no record exists for that day.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Record, error)

	// StartBreak sets break_started_at on an open record without a running break.
	StartBreak(ctx context.Context, id string, at time.Time) error

	// EndBreak stores the new break total and clears break_started_at.
	EndBreak(ctx context.Context, id string, breakMinutes int) error

	// Close sets check_out and working_minutes together on an open record.
	Close(ctx context.Context, id string, checkOut time.Time, breakMinutes int, workingMinutes int) error

	// UpdateStatus is the admin correction path (e.g. HALF_DAY).
	UpdateStatus(ctx context.Context, id string, status Status) error

	ListByUser(ctx context.Context, userID string, filter HistoryFilter) ([]Record, int64, error)
	List(ctx context.Context, filter Filter) ([]Record, int64, error)

	// ListUserIDsWithoutRecord returns active employees having no record on date.
	ListUserIDsWithoutRecord(ctx context.Context, date time.Time) ([]string, error)

	// ListOpenBefore returns records still open whose date is before cutoff.
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]Record, error)
}
