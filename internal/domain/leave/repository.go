package leave

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	ListAll(ctx context.Context, filter Filter) ([]LeaveRequest, int64, error)

	// Decide flips status out of PENDING exactly once; a row already
	// decided is left untouched and reported as ErrAlreadyProcessed.
	Decide(ctx context.Context, id string, status Status, decidedBy string, decidedAt time.Time) error

	// HasOverlapping reports whether a non-rejected request of the same
	// user intersects [startDate, endDate].
	HasOverlapping(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error)

	// FindApprovedCovering returns the approved request of userID whose
	// range includes day, or nil.
	FindApprovedCovering(ctx context.Context, userID string, day time.Time) (*LeaveRequest, error)
}
