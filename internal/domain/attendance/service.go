package attendance

import (
	"context"
)

// Service is the attendance accounting engine contract. The caller's
// identity comes from the request context (JWT claims); the engine never
// trusts a client-supplied user ID for self-service operations.
type Service interface {
	CheckIn(ctx context.Context) (RecordResponse, error)
	CheckOut(ctx context.Context) (RecordResponse, error)
	StartBreak(ctx context.Context) (BreakStartResponse, error)
	EndBreak(ctx context.Context) (RecordResponse, error)

	Today(ctx context.Context) (TodayResponse, error)
	GetMyAttendance(ctx context.Context, filter HistoryFilter) ([]RecordResponse, int64, error)

	// Admin operations
	List(ctx context.Context, filter Filter) ([]RecordResponse, int64, error)
	Get(ctx context.Context, id string) (RecordResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (RecordResponse, error)
}
