package leave

import (
	"context"
)

type Service interface {
	// Create files a request for the authenticated caller.
	Create(ctx context.Context, req CreateRequest) (Response, error)
	ListMine(ctx context.Context) ([]Response, error)

	// Admin operations
	List(ctx context.Context, filter Filter) ([]Response, int64, error)
	Get(ctx context.Context, id string) (Response, error)

	// Decide approves or rejects a pending request exactly once and
	// notifies the employee by email.
	Decide(ctx context.Context, req DecideRequest) (Response, error)
}
