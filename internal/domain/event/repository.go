package event

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, e Event) (Event, error)
	GetByID(ctx context.Context, id string) (Event, error)
	List(ctx context.Context, filter Filter) ([]Event, error)
	Delete(ctx context.Context, id string) error
}
