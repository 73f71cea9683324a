package event

import (
	"context"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Response, error)
	List(ctx context.Context, filter Filter) ([]Response, error)
	Delete(ctx context.Context, id string) error
}
