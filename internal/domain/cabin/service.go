package cabin

import (
	"context"
)

type CabinService interface {
	Create(ctx context.Context, req CreateCabinRequest) (CabinResponse, error)
	Get(ctx context.Context, id string) (CabinResponse, error)
	Update(ctx context.Context, req UpdateCabinRequest) (CabinResponse, error)
	Deactivate(ctx context.Context, id string) error

	// List returns active cabins with their next few bookings attached.
	List(ctx context.Context) ([]CabinResponse, error)
}

type BookingService interface {
	// Create books a slot for the caller after checking open hours,
	// duration limit and overlaps.
	Create(ctx context.Context, req CreateBookingRequest) (BookingResponse, error)
	ListMine(ctx context.Context) ([]BookingResponse, error)
	Update(ctx context.Context, req UpdateBookingRequest) (BookingResponse, error)

	// Cancel soft-deletes: the row stays with status CANCELLED.
	Cancel(ctx context.Context, id string) error
}
