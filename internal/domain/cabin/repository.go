package cabin

import (
	"context"
	"time"
)

type CabinRepository interface {
	Create(ctx context.Context, c Cabin) (Cabin, error)
	GetByID(ctx context.Context, id string) (Cabin, error)
	Update(ctx context.Context, req UpdateCabinRequest) error
	Deactivate(ctx context.Context, id string) error

	// List returns cabins ordered by name with up to bookingsPerCabin
	// upcoming non-cancelled bookings attached.
	List(ctx context.Context, bookingsPerCabin int) ([]Cabin, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b Booking) (Booking, error)
	GetByID(ctx context.Context, id string) (Booking, error)
	Update(ctx context.Context, req UpdateBookingRequest) error
	UpdateStatus(ctx context.Context, id string, status BookingStatus) error
	ListByUser(ctx context.Context, userID string) ([]Booking, error)

	// HasOverlapping reports whether a non-cancelled booking for cabinID
	// on date intersects (startTime, endTime). excludeID skips the
	// booking being edited; pass nil on create.
	HasOverlapping(ctx context.Context, cabinID string, date time.Time, startTime, endTime string, excludeID *string) (bool, error)
}
