package cabin

import "time"

// Cabin is a bookable physical meeting room.
type Cabin struct {
	ID              string
	Name            string
	Capacity        int
	OpenTime        string // "HH:MM"
	CloseTime       string // "HH:MM"
	MaxBookingHours int
	Color           string
	Description     *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined for listings
	UpcomingBookings []Booking
}

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking reserves a cabin for a time window on one date. No two
// non-cancelled bookings for the same cabin may overlap in time.
type Booking struct {
	ID        string
	UserID    string
	CabinID   string
	Date      time.Time
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
	Purpose   string
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for listings
	CabinName *string
	UserName  *string
}
