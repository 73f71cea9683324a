package cabin

import "errors"

// Cabin domain errors
var (
	ErrCabinNotFound     = errors.New("cabin not found")
	ErrCabinNameExists   = errors.New("a cabin with this name already exists")
	ErrCabinInactive     = errors.New("cabin is not available for booking")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingConflict   = errors.New("cabin is already booked for this time window")
	ErrNotBookingOwner   = errors.New("booking belongs to another user")
	ErrBookingCancelled  = errors.New("booking has been cancelled")
	ErrOutsideOpenHours  = errors.New("booking is outside the cabin's open hours")
	ErrBookingTooLong    = errors.New("booking exceeds the cabin's maximum duration")
	ErrInvalidTimeWindow = errors.New("end time must be after start time")
)
