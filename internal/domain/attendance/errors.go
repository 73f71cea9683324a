package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// Break errors
	ErrAlreadyOnBreak = errors.New("a break is already running")
	ErrNotOnBreak     = errors.New("no break is currently running")

	// General errors
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrConcurrentUpdate = errors.New("attendance record was modified by a concurrent request")
	ErrInvalidStatus    = errors.New("invalid attendance status")
)
