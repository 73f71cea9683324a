package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusOnLeave Status = "ON_LEAVE"
	StatusHalfDay Status = "HALF_DAY"
)

// ParseStatus maps an untrusted status string onto the closed enum.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPresent, StatusAbsent, StatusOnLeave, StatusHalfDay:
		return Status(s), true
	}
	return "", false
}

// Record is the single attendance entry for one user on one calendar day.
// Date is normalized to midnight and unique together with UserID.
type Record struct {
	ID             string
	UserID         string
	Date           time.Time
	CheckIn        *time.Time
	CheckOut       *time.Time
	BreakStartedAt *time.Time
	BreakMinutes   int
	WorkingMinutes int
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined for admin views
	UserName       *string
	UserDepartment *string
}

// Open reports whether the day's record accepts further mutations.
func (r *Record) Open() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}

// OnBreak reports whether a break is currently running.
func (r *Record) OnBreak() bool {
	return r.Open() && r.BreakStartedAt != nil
}
