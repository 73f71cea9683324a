package leave

import "time"

type Type string

const (
	TypeSick   Type = "SICK"
	TypeCasual Type = "CASUAL"
	TypeAnnual Type = "ANNUAL"
)

func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeSick, TypeCasual, TypeAnnual:
		return Type(s), true
	}
	return "", false
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// LeaveRequest is transitioned out of PENDING exactly once by an admin.
type LeaveRequest struct {
	ID        string
	UserID    string
	Type      Type
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Status    Status
	DecidedBy *string
	DecidedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for admin views
	UserName       *string
	UserDepartment *string
	UserEmail      *string
}

// Covers reports whether the request's date range includes day.
func (l *LeaveRequest) Covers(day time.Time) bool {
	return !day.Before(l.StartDate) && !day.After(l.EndDate)
}
