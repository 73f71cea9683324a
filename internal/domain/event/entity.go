package event

import "time"

type Type string

const (
	TypeHoliday     Type = "HOLIDAY"
	TypeMeeting     Type = "MEETING"
	TypeTraining    Type = "TRAINING"
	TypeCelebration Type = "CELEBRATION"
	TypeOther       Type = "OTHER"
)

func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeHoliday, TypeMeeting, TypeTraining, TypeCelebration, TypeOther:
		return Type(s), true
	}
	return "", false
}

// Event is an admin-created calendar entry visible to everyone.
type Event struct {
	ID          string
	Title       string
	Date        time.Time
	Type        Type
	Color       string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
