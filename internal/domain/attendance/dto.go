package attendance

import (
	"time"

	"github.com/officehub/officehub-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type RecordResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	UserName       *string `json:"user_name,omitempty"`
	UserDepartment *string `json:"user_department,omitempty"`
	Date           string  `json:"date"`
	CheckIn        *string `json:"check_in,omitempty"`
	CheckOut       *string `json:"check_out,omitempty"`
	BreakStartedAt *string `json:"break_started_at,omitempty"`
	BreakMinutes   int     `json:"break_minutes"`
	WorkingMinutes int     `json:"working_minutes"`
	WorkingHours   string  `json:"working_hours"`
	OnBreak        bool    `json:"on_break"`
	Status         string  `json:"status"`
}

// NewRecordResponse derives the wire representation at the instant now.
// WorkingMinutes reflects the persisted value for closed records and the
// live derivation for open ones.
func NewRecordResponse(rec Record, now time.Time) RecordResponse {
	resp := RecordResponse{
		ID:             rec.ID,
		UserID:         rec.UserID,
		UserName:       rec.UserName,
		UserDepartment: rec.UserDepartment,
		Date:           rec.Date.Format("2006-01-02"),
		CheckIn:        timePtrToString(rec.CheckIn),
		CheckOut:       timePtrToString(rec.CheckOut),
		BreakStartedAt: timePtrToString(rec.BreakStartedAt),
		BreakMinutes:   rec.BreakMinutes,
		WorkingMinutes: rec.WorkingMinutes,
		WorkingHours:   rec.FormatWorkingHours(now),
		OnBreak:        rec.OnBreak(),
		Status:         string(rec.Status),
	}
	if rec.CheckOut == nil {
		resp.WorkingMinutes = rec.WorkedMinutes(now)
	}
	return resp
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

type TodayResponse struct {
	Today   *RecordResponse  `json:"today"`
	History []RecordResponse `json:"history"`
}

type BreakStartResponse struct {
	BreakStartedAt string `json:"break_started_at"`
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if _, ok := ParseStatus(r.Status); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PRESENT, ABSENT, ON_LEAVE, HALF_DAY",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Filter struct {
	UserID    *string
	UserName  *string
	Date      *string
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if value != nil && *value != "" {
			if _, ok := validator.IsValidDate(*value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if f.Status != nil && *f.Status != "" {
		if _, ok := ParseStatus(*f.Status); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of PRESENT, ABSENT, ON_LEAVE, HALF_DAY",
			})
		}
	}

	if f.SortBy != "" && !validator.IsInSlice(f.SortBy, []string{"date", "check_in", "check_out", "working_minutes", "status"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "sort_by must be one of date, check_in, check_out, working_minutes, status",
		})
	}

	if f.SortOrder != "" && !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryFilter struct {
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]*string{
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if value != nil && *value != "" {
			if _, ok := validator.IsValidDate(*value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if f.Status != nil && *f.Status != "" {
		if _, ok := ParseStatus(*f.Status); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of PRESENT, ABSENT, ON_LEAVE, HALF_DAY",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
