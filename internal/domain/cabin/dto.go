package cabin

import (
	"time"

	"github.com/officehub/officehub-backend-go/internal/pkg/validator"
)

const DefaultColor = "#10b981"

type CreateCabinRequest struct {
	Name            string  `json:"name"`
	Capacity        int     `json:"capacity"`
	OpenTime        string  `json:"open_time"`
	CloseTime       string  `json:"close_time"`
	MaxBookingHours int     `json:"max_booking_hours"`
	Color           string  `json:"color"`
	Description     *string `json:"description"`
}

func (r *CreateCabinRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.Capacity <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "capacity",
			Message: "capacity must be a positive number",
		})
	}

	openAt, openOK := validator.IsValidTimeOfDay(r.OpenTime)
	if !openOK {
		errs = append(errs, validator.ValidationError{
			Field:   "open_time",
			Message: "open_time must be in HH:MM format",
		})
	}
	closeAt, closeOK := validator.IsValidTimeOfDay(r.CloseTime)
	if !closeOK {
		errs = append(errs, validator.ValidationError{
			Field:   "close_time",
			Message: "close_time must be in HH:MM format",
		})
	}
	if openOK && closeOK && !closeAt.After(openAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "close_time",
			Message: "close_time must be after open_time",
		})
	}

	if r.MaxBookingHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_booking_hours",
			Message: "max_booking_hours must be a positive number",
		})
	}

	if r.Color != "" && !validator.IsValidHexColor(r.Color) {
		errs = append(errs, validator.ValidationError{
			Field:   "color",
			Message: "color must be a hex color like #10b981",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateCabinRequest struct {
	ID              string  `json:"-"`
	Name            *string `json:"name"`
	Capacity        *int    `json:"capacity"`
	OpenTime        *string `json:"open_time"`
	CloseTime       *string `json:"close_time"`
	MaxBookingHours *int    `json:"max_booking_hours"`
	Color           *string `json:"color"`
	Description     *string `json:"description"`
	IsActive        *bool   `json:"is_active"`
}

func (r *UpdateCabinRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Capacity != nil && *r.Capacity <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "capacity",
			Message: "capacity must be a positive number",
		})
	}
	if r.OpenTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.OpenTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "open_time",
				Message: "open_time must be in HH:MM format",
			})
		}
	}
	if r.CloseTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.CloseTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "close_time",
				Message: "close_time must be in HH:MM format",
			})
		}
	}
	if r.MaxBookingHours != nil && *r.MaxBookingHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_booking_hours",
			Message: "max_booking_hours must be a positive number",
		})
	}
	if r.Color != nil && !validator.IsValidHexColor(*r.Color) {
		errs = append(errs, validator.ValidationError{
			Field:   "color",
			Message: "color must be a hex color like #10b981",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateBookingRequest struct {
	CabinID   string `json:"cabin_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Purpose   string `json:"purpose"`
}

func (r *CreateBookingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CabinID) {
		errs = append(errs, validator.ValidationError{
			Field:   "cabin_id",
			Message: "cabin_id is required",
		})
	}
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	startAt, startOK := validator.IsValidTimeOfDay(r.StartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	endAt, endOK := validator.IsValidTimeOfDay(r.EndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}
	if startOK && endOK && !endAt.After(startAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		})
	}

	if validator.IsEmpty(r.Purpose) {
		errs = append(errs, validator.ValidationError{
			Field:   "purpose",
			Message: "purpose is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateBookingRequest struct {
	ID        string  `json:"-"`
	CabinID   *string `json:"cabin_id"`
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Purpose   *string `json:"purpose"`
	Status    *string `json:"status"`
}

func (r *UpdateBookingRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.StartTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
	}
	if r.EndTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM format",
			})
		}
	}
	if r.Purpose != nil && validator.IsEmpty(*r.Purpose) {
		errs = append(errs, validator.ValidationError{
			Field:   "purpose",
			Message: "purpose must not be empty",
		})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{
		string(BookingStatusPending), string(BookingStatusConfirmed), string(BookingStatusCancelled),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PENDING, CONFIRMED, CANCELLED",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CabinResponse struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Capacity         int               `json:"capacity"`
	OpenTime         string            `json:"open_time"`
	CloseTime        string            `json:"close_time"`
	MaxBookingHours  int               `json:"max_booking_hours"`
	Color            string            `json:"color"`
	Description      *string           `json:"description,omitempty"`
	IsActive         bool              `json:"is_active"`
	UpcomingBookings []BookingResponse `json:"upcoming_bookings,omitempty"`
}

func NewCabinResponse(c Cabin) CabinResponse {
	resp := CabinResponse{
		ID:              c.ID,
		Name:            c.Name,
		Capacity:        c.Capacity,
		OpenTime:        c.OpenTime,
		CloseTime:       c.CloseTime,
		MaxBookingHours: c.MaxBookingHours,
		Color:           c.Color,
		Description:     c.Description,
		IsActive:        c.IsActive,
	}
	for _, b := range c.UpcomingBookings {
		resp.UpcomingBookings = append(resp.UpcomingBookings, NewBookingResponse(b))
	}
	return resp
}

type BookingResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	UserName  *string `json:"user_name,omitempty"`
	CabinID   string  `json:"cabin_id"`
	CabinName *string `json:"cabin_name,omitempty"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Purpose   string  `json:"purpose"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

func NewBookingResponse(b Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		UserName:  b.UserName,
		CabinID:   b.CabinID,
		CabinName: b.CabinName,
		Date:      b.Date.Format("2006-01-02"),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Purpose:   b.Purpose,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
