package event

import (
	"github.com/officehub/officehub-backend-go/internal/pkg/validator"
)

const DefaultColor = "#10b981"

type CreateRequest struct {
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
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

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	} else if _, ok := ParseType(r.Type); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of HOLIDAY, MEETING, TRAINING, CELEBRATION, OTHER",
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

type Filter struct {
	Type      *string
	StartDate *string
	EndDate   *string
}

type Response struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Color       string  `json:"color"`
	Description *string `json:"description,omitempty"`
}

func NewResponse(e Event) Response {
	return Response{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date.Format("2006-01-02"),
		Type:        string(e.Type),
		Color:       e.Color,
		Description: e.Description,
	}
}
