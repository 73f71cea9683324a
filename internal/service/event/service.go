package event

import (
	"context"

	"github.com/officehub/officehub-backend-go/internal/domain/event"
	"github.com/officehub/officehub-backend-go/internal/pkg/validator"
)

type EventServiceImpl struct {
	repo event.Repository
}

func NewEventService(repo event.Repository) event.Service {
	return &EventServiceImpl{repo: repo}
}

// Create implements event.Service.
func (s *EventServiceImpl) Create(ctx context.Context, req event.CreateRequest) (event.Response, error) {
	if err := req.Validate(); err != nil {
		return event.Response{}, err
	}

	eventType, _ := event.ParseType(req.Type)
	date, _ := validator.IsValidDate(req.Date)

	color := req.Color
	if color == "" {
		color = event.DefaultColor
	}

	created, err := s.repo.Create(ctx, event.Event{
		Title:       req.Title,
		Date:        date,
		Type:        eventType,
		Color:       color,
		Description: req.Description,
	})
	if err != nil {
		return event.Response{}, err
	}

	return event.NewResponse(created), nil
}

// List implements event.Service.
func (s *EventServiceImpl) List(ctx context.Context, filter event.Filter) ([]event.Response, error) {
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]event.Response, 0, len(events))
	for _, e := range events {
		responses = append(responses, event.NewResponse(e))
	}
	return responses, nil
}

// Delete implements event.Service.
func (s *EventServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
