package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/event"
	"github.com/officehub/officehub-backend-go/internal/handler/http/response"
)

type EventHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	eventService event.Service
}

func NewEventHandler(eventService event.Service) EventHandler {
	return &eventHandlerImpl{
		eventService: eventService,
	}
}

// Create implements EventHandler.
func (h *eventHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req event.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.eventService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Event created", result)
}

// List implements EventHandler.
func (h *eventHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := event.Filter{
		Type:      queryParam(r, "type"),
		StartDate: queryParam(r, "start_date"),
		EndDate:   queryParam(r, "end_date"),
	}

	result, err := h.eventService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Delete implements EventHandler.
func (h *eventHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.eventService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Event deleted", nil)
}
