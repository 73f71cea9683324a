package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/cabin"
	"github.com/officehub/officehub-backend-go/internal/handler/http/response"
)

type CabinHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type cabinHandlerImpl struct {
	cabinService cabin.CabinService
}

func NewCabinHandler(cabinService cabin.CabinService) CabinHandler {
	return &cabinHandlerImpl{
		cabinService: cabinService,
	}
}

// Create implements CabinHandler.
func (h *cabinHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req cabin.CreateCabinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.cabinService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Cabin created", result)
}

// List implements CabinHandler.
func (h *cabinHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.cabinService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Get implements CabinHandler.
func (h *cabinHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.cabinService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Update implements CabinHandler.
func (h *cabinHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req cabin.UpdateCabinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.cabinService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Cabin updated", result)
}

// Deactivate implements CabinHandler.
func (h *cabinHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.cabinService.Deactivate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Cabin deactivated", nil)
}

type CabinBookingHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type cabinBookingHandlerImpl struct {
	bookingService cabin.BookingService
}

func NewCabinBookingHandler(bookingService cabin.BookingService) CabinBookingHandler {
	return &cabinBookingHandlerImpl{
		bookingService: bookingService,
	}
}

// Create implements CabinBookingHandler.
func (h *cabinBookingHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req cabin.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.bookingService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Booking created", result)
}

// ListMine implements CabinBookingHandler.
func (h *cabinBookingHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.bookingService.ListMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Update implements CabinBookingHandler.
func (h *cabinBookingHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req cabin.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.bookingService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Booking updated", result)
}

// Cancel implements CabinBookingHandler.
func (h *cabinBookingHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.bookingService.Cancel(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Booking cancelled", nil)
}
