package cabin

import (
	"context"
	"time"

	"github.com/officehub/officehub-backend-go/internal/domain/auth"
	"github.com/officehub/officehub-backend-go/internal/domain/cabin"
	"github.com/officehub/officehub-backend-go/internal/pkg/validator"
)

// upcomingBookingsPerCabin caps how many future bookings ride along on
// the cabin listing.
const upcomingBookingsPerCabin = 3

type CabinServiceImpl struct {
	repo cabin.CabinRepository
}

func NewCabinService(repo cabin.CabinRepository) cabin.CabinService {
	return &CabinServiceImpl{repo: repo}
}

// Create implements cabin.CabinService.
func (s *CabinServiceImpl) Create(ctx context.Context, req cabin.CreateCabinRequest) (cabin.CabinResponse, error) {
	if err := req.Validate(); err != nil {
		return cabin.CabinResponse{}, err
	}

	color := req.Color
	if color == "" {
		color = cabin.DefaultColor
	}

	created, err := s.repo.Create(ctx, cabin.Cabin{
		Name:            req.Name,
		Capacity:        req.Capacity,
		OpenTime:        req.OpenTime,
		CloseTime:       req.CloseTime,
		MaxBookingHours: req.MaxBookingHours,
		Color:           color,
		Description:     req.Description,
		IsActive:        true,
	})
	if err != nil {
		return cabin.CabinResponse{}, err
	}

	return cabin.NewCabinResponse(created), nil
}

// Get implements cabin.CabinService.
func (s *CabinServiceImpl) Get(ctx context.Context, id string) (cabin.CabinResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return cabin.CabinResponse{}, err
	}
	return cabin.NewCabinResponse(c), nil
}

// Update implements cabin.CabinService.
func (s *CabinServiceImpl) Update(ctx context.Context, req cabin.UpdateCabinRequest) (cabin.CabinResponse, error) {
	if err := req.Validate(); err != nil {
		return cabin.CabinResponse{}, err
	}

	if err := s.repo.Update(ctx, req); err != nil {
		return cabin.CabinResponse{}, err
	}

	updated, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return cabin.CabinResponse{}, err
	}
	return cabin.NewCabinResponse(updated), nil
}

// Deactivate implements cabin.CabinService.
func (s *CabinServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

// List implements cabin.CabinService.
func (s *CabinServiceImpl) List(ctx context.Context) ([]cabin.CabinResponse, error) {
	cabins, err := s.repo.List(ctx, upcomingBookingsPerCabin)
	if err != nil {
		return nil, err
	}

	responses := make([]cabin.CabinResponse, 0, len(cabins))
	for _, c := range cabins {
		responses = append(responses, cabin.NewCabinResponse(c))
	}
	return responses, nil
}

type BookingServiceImpl struct {
	cabins   cabin.CabinRepository
	bookings cabin.BookingRepository
}

func NewBookingService(cabins cabin.CabinRepository, bookings cabin.BookingRepository) cabin.BookingService {
	return &BookingServiceImpl{
		cabins:   cabins,
		bookings: bookings,
	}
}

// validateWindow checks a requested slot against the cabin's open hours
// and maximum duration. Times are "HH:MM" so lexical comparison lines
// up with chronological order.
func validateWindow(c cabin.Cabin, startTime, endTime string) error {
	if startTime < c.OpenTime || endTime > c.CloseTime {
		return cabin.ErrOutsideOpenHours
	}

	startAt, _ := validator.IsValidTimeOfDay(startTime)
	endAt, _ := validator.IsValidTimeOfDay(endTime)
	if endAt.Sub(startAt) > time.Duration(c.MaxBookingHours)*time.Hour {
		return cabin.ErrBookingTooLong
	}
	return nil
}

// Create implements cabin.BookingService.
func (s *BookingServiceImpl) Create(ctx context.Context, req cabin.CreateBookingRequest) (cabin.BookingResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return cabin.BookingResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return cabin.BookingResponse{}, err
	}

	c, err := s.cabins.GetByID(ctx, req.CabinID)
	if err != nil {
		return cabin.BookingResponse{}, err
	}
	if !c.IsActive {
		return cabin.BookingResponse{}, cabin.ErrCabinInactive
	}

	if err := validateWindow(c, req.StartTime, req.EndTime); err != nil {
		return cabin.BookingResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	conflict, err := s.bookings.HasOverlapping(ctx, req.CabinID, date, req.StartTime, req.EndTime, nil)
	if err != nil {
		return cabin.BookingResponse{}, err
	}
	if conflict {
		return cabin.BookingResponse{}, cabin.ErrBookingConflict
	}

	created, err := s.bookings.Create(ctx, cabin.Booking{
		UserID:    identity.UserID,
		CabinID:   req.CabinID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Purpose:   req.Purpose,
		Status:    cabin.BookingStatusConfirmed,
	})
	if err != nil {
		return cabin.BookingResponse{}, err
	}

	created.CabinName = &c.Name
	return cabin.NewBookingResponse(created), nil
}

// ListMine implements cabin.BookingService.
func (s *BookingServiceImpl) ListMine(ctx context.Context) ([]cabin.BookingResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]cabin.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, cabin.NewBookingResponse(b))
	}
	return responses, nil
}

// Update implements cabin.BookingService. Only the owner (or an admin)
// may move a booking; the new window is re-checked as on create.
func (s *BookingServiceImpl) Update(ctx context.Context, req cabin.UpdateBookingRequest) (cabin.BookingResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return cabin.BookingResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return cabin.BookingResponse{}, err
	}

	existing, err := s.bookings.GetByID(ctx, req.ID)
	if err != nil {
		return cabin.BookingResponse{}, err
	}
	if existing.UserID != identity.UserID && !identity.IsAdmin() {
		return cabin.BookingResponse{}, cabin.ErrNotBookingOwner
	}
	if existing.Status == cabin.BookingStatusCancelled {
		return cabin.BookingResponse{}, cabin.ErrBookingCancelled
	}

	// Resolve the would-be state to validate the whole window.
	cabinID := existing.CabinID
	if req.CabinID != nil {
		cabinID = *req.CabinID
	}
	date := existing.Date
	if req.Date != nil {
		date, _ = validator.IsValidDate(*req.Date)
	}
	startTime := existing.StartTime
	if req.StartTime != nil {
		startTime = *req.StartTime
	}
	endTime := existing.EndTime
	if req.EndTime != nil {
		endTime = *req.EndTime
	}
	if endTime <= startTime {
		return cabin.BookingResponse{}, cabin.ErrInvalidTimeWindow
	}

	c, err := s.cabins.GetByID(ctx, cabinID)
	if err != nil {
		return cabin.BookingResponse{}, err
	}
	if !c.IsActive {
		return cabin.BookingResponse{}, cabin.ErrCabinInactive
	}
	if err := validateWindow(c, startTime, endTime); err != nil {
		return cabin.BookingResponse{}, err
	}

	conflict, err := s.bookings.HasOverlapping(ctx, cabinID, date, startTime, endTime, &req.ID)
	if err != nil {
		return cabin.BookingResponse{}, err
	}
	if conflict {
		return cabin.BookingResponse{}, cabin.ErrBookingConflict
	}

	if err := s.bookings.Update(ctx, req); err != nil {
		return cabin.BookingResponse{}, err
	}

	updated, err := s.bookings.GetByID(ctx, req.ID)
	if err != nil {
		return cabin.BookingResponse{}, err
	}
	return cabin.NewBookingResponse(updated), nil
}

// Cancel implements cabin.BookingService.
func (s *BookingServiceImpl) Cancel(ctx context.Context, id string) error {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != identity.UserID && !identity.IsAdmin() {
		return cabin.ErrNotBookingOwner
	}
	if existing.Status == cabin.BookingStatusCancelled {
		return nil
	}

	return s.bookings.UpdateStatus(ctx, id, cabin.BookingStatusCancelled)
}
