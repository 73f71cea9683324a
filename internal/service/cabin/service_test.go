package cabin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/cabin"
	"github.com/officehub/officehub-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCabinRepository struct {
	cabins map[string]*cabin.Cabin
}

func newFakeCabinRepository() *fakeCabinRepository {
	return &fakeCabinRepository{cabins: make(map[string]*cabin.Cabin)}
}

func (f *fakeCabinRepository) Create(ctx context.Context, c cabin.Cabin) (cabin.Cabin, error) {
	c.ID = fmt.Sprintf("cabin-%d", len(f.cabins)+1)
	stored := c
	f.cabins[c.ID] = &stored
	return c, nil
}

func (f *fakeCabinRepository) GetByID(ctx context.Context, id string) (cabin.Cabin, error) {
	c, ok := f.cabins[id]
	if !ok {
		return cabin.Cabin{}, cabin.ErrCabinNotFound
	}
	return *c, nil
}

func (f *fakeCabinRepository) Update(ctx context.Context, req cabin.UpdateCabinRequest) error {
	c, ok := f.cabins[req.ID]
	if !ok {
		return cabin.ErrCabinNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	return nil
}

func (f *fakeCabinRepository) Deactivate(ctx context.Context, id string) error {
	c, ok := f.cabins[id]
	if !ok {
		return cabin.ErrCabinNotFound
	}
	c.IsActive = false
	return nil
}

func (f *fakeCabinRepository) List(ctx context.Context, bookingsPerCabin int) ([]cabin.Cabin, error) {
	out := make([]cabin.Cabin, 0, len(f.cabins))
	for _, c := range f.cabins {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeBookingRepository struct {
	bookings map[string]*cabin.Booking
	nextID   int
}

func newFakeBookingRepository() *fakeBookingRepository {
	return &fakeBookingRepository{bookings: make(map[string]*cabin.Booking)}
}

func (f *fakeBookingRepository) Create(ctx context.Context, b cabin.Booking) (cabin.Booking, error) {
	// Mirrors the store's exclusion constraint on overlapping windows.
	conflict, _ := f.HasOverlapping(ctx, b.CabinID, b.Date, b.StartTime, b.EndTime, nil)
	if conflict {
		return cabin.Booking{}, cabin.ErrBookingConflict
	}
	f.nextID++
	b.ID = fmt.Sprintf("booking-%d", f.nextID)
	stored := b
	f.bookings[b.ID] = &stored
	return b, nil
}

func (f *fakeBookingRepository) GetByID(ctx context.Context, id string) (cabin.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return cabin.Booking{}, cabin.ErrBookingNotFound
	}
	return *b, nil
}

func (f *fakeBookingRepository) Update(ctx context.Context, req cabin.UpdateBookingRequest) error {
	b, ok := f.bookings[req.ID]
	if !ok {
		return cabin.ErrBookingNotFound
	}
	if b.Status == cabin.BookingStatusCancelled {
		return cabin.ErrBookingCancelled
	}
	if req.StartTime != nil {
		b.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		b.EndTime = *req.EndTime
	}
	if req.Purpose != nil {
		b.Purpose = *req.Purpose
	}
	return nil
}

func (f *fakeBookingRepository) UpdateStatus(ctx context.Context, id string, status cabin.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return cabin.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepository) ListByUser(ctx context.Context, userID string) ([]cabin.Booking, error) {
	out := make([]cabin.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepository) HasOverlapping(ctx context.Context, cabinID string, date time.Time, startTime, endTime string, excludeID *string) (bool, error) {
	for _, b := range f.bookings {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.CabinID != cabinID || !b.Date.Equal(date) || b.Status == cabin.BookingStatusCancelled {
			continue
		}
		if b.StartTime < endTime && b.EndTime > startTime {
			return true, nil
		}
	}
	return false, nil
}

func bookingContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   "employee@officehub.test",
		"name":    "Test Employee",
		"role":    string(role),
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func seedCabin(t *testing.T, cabins *fakeCabinRepository) cabin.Cabin {
	t.Helper()
	c, err := cabins.Create(context.Background(), cabin.Cabin{
		Name:            "Meeting Room A",
		Capacity:        6,
		OpenTime:        "08:00",
		CloseTime:       "18:00",
		MaxBookingHours: 2,
		Color:           cabin.DefaultColor,
		IsActive:        true,
	})
	require.NoError(t, err)
	return c
}

func TestCreateBooking(t *testing.T) {
	cabins := newFakeCabinRepository()
	bookings := newFakeBookingRepository()
	c := seedCabin(t, cabins)
	svc := NewBookingService(cabins, bookings)
	ctx := bookingContext(t, "user-1", user.RoleEmployee)

	resp, err := svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
		Purpose:   "Sprint planning",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, string(cabin.BookingStatusConfirmed), resp.Status)
	require.NotNil(t, resp.CabinName)
	assert.Equal(t, "Meeting Room A", *resp.CabinName)
}

func TestCreateBookingConflict(t *testing.T) {
	cabins := newFakeCabinRepository()
	bookings := newFakeBookingRepository()
	c := seedCabin(t, cabins)
	svc := NewBookingService(cabins, bookings)
	ctx := bookingContext(t, "user-1", user.RoleEmployee)

	_, err := svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
		Purpose:   "Sprint planning",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:30",
		EndTime:   "11:30",
		Purpose:   "1:1",
	})
	assert.ErrorIs(t, err, cabin.ErrBookingConflict)
}

// lostRaceBookingRepository reports no overlap on the pre-check, the
// way a concurrent writer that commits in between would look.
type lostRaceBookingRepository struct {
	*fakeBookingRepository
}

func (r *lostRaceBookingRepository) HasOverlapping(ctx context.Context, cabinID string, date time.Time, startTime, endTime string, excludeID *string) (bool, error) {
	return false, nil
}

func TestCreateBookingConflictCaughtByStore(t *testing.T) {
	cabins := newFakeCabinRepository()
	bookings := newFakeBookingRepository()
	c := seedCabin(t, cabins)
	svc := NewBookingService(cabins, &lostRaceBookingRepository{bookings})
	ctx := bookingContext(t, "user-1", user.RoleEmployee)

	_, err := svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
		Purpose:   "Sprint planning",
	})
	require.NoError(t, err)

	// The pre-check misses, so the insert itself must reject the
	// overlap instead of double-booking the slot.
	_, err = svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:30",
		EndTime:   "11:30",
		Purpose:   "1:1",
	})
	assert.ErrorIs(t, err, cabin.ErrBookingConflict)
}

func TestCreateBookingBackToBackAllowed(t *testing.T) {
	cabins := newFakeCabinRepository()
	bookings := newFakeBookingRepository()
	c := seedCabin(t, cabins)
	svc := NewBookingService(cabins, bookings)
	ctx := bookingContext(t, "user-1", user.RoleEmployee)

	_, err := svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
		Purpose:   "Sprint planning",
	})
	require.NoError(t, err)

	// An interval ending exactly when the next starts does not overlap.
	_, err = svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "11:00",
		EndTime:   "12:00",
		Purpose:   "Retro",
	})
	assert.NoError(t, err)
}

func TestCreateBookingCancelledSlotReusable(t *testing.T) {
	cabins := newFakeCabinRepository()
	bookings := newFakeBookingRepository()
	c := seedCabin(t, cabins)
	svc := NewBookingService(cabins, bookings)
	ctx := bookingContext(t, "user-1", user.RoleEmployee)

	first, err := svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
		Purpose:   "Sprint planning",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, first.ID))

	_, err = svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
		Purpose:   "Sprint planning, take two",
	})
	assert.NoError(t, err)
}

func TestCreateBookingOutsideOpenHours(t *testing.T) {
	cabins := newFakeCabinRepository()
	bookings := newFakeBookingRepository()
	c := seedCabin(t, cabins)
	svc := NewBookingService(cabins, bookings)
	ctx := bookingContext(t, "user-1", user.RoleEmployee)

	_, err := svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "07:00",
		EndTime:   "08:30",
		Purpose:   "Early sync",
	})
	assert.ErrorIs(t, err, cabin.ErrOutsideOpenHours)
}

func TestCreateBookingTooLong(t *testing.T) {
	cabins := newFakeCabinRepository()
	bookings := newFakeBookingRepository()
	c := seedCabin(t, cabins)
	svc := NewBookingService(cabins, bookings)
	ctx := bookingContext(t, "user-1", user.RoleEmployee)

	_, err := svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "09:00",
		EndTime:   "12:00",
		Purpose:   "Workshop",
	})
	assert.ErrorIs(t, err, cabin.ErrBookingTooLong)
}

func TestCreateBookingInactiveCabin(t *testing.T) {
	cabins := newFakeCabinRepository()
	bookings := newFakeBookingRepository()
	c := seedCabin(t, cabins)
	require.NoError(t, cabins.Deactivate(context.Background(), c.ID))
	svc := NewBookingService(cabins, bookings)
	ctx := bookingContext(t, "user-1", user.RoleEmployee)

	_, err := svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
		Purpose:   "Sprint planning",
	})
	assert.ErrorIs(t, err, cabin.ErrCabinInactive)
}

func TestUpdateBookingNotOwner(t *testing.T) {
	cabins := newFakeCabinRepository()
	bookings := newFakeBookingRepository()
	c := seedCabin(t, cabins)
	svc := NewBookingService(cabins, bookings)
	owner := bookingContext(t, "user-1", user.RoleEmployee)
	other := bookingContext(t, "user-2", user.RoleEmployee)

	created, err := svc.Create(owner, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
		Purpose:   "Sprint planning",
	})
	require.NoError(t, err)

	newPurpose := "Hijacked"
	_, err = svc.Update(other, cabin.UpdateBookingRequest{
		ID:      created.ID,
		Purpose: &newPurpose,
	})
	assert.ErrorIs(t, err, cabin.ErrNotBookingOwner)
}

func TestUpdateBookingAdminOverride(t *testing.T) {
	cabins := newFakeCabinRepository()
	bookings := newFakeBookingRepository()
	c := seedCabin(t, cabins)
	svc := NewBookingService(cabins, bookings)
	owner := bookingContext(t, "user-1", user.RoleEmployee)
	admin := bookingContext(t, "admin-1", user.RoleAdmin)

	created, err := svc.Create(owner, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
		Purpose:   "Sprint planning",
	})
	require.NoError(t, err)

	start, end := "14:00", "15:00"
	resp, err := svc.Update(admin, cabin.UpdateBookingRequest{
		ID:        created.ID,
		StartTime: &start,
		EndTime:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "14:00", resp.StartTime)
	assert.Equal(t, "15:00", resp.EndTime)
}

func TestUpdateBookingRejectsInvertedWindow(t *testing.T) {
	cabins := newFakeCabinRepository()
	bookings := newFakeBookingRepository()
	c := seedCabin(t, cabins)
	svc := NewBookingService(cabins, bookings)
	ctx := bookingContext(t, "user-1", user.RoleEmployee)

	created, err := svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
		Purpose:   "Sprint planning",
	})
	require.NoError(t, err)

	// Only end_time moves, ahead of the unchanged start_time.
	end := "09:00"
	_, err = svc.Update(ctx, cabin.UpdateBookingRequest{
		ID:      created.ID,
		EndTime: &end,
	})
	assert.ErrorIs(t, err, cabin.ErrInvalidTimeWindow)
}

func TestCancelBookingIdempotent(t *testing.T) {
	cabins := newFakeCabinRepository()
	bookings := newFakeBookingRepository()
	c := seedCabin(t, cabins)
	svc := NewBookingService(cabins, bookings)
	ctx := bookingContext(t, "user-1", user.RoleEmployee)

	created, err := svc.Create(ctx, cabin.CreateBookingRequest{
		CabinID:   c.ID,
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
		Purpose:   "Sprint planning",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, created.ID))
	assert.NoError(t, svc.Cancel(ctx, created.ID))
}
