package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/attendance"
	"github.com/officehub/officehub-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository keeps records in memory and mirrors the store's
// guarantees: one record per (user, date) and guarded transitions.
type fakeRepository struct {
	records map[string]*attendance.Record
	nextID  int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: make(map[string]*attendance.Record)}
}

func (f *fakeRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	for _, existing := range f.records {
		if existing.UserID == rec.UserID && attendance.SameDay(existing.Date, rec.Date) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
	}
	f.nextID++
	rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	stored := rec
	f.records[rec.ID] = &stored
	return rec, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return *rec, nil
}

func (f *fakeRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	for _, rec := range f.records {
		// DATE columns match on the calendar day, not the instant.
		if rec.UserID == userID && attendance.SameDay(rec.Date, date) {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) StartBreak(ctx context.Context, id string, at time.Time) error {
	rec, ok := f.records[id]
	if !ok || rec.CheckOut != nil || rec.BreakStartedAt != nil {
		return attendance.ErrConcurrentUpdate
	}
	started := at
	rec.BreakStartedAt = &started
	return nil
}

func (f *fakeRepository) EndBreak(ctx context.Context, id string, breakMinutes int) error {
	rec, ok := f.records[id]
	if !ok || rec.CheckOut != nil || rec.BreakStartedAt == nil {
		return attendance.ErrConcurrentUpdate
	}
	rec.BreakMinutes = breakMinutes
	rec.BreakStartedAt = nil
	return nil
}

func (f *fakeRepository) Close(ctx context.Context, id string, checkOut time.Time, breakMinutes int, workingMinutes int) error {
	rec, ok := f.records[id]
	if !ok || rec.CheckOut != nil {
		return attendance.ErrAlreadyCheckedOut
	}
	out := checkOut
	rec.CheckOut = &out
	rec.BreakMinutes = breakMinutes
	rec.WorkingMinutes = workingMinutes
	rec.BreakStartedAt = nil
	return nil
}

func (f *fakeRepository) UpdateStatus(ctx context.Context, id string, status attendance.Status) error {
	rec, ok := f.records[id]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	rec.Status = status
	return nil
}

func (f *fakeRepository) ListByUser(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) ListUserIDsWithoutRecord(ctx context.Context, date time.Time) ([]string, error) {
	return nil, nil
}

func (f *fakeRepository) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.CheckIn != nil && rec.CheckOut == nil && rec.Date.Before(cutoff) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   "employee@officehub.test",
		"name":    "Test Employee",
		"role":    string(user.RoleEmployee),
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// newTestService wires the service to a fake repo and a controllable
// clock starting at the given instant.
func newTestService(repo *fakeRepository, start time.Time) (*AttendanceServiceImpl, *time.Time) {
	current := start
	svc := &AttendanceServiceImpl{
		repo:     repo,
		location: start.Location(),
		now:      func() time.Time { return current },
	}
	return svc, &current
}

func jakarta(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func TestCheckIn(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, _ := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	resp, err := svc.CheckIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.NotNil(t, resp.CheckIn)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, 0, resp.WorkingMinutes)
	assert.False(t, resp.OnBreak)
}

func TestCheckInTwiceSameDay(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, clock := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	first, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	*clock = start.Add(2 * time.Hour)
	_, err = svc.CheckIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	// The original record is untouched.
	rec, err := repo.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, start, *rec.CheckIn)
}

func TestFullDayWithBreak(t *testing.T) {
	// Check in 09:00, break 12:00 to 12:30, check out 18:00.
	// Elapsed 540 minutes minus 30 break = 510 worked.
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, clock := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	*clock = time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
	_, err = svc.StartBreak(ctx)
	require.NoError(t, err)

	*clock = time.Date(2025, 3, 10, 12, 30, 0, 0, loc)
	afterBreak, err := svc.EndBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, afterBreak.BreakMinutes)

	*clock = time.Date(2025, 3, 10, 18, 0, 0, 0, loc)
	resp, err := svc.CheckOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, 510, resp.WorkingMinutes)
	assert.Equal(t, 30, resp.BreakMinutes)
	assert.Equal(t, "8h 30m", resp.WorkingHours)
}

func TestBreakMinutesAccumulate(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, clock := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	*clock = time.Date(2025, 3, 10, 11, 0, 0, 0, loc)
	_, err = svc.StartBreak(ctx)
	require.NoError(t, err)
	*clock = time.Date(2025, 3, 10, 11, 10, 0, 0, loc)
	resp, err := svc.EndBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.BreakMinutes)

	*clock = time.Date(2025, 3, 10, 15, 0, 0, 0, loc)
	_, err = svc.StartBreak(ctx)
	require.NoError(t, err)
	*clock = time.Date(2025, 3, 10, 15, 10, 0, 0, loc)
	resp, err = svc.EndBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, resp.BreakMinutes)
}

func TestBreakRequiresOpenRecord(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, clock := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	_, err := svc.StartBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	_, err = svc.EndBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	_, err = svc.CheckIn(ctx)
	require.NoError(t, err)

	_, err = svc.EndBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotOnBreak)

	*clock = start.Add(time.Hour)
	_, err = svc.StartBreak(ctx)
	require.NoError(t, err)
	_, err = svc.StartBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyOnBreak)
}

func TestCheckOutFoldsRunningBreak(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, clock := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	*clock = time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
	_, err = svc.StartBreak(ctx)
	require.NoError(t, err)

	// Never ends the break; checkout at 13:00 folds the running hour in.
	*clock = time.Date(2025, 3, 10, 13, 0, 0, 0, loc)
	resp, err := svc.CheckOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60, resp.BreakMinutes)
	assert.Equal(t, 180, resp.WorkingMinutes)
	assert.False(t, resp.OnBreak)
}

func TestCheckOutTwice(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, clock := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	*clock = time.Date(2025, 3, 10, 17, 0, 0, 0, loc)
	first, err := svc.CheckOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, 480, first.WorkingMinutes)

	*clock = time.Date(2025, 3, 10, 19, 0, 0, 0, loc)
	_, err = svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	// Persisted totals are unchanged by the rejected attempt.
	rec, err := repo.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, 480, rec.WorkingMinutes)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, _ := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	_, err := svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestImmediateCheckOut(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, clock := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	*clock = start.Add(30 * time.Second)
	resp, err := svc.CheckOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.WorkingMinutes)
	assert.Equal(t, "0h 0m", resp.WorkingHours)
}

func TestTodayIncludesOpenRecord(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, clock := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	*clock = time.Date(2025, 3, 10, 14, 0, 0, 0, loc)
	resp, err := svc.Today(ctx)
	require.NoError(t, err)
	require.NotNil(t, resp.Today)
	assert.Equal(t, 300, resp.Today.WorkingMinutes)
	assert.Empty(t, resp.History)
}

func TestTodayWithUTCStoredDates(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, clock := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	// DATE columns scan back as midnight UTC, not midnight in the
	// configured zone. The record must still count as today's and must
	// not show up a second time in the history.
	checkIn := start
	repo.records["rec-1"] = &attendance.Record{
		ID:      "rec-1",
		UserID:  "user-1",
		Date:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckIn: &checkIn,
		Status:  attendance.StatusPresent,
	}

	*clock = time.Date(2025, 3, 10, 14, 0, 0, 0, loc)
	resp, err := svc.Today(ctx)
	require.NoError(t, err)
	require.NotNil(t, resp.Today)
	assert.Equal(t, 300, resp.Today.WorkingMinutes)
	assert.Empty(t, resp.History)
}

func TestTodayWithoutRecord(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, _ := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	resp, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Nil(t, resp.Today)
}

func TestUpdateStatus(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, _ := newTestService(repo, start)
	ctx := authedContext(t, "user-1")

	created, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	resp, err := svc.UpdateStatus(ctx, attendance.UpdateStatusRequest{
		ID:     created.ID,
		Status: "HALF_DAY",
	})
	require.NoError(t, err)
	assert.Equal(t, "HALF_DAY", resp.Status)

	_, err = svc.UpdateStatus(ctx, attendance.UpdateStatusRequest{
		ID:     created.ID,
		Status: "NOT_A_STATUS",
	})
	assert.Error(t, err)
}

func TestUnauthenticatedContext(t *testing.T) {
	loc := jakarta(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	repo := newFakeRepository()
	svc, _ := newTestService(repo, start)

	_, err := svc.CheckIn(context.Background())
	assert.Error(t, err)
}
