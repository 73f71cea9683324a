package cron

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/officehub/officehub-backend-go/internal/domain/attendance"
	"github.com/officehub/officehub-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobAttendanceRepo struct {
	records map[string]*attendance.Record
	// employees reported as missing a record, regardless of date
	missing []string
	nextID  int
}

func newJobAttendanceRepo() *jobAttendanceRepo {
	return &jobAttendanceRepo{records: make(map[string]*attendance.Record)}
}

func (f *jobAttendanceRepo) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
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

func (f *jobAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return *rec, nil
}

func (f *jobAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	for _, rec := range f.records {
		if rec.UserID == userID && attendance.SameDay(rec.Date, date) {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *jobAttendanceRepo) StartBreak(ctx context.Context, id string, at time.Time) error {
	return attendance.ErrConcurrentUpdate
}

func (f *jobAttendanceRepo) EndBreak(ctx context.Context, id string, breakMinutes int) error {
	return attendance.ErrConcurrentUpdate
}

func (f *jobAttendanceRepo) Close(ctx context.Context, id string, checkOut time.Time, breakMinutes int, workingMinutes int) error {
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

func (f *jobAttendanceRepo) UpdateStatus(ctx context.Context, id string, status attendance.Status) error {
	rec, ok := f.records[id]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	rec.Status = status
	return nil
}

func (f *jobAttendanceRepo) ListByUser(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (f *jobAttendanceRepo) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (f *jobAttendanceRepo) ListUserIDsWithoutRecord(ctx context.Context, date time.Time) ([]string, error) {
	var out []string
	for _, userID := range f.missing {
		rec, err := f.GetByUserAndDate(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			out = append(out, userID)
		}
	}
	return out, nil
}

func (f *jobAttendanceRepo) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.CheckIn != nil && rec.CheckOut == nil && rec.Date.Before(cutoff) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type jobLeaveRepo struct {
	// approved request per user, returned for any covered day
	approved map[string]*leave.LeaveRequest
}

func newJobLeaveRepo() *jobLeaveRepo {
	return &jobLeaveRepo{approved: make(map[string]*leave.LeaveRequest)}
}

func (f *jobLeaveRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	return req, nil
}

func (f *jobLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (f *jobLeaveRepo) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *jobLeaveRepo) ListAll(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, int64, error) {
	return nil, 0, nil
}

func (f *jobLeaveRepo) Decide(ctx context.Context, id string, status leave.Status, decidedBy string, decidedAt time.Time) error {
	return leave.ErrLeaveRequestNotFound
}

func (f *jobLeaveRepo) HasOverlapping(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	return false, nil
}

func (f *jobLeaveRepo) FindApprovedCovering(ctx context.Context, userID string, day time.Time) (*leave.LeaveRequest, error) {
	req, ok := f.approved[userID]
	if !ok {
		return nil, nil
	}
	return req, nil
}

func jakartaLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func newTestJobs(attendanceRepo *jobAttendanceRepo, leaveRepo *jobLeaveRepo, now time.Time) *AttendanceJobs {
	jobs := NewAttendanceJobs(attendanceRepo, leaveRepo, now.Location())
	jobs.now = func() time.Time { return now }
	return jobs
}

func TestReconcileMissingAttendance(t *testing.T) {
	loc := jakartaLocation(t)
	attendanceRepo := newJobAttendanceRepo()
	attendanceRepo.missing = []string{"user-1", "user-2"}
	leaveRepo := newJobLeaveRepo()
	leaveRepo.approved["user-2"] = &leave.LeaveRequest{
		ID:     "leave-1",
		UserID: "user-2",
		Status: leave.StatusApproved,
	}

	jobs := newTestJobs(attendanceRepo, leaveRepo, time.Date(2025, 3, 10, 0, 30, 0, 0, loc))
	require.NoError(t, jobs.ReconcileMissingAttendance(context.Background()))

	yesterday := time.Date(2025, 3, 9, 0, 0, 0, 0, loc)

	rec, err := attendanceRepo.GetByUserAndDate(context.Background(), "user-1", yesterday)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.Nil(t, rec.CheckIn)

	rec, err = attendanceRepo.GetByUserAndDate(context.Background(), "user-2", yesterday)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusOnLeave, rec.Status)
}

func TestReconcileMissingAttendanceOutsideWindow(t *testing.T) {
	loc := jakartaLocation(t)
	attendanceRepo := newJobAttendanceRepo()
	attendanceRepo.missing = []string{"user-1"}

	// Hourly tick landing mid-day must not backfill anything.
	jobs := newTestJobs(attendanceRepo, newJobLeaveRepo(), time.Date(2025, 3, 10, 10, 0, 0, 0, loc))
	require.NoError(t, jobs.ReconcileMissingAttendance(context.Background()))

	assert.Empty(t, attendanceRepo.records)
}

func TestReconcileMissingAttendanceRerunIsNoOp(t *testing.T) {
	loc := jakartaLocation(t)
	attendanceRepo := newJobAttendanceRepo()
	attendanceRepo.missing = []string{"user-1"}

	jobs := newTestJobs(attendanceRepo, newJobLeaveRepo(), time.Date(2025, 3, 10, 0, 30, 0, 0, loc))
	require.NoError(t, jobs.ReconcileMissingAttendance(context.Background()))
	require.NoError(t, jobs.ReconcileMissingAttendance(context.Background()))

	assert.Len(t, attendanceRepo.records, 1)
}

func TestAutoCloseStaleAttendanceClosesAtLocalDayEnd(t *testing.T) {
	loc := jakartaLocation(t)
	attendanceRepo := newJobAttendanceRepo()

	// Stored dates come back from the DATE column at midnight UTC;
	// the close boundary must still be local midnight.
	checkIn := time.Date(2025, 3, 9, 9, 0, 0, 0, loc)
	attendanceRepo.records["rec-1"] = &attendance.Record{
		ID:      "rec-1",
		UserID:  "user-1",
		Date:    time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		CheckIn: &checkIn,
		Status:  attendance.StatusPresent,
	}

	jobs := newTestJobs(attendanceRepo, newJobLeaveRepo(), time.Date(2025, 3, 10, 2, 0, 0, 0, loc))
	require.NoError(t, jobs.AutoCloseStaleAttendance(context.Background()))

	rec, err := attendanceRepo.GetByID(context.Background(), "rec-1")
	require.NoError(t, err)
	require.NotNil(t, rec.CheckOut)
	assert.True(t, rec.CheckOut.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, loc)))
	// 09:00 through local midnight, not through midnight UTC.
	assert.Equal(t, 900, rec.WorkingMinutes)
}

func TestAutoCloseStaleAttendanceFoldsRunningBreak(t *testing.T) {
	loc := jakartaLocation(t)
	attendanceRepo := newJobAttendanceRepo()

	checkIn := time.Date(2025, 3, 9, 9, 0, 0, 0, loc)
	breakStarted := time.Date(2025, 3, 9, 23, 0, 0, 0, loc)
	attendanceRepo.records["rec-1"] = &attendance.Record{
		ID:             "rec-1",
		UserID:         "user-1",
		Date:           time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		CheckIn:        &checkIn,
		BreakStartedAt: &breakStarted,
		BreakMinutes:   30,
		Status:         attendance.StatusPresent,
	}

	jobs := newTestJobs(attendanceRepo, newJobLeaveRepo(), time.Date(2025, 3, 10, 2, 0, 0, 0, loc))
	require.NoError(t, jobs.AutoCloseStaleAttendance(context.Background()))

	rec, err := attendanceRepo.GetByID(context.Background(), "rec-1")
	require.NoError(t, err)
	require.NotNil(t, rec.CheckOut)
	assert.Nil(t, rec.BreakStartedAt)
	// 30 accumulated + the hour still running at local midnight.
	assert.Equal(t, 90, rec.BreakMinutes)
	assert.Equal(t, 810, rec.WorkingMinutes)
}

func TestAutoCloseLeavesTodayOpen(t *testing.T) {
	loc := jakartaLocation(t)
	attendanceRepo := newJobAttendanceRepo()

	checkIn := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	attendanceRepo.records["rec-1"] = &attendance.Record{
		ID:      "rec-1",
		UserID:  "user-1",
		Date:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckIn: &checkIn,
		Status:  attendance.StatusPresent,
	}

	jobs := newTestJobs(attendanceRepo, newJobLeaveRepo(), time.Date(2025, 3, 10, 14, 0, 0, 0, loc))
	require.NoError(t, jobs.AutoCloseStaleAttendance(context.Background()))

	rec, err := attendanceRepo.GetByID(context.Background(), "rec-1")
	require.NoError(t, err)
	assert.Nil(t, rec.CheckOut)
}
