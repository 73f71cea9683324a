package attendance

import (
	"context"
	"time"

	"github.com/officehub/officehub-backend-go/internal/domain/attendance"
	"github.com/officehub/officehub-backend-go/internal/domain/auth"
)

// todayHistoryLimit caps how many recent records ride along on the
// today view.
const todayHistoryLimit = 10

type AttendanceServiceImpl struct {
	repo     attendance.Repository
	location *time.Location

	// now is swappable in tests; everything date-sensitive goes through it.
	now func() time.Time
}

func NewAttendanceService(repo attendance.Repository, location *time.Location) attendance.Service {
	return &AttendanceServiceImpl{
		repo:     repo,
		location: location,
		now:      time.Now,
	}
}

func (s *AttendanceServiceImpl) today(now time.Time) time.Time {
	return attendance.Normalize(now, s.location)
}

// CheckIn implements attendance.Service. The unique (user, date)
// constraint backs the once-per-day rule; a second call the same day
// fails with ErrAlreadyCheckedIn whether it raced or not.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.RecordResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	today := s.today(now)

	existing, err := s.repo.GetByUserAndDate(ctx, identity.UserID, today)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if existing != nil && existing.CheckIn != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	checkIn := now
	rec, err := s.repo.Create(ctx, attendance.Record{
		UserID:  identity.UserID,
		Date:    today,
		CheckIn: &checkIn,
		Status:  attendance.StatusPresent,
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.NewRecordResponse(rec, now), nil
}

// CheckOut implements attendance.Service. A break still running at
// checkout is folded into the total as if it ended now.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	today := s.today(now)

	rec, err := s.repo.GetByUserAndDate(ctx, identity.UserID, today)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if rec == nil || rec.CheckIn == nil {
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	breakMinutes := rec.BreakMinutes
	if rec.OnBreak() {
		breakMinutes += attendance.MinutesBetween(*rec.BreakStartedAt, now)
	}

	worked := attendance.MinutesBetween(*rec.CheckIn, now) - breakMinutes
	if worked < 0 {
		worked = 0
	}

	if err := s.repo.Close(ctx, rec.ID, now, breakMinutes, worked); err != nil {
		return attendance.RecordResponse{}, err
	}

	rec.CheckOut = &now
	rec.BreakStartedAt = nil
	rec.BreakMinutes = breakMinutes
	rec.WorkingMinutes = worked
	return attendance.NewRecordResponse(*rec, now), nil
}

// StartBreak implements attendance.Service.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context) (attendance.BreakStartResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.BreakStartResponse{}, err
	}

	now := s.now()
	today := s.today(now)

	rec, err := s.repo.GetByUserAndDate(ctx, identity.UserID, today)
	if err != nil {
		return attendance.BreakStartResponse{}, err
	}
	if rec == nil || rec.CheckIn == nil {
		return attendance.BreakStartResponse{}, attendance.ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return attendance.BreakStartResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if rec.OnBreak() {
		return attendance.BreakStartResponse{}, attendance.ErrAlreadyOnBreak
	}

	if err := s.repo.StartBreak(ctx, rec.ID, now); err != nil {
		return attendance.BreakStartResponse{}, err
	}

	return attendance.BreakStartResponse{
		BreakStartedAt: now.Format(time.RFC3339),
	}, nil
}

// EndBreak implements attendance.Service. Break minutes accumulate
// across pauses within the same day.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context) (attendance.RecordResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	today := s.today(now)

	rec, err := s.repo.GetByUserAndDate(ctx, identity.UserID, today)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if rec == nil || rec.CheckIn == nil {
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if !rec.OnBreak() {
		return attendance.RecordResponse{}, attendance.ErrNotOnBreak
	}

	breakMinutes := rec.BreakMinutes + attendance.MinutesBetween(*rec.BreakStartedAt, now)

	if err := s.repo.EndBreak(ctx, rec.ID, breakMinutes); err != nil {
		return attendance.RecordResponse{}, err
	}

	rec.BreakStartedAt = nil
	rec.BreakMinutes = breakMinutes
	return attendance.NewRecordResponse(*rec, now), nil
}

// Today implements attendance.Service.
func (s *AttendanceServiceImpl) Today(ctx context.Context) (attendance.TodayResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	now := s.now()
	today := s.today(now)

	rec, err := s.repo.GetByUserAndDate(ctx, identity.UserID, today)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	records, _, err := s.repo.ListByUser(ctx, identity.UserID, attendance.HistoryFilter{Limit: todayHistoryLimit})
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	resp := attendance.TodayResponse{
		History: make([]attendance.RecordResponse, 0, len(records)),
	}
	if rec != nil {
		todayResp := attendance.NewRecordResponse(*rec, now)
		resp.Today = &todayResp
	}
	for _, r := range records {
		if attendance.SameDay(r.Date, today) {
			continue
		}
		resp.History = append(resp.History, attendance.NewRecordResponse(r, now))
	}

	return resp, nil
}

// GetMyAttendance implements attendance.Service.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.RecordResponse, int64, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	if filter.Limit <= 0 {
		filter.Limit = 31
	}

	records, total, err := s.repo.ListByUser(ctx, identity.UserID, filter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewRecordResponse(r, now))
	}
	return responses, total, nil
}

// List implements attendance.Service.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.RecordResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewRecordResponse(r, now))
	}
	return responses, total, nil
}

// Get implements attendance.Service.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.RecordResponse, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return attendance.NewRecordResponse(rec, s.now()), nil
}

// UpdateStatus implements attendance.Service. This is the correction
// path for HALF_DAY and other after-the-fact adjustments.
func (s *AttendanceServiceImpl) UpdateStatus(ctx context.Context, req attendance.UpdateStatusRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	status, _ := attendance.ParseStatus(req.Status)

	if err := s.repo.UpdateStatus(ctx, req.ID, status); err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return attendance.NewRecordResponse(rec, s.now()), nil
}
