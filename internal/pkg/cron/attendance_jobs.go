package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/officehub/officehub-backend-go/internal/domain/attendance"
	"github.com/officehub/officehub-backend-go/internal/domain/leave"
)

// AttendanceJobs reconciles the attendance ledger once the day is over:
// employees without any record get ABSENT (or ON_LEAVE when an approved
// request covers the day), and forgotten open records are closed.
type AttendanceJobs struct {
	attendanceRepo attendance.Repository
	leaveRepo      leave.Repository
	location       *time.Location

	// now is swappable in tests; both jobs key off the local clock.
	now func() time.Time
}

func NewAttendanceJobs(attendanceRepo attendance.Repository, leaveRepo leave.Repository, location *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		location:       location,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reconcile_missing_attendance", 1*time.Hour, j.ReconcileMissingAttendance)
	scheduler.AddJob("auto_close_stale_attendance", 1*time.Hour, j.AutoCloseStaleAttendance)
}

// ReconcileMissingAttendance backfills yesterday for every active
// employee without a record. Runs hourly but only acts in the first
// hour after local midnight; the unique constraint makes reruns no-ops.
func (j *AttendanceJobs) ReconcileMissingAttendance(ctx context.Context) error {
	now := j.now().In(j.location)
	if now.Hour() != 0 {
		return nil
	}

	yesterday := attendance.Normalize(now.AddDate(0, 0, -1), j.location)

	slog.Info("Cron: Starting attendance reconciliation", "date", yesterday.Format("2006-01-02"))

	userIDs, err := j.attendanceRepo.ListUserIDsWithoutRecord(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to list users without attendance record: %w", err)
	}

	marked := 0
	for _, userID := range userIDs {
		status := attendance.StatusAbsent

		covering, err := j.leaveRepo.FindApprovedCovering(ctx, userID, yesterday)
		if err != nil {
			slog.Error("Cron: Failed to check leave coverage", "user_id", userID, "error", err)
			continue
		}
		if covering != nil {
			status = attendance.StatusOnLeave
		}

		_, err = j.attendanceRepo.Create(ctx, attendance.Record{
			UserID: userID,
			Date:   yesterday,
			Status: status,
		})
		if err != nil {
			// A concurrent run already filled the day in.
			if err == attendance.ErrAlreadyCheckedIn {
				continue
			}
			slog.Error("Cron: Failed to create reconciliation record", "user_id", userID, "error", err)
			continue
		}
		marked++
	}

	slog.Info("Cron: Attendance reconciliation done", "marked", marked)
	return nil
}

// AutoCloseStaleAttendance closes records whose day ended without a
// check-out. The record is closed at its day's end; a break still
// running at that point is folded in the same way a checkout would.
func (j *AttendanceJobs) AutoCloseStaleAttendance(ctx context.Context) error {
	today := attendance.Normalize(j.now(), j.location)

	stale, err := j.attendanceRepo.ListOpenBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list stale open records: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	closed := 0
	for _, rec := range stale {
		// rec.Date comes back from the DATE column at UTC midnight;
		// rebuild the day boundary in the configured zone.
		y, m, d := rec.Date.Date()
		endOfDay := time.Date(y, m, d, 0, 0, 0, 0, j.location).AddDate(0, 0, 1)

		breakMinutes := rec.BreakMinutes
		if rec.OnBreak() {
			breakMinutes += attendance.MinutesBetween(*rec.BreakStartedAt, endOfDay)
		}
		worked := attendance.MinutesBetween(*rec.CheckIn, endOfDay) - breakMinutes
		if worked < 0 {
			worked = 0
		}

		if err := j.attendanceRepo.Close(ctx, rec.ID, endOfDay, breakMinutes, worked); err != nil {
			if err == attendance.ErrAlreadyCheckedOut {
				continue
			}
			slog.Error("Cron: Failed to auto-close attendance record", "attendance_id", rec.ID, "error", err)
			continue
		}
		closed++
	}

	slog.Info("Cron: Auto-closed stale attendance records", "count", closed)
	return nil
}
