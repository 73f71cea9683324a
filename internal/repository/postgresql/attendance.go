package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/attendance"
	"github.com/officehub/officehub-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, user_id, date, check_in, check_out, break_started_at, break_minutes, working_minutes, status, created_at, updated_at`

func scanAttendance(row interface{ Scan(...interface{}) error }) (attendance.Record, error) {
	var rec attendance.Record
	var status string
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.BreakStartedAt, &rec.BreakMinutes, &rec.WorkingMinutes,
		&status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	parsed, ok := attendance.ParseStatus(status)
	if !ok {
		return attendance.Record{}, fmt.Errorf("%w: %q", attendance.ErrInvalidStatus, status)
	}
	rec.Status = parsed
	return rec, nil
}

// Create implements attendance.Repository. The unique constraint on
// (user_id, date) makes a concurrent double check-in lose cleanly:
// the violation is reported as ErrAlreadyCheckedIn.
func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			user_id, date, check_in, check_out, break_started_at,
			break_minutes, working_minutes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.UserID,
		rec.Date,
		rec.CheckIn,
		rec.CheckOut,
		rec.BreakStartedAt,
		rec.BreakMinutes,
		rec.WorkingMinutes,
		string(rec.Status),
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.user_id, a.date, a.check_in, a.check_out, a.break_started_at,
			   a.break_minutes, a.working_minutes, a.status, a.created_at, a.updated_at,
			   u.name AS user_name, u.department AS user_department
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	var rec attendance.Record
	var status string
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.BreakStartedAt, &rec.BreakMinutes, &rec.WorkingMinutes,
		&status, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.UserName, &rec.UserDepartment,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}

	parsed, ok := attendance.ParseStatus(status)
	if !ok {
		return attendance.Record{}, fmt.Errorf("%w: %q", attendance.ErrInvalidStatus, status)
	}
	rec.Status = parsed
	return rec, nil
}

// GetByUserAndDate implements attendance.Repository.
func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1 AND date = $2
		LIMIT 1
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for that day
		}
		return nil, fmt.Errorf("failed to get attendance record by user and date: %w", err)
	}

	return &rec, nil
}

// StartBreak implements attendance.Repository. The WHERE clause pins the
// legal state transition; losing the race surfaces as ErrConcurrentUpdate.
func (r *attendanceRepository) StartBreak(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET break_started_at = $2, updated_at = NOW()
		WHERE id = $1
		  AND check_out IS NULL
		  AND break_started_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to start break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrConcurrentUpdate
	}
	return nil
}

// EndBreak implements attendance.Repository.
func (r *attendanceRepository) EndBreak(ctx context.Context, id string, breakMinutes int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET break_minutes = $2, break_started_at = NULL, updated_at = NOW()
		WHERE id = $1
		  AND check_out IS NULL
		  AND break_started_at IS NOT NULL
	`

	tag, err := q.Exec(ctx, query, id, breakMinutes)
	if err != nil {
		return fmt.Errorf("failed to end break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrConcurrentUpdate
	}
	return nil
}

// Close implements attendance.Repository. check_out and working_minutes
// land in one statement so the record can never hold one without the other.
func (r *attendanceRepository) Close(ctx context.Context, id string, checkOut time.Time, breakMinutes int, workingMinutes int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_out = $2, break_minutes = $3, working_minutes = $4,
			break_started_at = NULL, updated_at = NOW()
		WHERE id = $1
		  AND check_out IS NULL
	`

	tag, err := q.Exec(ctx, query, id, checkOut, breakMinutes, workingMinutes)
	if err != nil {
		return fmt.Errorf("failed to close attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}
	return nil
}

// UpdateStatus implements attendance.Repository.
func (r *attendanceRepository) UpdateStatus(ctx context.Context, id string, status attendance.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE attendance_records SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// ListByUser implements attendance.Repository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := `user_id = $1`
	args := []interface{}{userID}
	argIdx := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_records WHERE ` + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE ` + baseWhere + ` ORDER BY date DESC`
	if filter.Limit > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.Limit
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, total, nil
}

// List implements attendance.Repository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := `1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND a.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.UserName != nil && *filter.UserName != "" {
		baseWhere += fmt.Sprintf(" AND u.name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.UserName+"%")
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE ` + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	sortBy := "a.date"
	switch filter.SortBy {
	case "check_in":
		sortBy = "a.check_in"
	case "check_out":
		sortBy = "a.check_out"
	case "working_minutes":
		sortBy = "a.working_minutes"
	case "status":
		sortBy = "a.status"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	query := `
		SELECT a.id, a.user_id, a.date, a.check_in, a.check_out, a.break_started_at,
			   a.break_minutes, a.working_minutes, a.status, a.created_at, a.updated_at,
			   u.name AS user_name, u.department AS user_department
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE ` + baseWhere + `
		ORDER BY ` + sortBy + ` ` + sortOrder
	if filter.Limit > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.Limit
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		var status string
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
			&rec.BreakStartedAt, &rec.BreakMinutes, &rec.WorkingMinutes,
			&status, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.UserName, &rec.UserDepartment,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		parsed, ok := attendance.ParseStatus(status)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q", attendance.ErrInvalidStatus, status)
		}
		rec.Status = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, total, nil
}

// ListUserIDsWithoutRecord implements attendance.Repository.
func (r *attendanceRepository) ListUserIDsWithoutRecord(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id
		FROM users u
		WHERE u.role = 'EMPLOYEE'
		  AND u.is_active = true
		  AND NOT EXISTS (
			SELECT 1 FROM attendance_records a
			WHERE a.user_id = u.id AND a.date = $1
		  )
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list users without attendance record: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListOpenBefore implements attendance.Repository.
func (r *attendanceRepository) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE check_in IS NOT NULL
		  AND check_out IS NULL
		  AND date < $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
