package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/leave"
	"github.com/officehub/officehub-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.Repository {
	return &leaveRequestRepository{db: db}
}

const leaveColumns = `id, user_id, type, start_date, end_date, reason, status, decided_by, decided_at, created_at, updated_at`

func scanLeaveRequest(row interface{ Scan(...interface{}) error }) (leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	err := row.Scan(
		&l.ID, &l.UserID, &l.Type, &l.StartDate, &l.EndDate, &l.Reason,
		&l.Status, &l.DecidedBy, &l.DecidedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return l, nil
}

// Create implements leave.Repository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (user_id, type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.UserID,
		string(req.Type),
		req.StartDate,
		req.EndDate,
		req.Reason,
		string(req.Status),
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.Repository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.user_id, l.type, l.start_date, l.end_date, l.reason,
			   l.status, l.decided_by, l.decided_at, l.created_at, l.updated_at,
			   u.name AS user_name, u.department AS user_department, u.email AS user_email
		FROM leave_requests l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE l.id = $1
	`

	var l leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.UserID, &l.Type, &l.StartDate, &l.EndDate, &l.Reason,
		&l.Status, &l.DecidedBy, &l.DecidedAt, &l.CreatedAt, &l.UpdatedAt,
		&l.UserName, &l.UserDepartment, &l.UserEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return l, nil
}

// ListByUser implements leave.Repository.
func (r *leaveRequestRepository) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		l, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, l)
	}
	return requests, rows.Err()
}

// ListAll implements leave.Repository.
func (r *leaveRequestRepository) ListAll(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := `1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND l.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_requests l WHERE ` + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := `
		SELECT l.id, l.user_id, l.type, l.start_date, l.end_date, l.reason,
			   l.status, l.decided_by, l.decided_at, l.created_at, l.updated_at,
			   u.name AS user_name, u.department AS user_department, u.email AS user_email
		FROM leave_requests l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE ` + baseWhere + `
		ORDER BY l.created_at DESC
	`
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
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var l leave.LeaveRequest
		err := rows.Scan(
			&l.ID, &l.UserID, &l.Type, &l.StartDate, &l.EndDate, &l.Reason,
			&l.Status, &l.DecidedBy, &l.DecidedAt, &l.CreatedAt, &l.UpdatedAt,
			&l.UserName, &l.UserDepartment, &l.UserEmail,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, total, nil
}

// Decide implements leave.Repository. The status = 'PENDING' guard makes
// the transition happen at most once no matter how many admins race.
func (r *leaveRequestRepository) Decide(ctx context.Context, id string, status leave.Status, decidedBy string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, decided_by = $3, decided_at = $4, updated_at = NOW()
		WHERE id = $1
		  AND status = 'PENDING'
	`

	tag, err := q.Exec(ctx, query, id, string(status), decidedBy, decidedAt)
	if err != nil {
		return fmt.Errorf("failed to decide leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already decided; disambiguate for the caller.
		var exists bool
		if err := q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM leave_requests WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check leave request existence: %w", err)
		}
		if !exists {
			return leave.ErrLeaveRequestNotFound
		}
		return leave.ErrAlreadyProcessed
	}
	return nil
}

// HasOverlapping implements leave.Repository.
func (r *leaveRequestRepository) HasOverlapping(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE user_id = $1
			  AND status != 'REJECTED'
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, startDate, endDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}
	return exists, nil
}

// FindApprovedCovering implements leave.Repository.
func (r *leaveRequestRepository) FindApprovedCovering(ctx context.Context, userID string, day time.Time) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE user_id = $1
		  AND status = 'APPROVED'
		  AND start_date <= $2
		  AND end_date >= $2
		LIMIT 1
	`

	l, err := scanLeaveRequest(q.QueryRow(ctx, query, userID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find covering leave request: %w", err)
	}
	return &l, nil
}
