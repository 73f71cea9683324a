package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/cabin"
	"github.com/officehub/officehub-backend-go/internal/pkg/database"
)

type cabinBookingRepository struct {
	db *database.DB
}

func NewCabinBookingRepository(db *database.DB) cabin.BookingRepository {
	return &cabinBookingRepository{db: db}
}

// Create implements cabin.BookingRepository. The exclusion constraint
// on (cabin_id, date, time window) catches overlaps the service-level
// pre-check raced past; those surface as ErrBookingConflict.
func (r *cabinBookingRepository) Create(ctx context.Context, b cabin.Booking) (cabin.Booking, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cabin_bookings (user_id, cabin_id, date, start_time, end_time, purpose, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		b.UserID,
		b.CabinID,
		b.Date,
		b.StartTime,
		b.EndTime,
		b.Purpose,
		string(b.Status),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return cabin.Booking{}, cabin.ErrBookingConflict
		}
		return cabin.Booking{}, fmt.Errorf("failed to create cabin booking: %w", err)
	}

	return b, nil
}

// GetByID implements cabin.BookingRepository.
func (r *cabinBookingRepository) GetByID(ctx context.Context, id string) (cabin.Booking, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.user_id, b.cabin_id, b.date, b.start_time, b.end_time,
			   b.purpose, b.status, b.created_at, b.updated_at,
			   c.name AS cabin_name, u.name AS user_name
		FROM cabin_bookings b
		LEFT JOIN cabins c ON c.id = b.cabin_id
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.id = $1
	`

	var b cabin.Booking
	err := q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.UserID, &b.CabinID, &b.Date, &b.StartTime, &b.EndTime,
		&b.Purpose, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&b.CabinName, &b.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cabin.Booking{}, cabin.ErrBookingNotFound
		}
		return cabin.Booking{}, fmt.Errorf("failed to get cabin booking by ID: %w", err)
	}

	return b, nil
}

// Update implements cabin.BookingRepository. Cancelled bookings stay
// frozen; editing one reports ErrBookingCancelled.
func (r *cabinBookingRepository) Update(ctx context.Context, req cabin.UpdateBookingRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE cabin_bookings
		SET cabin_id = COALESCE($2, cabin_id),
			date = COALESCE($3, date),
			start_time = COALESCE($4, start_time),
			end_time = COALESCE($5, end_time),
			purpose = COALESCE($6, purpose),
			status = COALESCE($7, status),
			updated_at = NOW()
		WHERE id = $1
		  AND status != 'CANCELLED'
	`

	tag, err := q.Exec(ctx, query,
		req.ID,
		req.CabinID,
		req.Date,
		req.StartTime,
		req.EndTime,
		req.Purpose,
		req.Status,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return cabin.ErrBookingConflict
		}
		return fmt.Errorf("failed to update cabin booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM cabin_bookings WHERE id = $1)`, req.ID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check cabin booking existence: %w", err)
		}
		if !exists {
			return cabin.ErrBookingNotFound
		}
		return cabin.ErrBookingCancelled
	}
	return nil
}

// UpdateStatus implements cabin.BookingRepository.
func (r *cabinBookingRepository) UpdateStatus(ctx context.Context, id string, status cabin.BookingStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE cabin_bookings SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("failed to update cabin booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cabin.ErrBookingNotFound
	}
	return nil
}

// ListByUser implements cabin.BookingRepository.
func (r *cabinBookingRepository) ListByUser(ctx context.Context, userID string) ([]cabin.Booking, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.user_id, b.cabin_id, b.date, b.start_time, b.end_time,
			   b.purpose, b.status, b.created_at, b.updated_at,
			   c.name AS cabin_name
		FROM cabin_bookings b
		LEFT JOIN cabins c ON c.id = b.cabin_id
		WHERE b.user_id = $1
		ORDER BY b.date DESC, b.start_time DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cabin bookings: %w", err)
	}
	defer rows.Close()

	var bookings []cabin.Booking
	for rows.Next() {
		var b cabin.Booking
		err := rows.Scan(
			&b.ID, &b.UserID, &b.CabinID, &b.Date, &b.StartTime, &b.EndTime,
			&b.Purpose, &b.Status, &b.CreatedAt, &b.UpdatedAt, &b.CabinName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cabin booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// HasOverlapping implements cabin.BookingRepository. Two windows overlap
// when each starts before the other ends; "HH:MM" strings compare
// correctly as text.
func (r *cabinBookingRepository) HasOverlapping(ctx context.Context, cabinID string, date time.Time, startTime, endTime string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM cabin_bookings
			WHERE cabin_id = $1
			  AND date = $2
			  AND status != 'CANCELLED'
			  AND start_time < $4
			  AND end_time > $3
			  AND ($5::uuid IS NULL OR id != $5)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, cabinID, date, startTime, endTime, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	return exists, nil
}
