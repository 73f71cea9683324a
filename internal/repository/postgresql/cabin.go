package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/cabin"
	"github.com/officehub/officehub-backend-go/internal/pkg/database"
)

type cabinRepository struct {
	db *database.DB
}

func NewCabinRepository(db *database.DB) cabin.CabinRepository {
	return &cabinRepository{db: db}
}

const cabinColumns = `id, name, capacity, open_time, close_time, max_booking_hours, color, description, is_active, created_at, updated_at`

func scanCabin(row interface{ Scan(...interface{}) error }) (cabin.Cabin, error) {
	var c cabin.Cabin
	err := row.Scan(
		&c.ID, &c.Name, &c.Capacity, &c.OpenTime, &c.CloseTime,
		&c.MaxBookingHours, &c.Color, &c.Description, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return cabin.Cabin{}, err
	}
	return c, nil
}

// Create implements cabin.CabinRepository.
func (r *cabinRepository) Create(ctx context.Context, c cabin.Cabin) (cabin.Cabin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cabins (name, capacity, open_time, close_time, max_booking_hours, color, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.Name,
		c.Capacity,
		c.OpenTime,
		c.CloseTime,
		c.MaxBookingHours,
		c.Color,
		c.Description,
		c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return cabin.Cabin{}, cabin.ErrCabinNameExists
		}
		return cabin.Cabin{}, fmt.Errorf("failed to create cabin: %w", err)
	}

	return c, nil
}

// GetByID implements cabin.CabinRepository.
func (r *cabinRepository) GetByID(ctx context.Context, id string) (cabin.Cabin, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + cabinColumns + ` FROM cabins WHERE id = $1`

	c, err := scanCabin(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cabin.Cabin{}, cabin.ErrCabinNotFound
		}
		return cabin.Cabin{}, fmt.Errorf("failed to get cabin by ID: %w", err)
	}
	return c, nil
}

// Update implements cabin.CabinRepository.
func (r *cabinRepository) Update(ctx context.Context, req cabin.UpdateCabinRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE cabins
		SET name = COALESCE($2, name),
			capacity = COALESCE($3, capacity),
			open_time = COALESCE($4, open_time),
			close_time = COALESCE($5, close_time),
			max_booking_hours = COALESCE($6, max_booking_hours),
			color = COALESCE($7, color),
			description = COALESCE($8, description),
			is_active = COALESCE($9, is_active),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		req.ID,
		req.Name,
		req.Capacity,
		req.OpenTime,
		req.CloseTime,
		req.MaxBookingHours,
		req.Color,
		req.Description,
		req.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return cabin.ErrCabinNameExists
		}
		return fmt.Errorf("failed to update cabin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cabin.ErrCabinNotFound
	}
	return nil
}

// Deactivate implements cabin.CabinRepository.
func (r *cabinRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE cabins SET is_active = false, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate cabin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cabin.ErrCabinNotFound
	}
	return nil
}

// List implements cabin.CabinRepository.
func (r *cabinRepository) List(ctx context.Context, bookingsPerCabin int) ([]cabin.Cabin, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+cabinColumns+` FROM cabins WHERE is_active = true ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cabins: %w", err)
	}
	defer rows.Close()

	var cabins []cabin.Cabin
	for rows.Next() {
		c, err := scanCabin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cabin: %w", err)
		}
		cabins = append(cabins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cabins: %w", err)
	}

	if bookingsPerCabin <= 0 {
		return cabins, nil
	}

	// Attach upcoming non-cancelled bookings per cabin in one round trip.
	bookingQuery := `
		SELECT b.id, b.user_id, b.cabin_id, b.date, b.start_time, b.end_time,
			   b.purpose, b.status, b.created_at, b.updated_at,
			   u.name AS user_name
		FROM (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY cabin_id ORDER BY date ASC, start_time ASC
			) AS rn
			FROM cabin_bookings
			WHERE status != 'CANCELLED'
			  AND date >= CURRENT_DATE
		) b
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.rn <= $1
		ORDER BY b.cabin_id, b.date ASC, b.start_time ASC
	`

	bookingRows, err := q.Query(ctx, bookingQuery, bookingsPerCabin)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming bookings: %w", err)
	}
	defer bookingRows.Close()

	byCabin := make(map[string][]cabin.Booking)
	for bookingRows.Next() {
		var b cabin.Booking
		err := bookingRows.Scan(
			&b.ID, &b.UserID, &b.CabinID, &b.Date, &b.StartTime, &b.EndTime,
			&b.Purpose, &b.Status, &b.CreatedAt, &b.UpdatedAt, &b.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		byCabin[b.CabinID] = append(byCabin[b.CabinID], b)
	}
	if err := bookingRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	for i := range cabins {
		cabins[i].UpcomingBookings = byCabin[cabins[i].ID]
	}
	return cabins, nil
}
