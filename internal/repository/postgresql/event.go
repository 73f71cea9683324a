package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/event"
	"github.com/officehub/officehub-backend-go/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.Repository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, date, type, color, description, created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (event.Event, error) {
	var e event.Event
	var eventType string
	err := row.Scan(
		&e.ID, &e.Title, &e.Date, &eventType, &e.Color, &e.Description,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return event.Event{}, err
	}

	parsed, ok := event.ParseType(eventType)
	if !ok {
		return event.Event{}, fmt.Errorf("invalid event type: %q", eventType)
	}
	e.Type = parsed
	return e, nil
}

// Create implements event.Repository.
func (r *eventRepository) Create(ctx context.Context, e event.Event) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO events (title, date, type, color, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.Title,
		e.Date,
		string(e.Type),
		e.Color,
		e.Description,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return event.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	return e, nil
}

// GetByID implements event.Repository.
func (r *eventRepository) GetByID(ctx context.Context, id string) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	e, err := scanEvent(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrEventNotFound
		}
		return event.Event{}, fmt.Errorf("failed to get event by ID: %w", err)
	}
	return e, nil
}

// List implements event.Repository.
func (r *eventRepository) List(ctx context.Context, filter event.Filter) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := `1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
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

	query := `SELECT ` + eventColumns + ` FROM events WHERE ` + baseWhere + ` ORDER BY date ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Delete implements event.Repository.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return event.ErrEventNotFound
	}
	return nil
}
