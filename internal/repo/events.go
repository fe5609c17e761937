package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventhub/internal/model"
	"eventhub/internal/registration"
)

// EventRepo persists events, including the denormalized attendee set.
type EventRepo struct {
	*DB
}

func NewEventRepo(db *DB) *EventRepo {
	return &EventRepo{DB: db}
}

func (r *EventRepo) CreateEvent(ctx context.Context, e *model.Event) error {
	query := `
		INSERT INTO events (id, title, description, date, location, capacity, attendees, organizer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Title, e.Description, e.Date, e.Location, e.Capacity,
		pq.Array(e.Attendees), e.Organizer, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *EventRepo) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	query := `
		SELECT id, title, description, date, location, capacity, attendees, organizer, created_at, updated_at
		FROM events WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, eventID)

	var e model.Event
	if err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Location,
		&e.Capacity, pq.Array(&e.Attendees), &e.Organizer, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registration.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &e, nil
}

func (r *EventRepo) GetAllEvents(ctx context.Context) ([]model.Event, error) {
	query := `
		SELECT id, title, description, date, location, capacity, attendees, organizer, created_at, updated_at
		FROM events
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Date, &e.Location,
			&e.Capacity, pq.Array(&e.Attendees), &e.Organizer, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepo) UpdateEvent(ctx context.Context, e *model.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, date = $4, location = $5, capacity = $6, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		e.ID, e.Title, e.Description, e.Date, e.Location, e.Capacity,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return registration.ErrEventNotFound
	}
	return nil
}

func (r *EventRepo) DeleteEvent(ctx context.Context, eventID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return registration.ErrEventNotFound
	}
	return nil
}

// AppendAttendee adds the user to the attendee set with the capacity and
// duplicate checks inside the UPDATE itself, so concurrent registrations are
// serialized by the event row and can never jointly exceed capacity.
func (r *EventRepo) AppendAttendee(ctx context.Context, eventID, userID string) error {
	query := `
		UPDATE events
		SET attendees = array_append(attendees, $2), updated_at = NOW()
		WHERE id = $1
		  AND cardinality(attendees) < capacity
		  AND NOT (attendees @> ARRAY[$2]::text[])
	`
	res, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to append attendee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check event existence: %w", err)
		}
		if !exists {
			return registration.ErrEventNotFound
		}
		return registration.ErrConditionFailed
	}
	return nil
}

func (r *EventRepo) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	query := `
		UPDATE events
		SET attendees = array_remove(attendees, $2), updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove attendee: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return registration.ErrEventNotFound
	}
	return nil
}
