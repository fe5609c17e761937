package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventhub/internal/model"
)

// RegistrationRepo persists registration records.
type RegistrationRepo struct {
	*DB
}

func NewRegistrationRepo(db *DB) *RegistrationRepo {
	return &RegistrationRepo{DB: db}
}

func (r *RegistrationRepo) Create(ctx context.Context, reg *model.Registration) error {
	query := `
		INSERT INTO registrations (id, event_id, user_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		reg.ID, reg.EventID, reg.UserID, reg.Status, reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepo) FindConfirmed(ctx context.Context, eventID, userID string) (*model.Registration, error) {
	query := `
		SELECT id, event_id, user_id, status, created_at
		FROM registrations
		WHERE event_id = $1 AND user_id = $2 AND status = 'confirmed'
	`
	row := r.db.QueryRowContext(ctx, query, eventID, userID)

	var reg model.Registration
	if err := row.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}
	return &reg, nil
}

func (r *RegistrationRepo) Delete(ctx context.Context, registrationID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM registrations WHERE id = $1`, registrationID,
	); err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepo) DeleteByEvent(ctx context.Context, eventID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM registrations WHERE event_id = $1`, eventID,
	); err != nil {
		return fmt.Errorf("failed to delete event registrations: %w", err)
	}
	return nil
}

func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	query := `
		SELECT id, event_id, user_id, status, created_at
		FROM registrations
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, eventID)
}

func (r *RegistrationRepo) ListByUser(ctx context.Context, userID string) ([]model.Registration, error) {
	query := `
		SELECT id, event_id, user_id, status, created_at
		FROM registrations
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, userID)
}

func (r *RegistrationRepo) list(ctx context.Context, query string, arg any) ([]model.Registration, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
