package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/model"
)

// NotificationRepo persists notification records. Rows are written once; the
// only later mutation is the sent_at stamp from the delivery worker.
type NotificationRepo struct {
	*DB
}

func NewNotificationRepo(db *DB) *NotificationRepo {
	return &NotificationRepo{DB: db}
}

func (r *NotificationRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, event_id, type, message, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.EventID, n.Type, n.Message, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) GetNotification(ctx context.Context, notificationID string) (*model.Notification, error) {
	query := `
		SELECT id, user_id, COALESCE(event_id, ''), type, message, created_at, sent_at
		FROM notifications
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, notificationID)

	var n model.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.EventID, &n.Type, &n.Message, &n.CreatedAt, &n.SentAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &n, nil
}

func (r *NotificationRepo) MarkSent(ctx context.Context, notificationID string, sentAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET sent_at = $2 WHERE id = $1 AND sent_at IS NULL`,
		notificationID, sentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	query := `
		SELECT id, user_id, COALESCE(event_id, ''), type, message, created_at, sent_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.EventID, &n.Type, &n.Message, &n.CreatedAt, &n.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
