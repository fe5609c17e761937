// Package notifier records notifications and hands them to the delivery
// queue. Recording is the durable step; queue publishes are best-effort and an
// unsent row can always be re-driven later.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"eventhub/internal/model"
)

var ErrNoAttendees = errors.New("event has no attendees")

// QueuedNotification is the message body published to the delivery queue.
type QueuedNotification struct {
	NotificationID string `json:"notification_id"`
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
}

type Queue interface {
	Publish(message []byte) error
}

type Dispatcher struct {
	store NotificationStore
	queue Queue
	log   *zerolog.Logger
}

func NewDispatcher(store NotificationStore, queue Queue, log *zerolog.Logger) *Dispatcher {
	return &Dispatcher{store: store, queue: queue, log: log}
}

// Enqueue writes the notification row, then publishes its id for delivery.
// The write is the contract: if it fails the notification is lost and an
// error is returned; a failed publish only loses timeliness, so it is logged
// and swallowed.
func (d *Dispatcher) Enqueue(ctx context.Context, n *model.Notification) error {
	if err := d.store.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("record notification: %w", err)
	}

	payload, err := json.Marshal(QueuedNotification{NotificationID: n.ID})
	if err != nil {
		return fmt.Errorf("marshal queue message: %w", err)
	}
	if err := d.queue.Publish(payload); err != nil {
		d.log.Warn().Err(err).
			Str("notification_id", n.ID).
			Str("user_id", n.UserID).
			Msg("notification recorded but not queued")
	}
	return nil
}
