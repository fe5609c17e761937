// Package consumerWorker drains the notification queue and delivers e-mail.
package consumerWorker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/wb-go/wbf/zlog"

	"eventhub/internal/model"
	"eventhub/internal/notifier"
	"eventhub/internal/repo"
)

type NotificationSource interface {
	GetNotification(ctx context.Context, notificationID string) (*model.Notification, error)
	MarkSent(ctx context.Context, notificationID string, sentAt time.Time) error
}

type UserSource interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

type Sender interface {
	Send(n *model.Notification, recipientEmail string) error
}

type Consumer interface {
	Consume(handler func([]byte) error) error
}

type Reader struct {
	consumer      Consumer
	notifications NotificationSource
	users         UserSource
	mailer        Sender
	done          chan struct{}
	cancel        context.CancelFunc
}

func NewReader(consumer Consumer, notifications NotificationSource, users UserSource, mailer Sender) *Reader {
	return &Reader{
		consumer:      consumer,
		notifications: notifications,
		users:         users,
		mailer:        mailer,
		done:          make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("notification delivery worker started")

	go func() {
		defer close(r.done)

		if err := r.consumer.Consume(func(body []byte) error {
			return r.Handle(cctx, body)
		}); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("notification delivery worker stopped by context")
	}()
}

// Handle processes one queue message. A returned error requeues the message;
// poison messages and unknown records are dropped so they cannot wedge the
// queue. Delivery failures are logged and the row stays unsent.
func (r *Reader) Handle(ctx context.Context, body []byte) error {
	var msg notifier.QueuedNotification
	if err := json.Unmarshal(body, &msg); err != nil {
		zlog.Logger.Error().Err(err).Msgf("dropping malformed message: %s", string(body))
		return nil
	}

	notification, err := r.notifications.GetNotification(ctx, msg.NotificationID)
	if err != nil {
		if errors.Is(err, repo.ErrNotificationNotFound) {
			zlog.Logger.Warn().
				Str("notification_id", msg.NotificationID).
				Msg("queued notification no longer exists, dropping")
			return nil
		}
		return err
	}
	if notification.SentAt != nil {
		return nil
	}

	user, err := r.users.GetUser(ctx, notification.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			zlog.Logger.Warn().
				Str("notification_id", notification.ID).
				Str("user_id", notification.UserID).
				Msg("recipient no longer exists, dropping")
			return nil
		}
		return err
	}

	if err := r.mailer.Send(notification, user.Email); err != nil {
		zlog.Logger.Warn().Err(err).
			Str("notification_id", notification.ID).
			Str("user_id", user.ID).
			Msg("delivery failed, leaving notification unsent")
		return nil
	}

	if err := r.notifications.MarkSent(ctx, notification.ID, time.Now().UTC()); err != nil {
		zlog.Logger.Error().Err(err).
			Str("notification_id", notification.ID).
			Msg("failed to stamp sent_at")
	}
	return nil
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
