package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"eventhub/internal/model"
	"eventhub/internal/registration"
)

type EventStore interface {
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
}

type UserStore interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

// BroadcastResult reports how a fan-out went: Attempted notifications were
// recorded and queued, Skipped recipients failed resolution or recording.
type BroadcastResult struct {
	Attempted int `json:"attempted"`
	Skipped   int `json:"skipped"`
}

// Broadcaster fans a notification out to every attendee of an event.
type Broadcaster struct {
	events     EventStore
	users      UserStore
	dispatcher registration.Dispatcher
	log        *zerolog.Logger
}

func NewBroadcaster(events EventStore, users UserStore, dispatcher registration.Dispatcher, log *zerolog.Logger) *Broadcaster {
	return &Broadcaster{events: events, users: users, dispatcher: dispatcher, log: log}
}

// Broadcast sends a reminder or update notice to every attendee. Per-attendee
// failures are logged and skipped; the loop never aborts on one bad recipient.
func (b *Broadcaster) Broadcast(ctx context.Context, eventID string, kind model.NotificationType) (*BroadcastResult, error) {
	event, err := b.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(event.Attendees) == 0 {
		return nil, ErrNoAttendees
	}

	result := &BroadcastResult{}
	for _, attendeeID := range event.Attendees {
		user, err := b.users.GetUser(ctx, attendeeID)
		if err != nil {
			b.log.Warn().Err(err).
				Str("event_id", eventID).
				Str("user_id", attendeeID).
				Msgf("skipping %s recipient", kind)
			result.Skipped++
			continue
		}

		notification := &model.Notification{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			EventID:   event.ID,
			Type:      kind,
			Message:   broadcastMessage(kind, event.Title),
			CreatedAt: time.Now().UTC(),
		}
		if err := b.dispatcher.Enqueue(ctx, notification); err != nil {
			b.log.Warn().Err(err).
				Str("event_id", eventID).
				Str("user_id", user.ID).
				Msgf("failed to enqueue %s notification", kind)
			result.Skipped++
			continue
		}
		result.Attempted++
	}
	return result, nil
}

// SendCustom records and queues a free-text notification for a single user.
func (b *Broadcaster) SendCustom(ctx context.Context, userID, message string) (*model.Notification, error) {
	user, err := b.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	notification := &model.Notification{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Type:      model.NotificationTypeCustom,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := b.dispatcher.Enqueue(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func broadcastMessage(kind model.NotificationType, title string) string {
	switch kind {
	case model.NotificationTypeReminder:
		return fmt.Sprintf("Reminder: %q is coming up.", title)
	case model.NotificationTypeUpdate:
		return fmt.Sprintf("The event %q has been updated.", title)
	default:
		return fmt.Sprintf("Notification for event %q.", title)
	}
}
