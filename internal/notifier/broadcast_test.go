package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/model"
	"eventhub/internal/registration"
	"eventhub/internal/repo"
)

type fakeEventStore struct {
	events map[string]*model.Event
}

func (s *fakeEventStore) GetEvent(_ context.Context, eventID string) (*model.Event, error) {
	e, ok := s.events[eventID]
	if !ok {
		return nil, registration.ErrEventNotFound
	}
	return e, nil
}

type fakeUserStore struct {
	users map[string]*model.User
}

func (s *fakeUserStore) GetUser(_ context.Context, userID string) (*model.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	return u, nil
}

type fakeNotificationStore struct {
	created []model.Notification
	fail    bool
}

func (s *fakeNotificationStore) CreateNotification(_ context.Context, n *model.Notification) error {
	if s.fail {
		return errors.New("store unavailable")
	}
	s.created = append(s.created, *n)
	return nil
}

type fakeQueue struct {
	published [][]byte
	fail      bool
}

func (q *fakeQueue) Publish(message []byte) error {
	if q.fail {
		return errors.New("broker down")
	}
	q.published = append(q.published, message)
	return nil
}

func broadcastFixture(attendees ...string) (*fakeEventStore, *fakeUserStore) {
	events := &fakeEventStore{events: map[string]*model.Event{
		"ev1": {
			ID:        "ev1",
			Title:     "Go Meetup",
			Capacity:  10,
			Attendees: attendees,
			Organizer: "organizer-1",
			Date:      time.Now().Add(24 * time.Hour),
		},
	}}
	users := &fakeUserStore{users: make(map[string]*model.User)}
	for _, id := range attendees {
		users.users[id] = &model.User{ID: id, Username: id, Email: id + "@example.com", Role: model.RoleUser}
	}
	return events, users
}

func newTestBroadcaster(events *fakeEventStore, users *fakeUserStore, store *fakeNotificationStore, queue *fakeQueue) *Broadcaster {
	log := zerolog.Nop()
	dispatcher := NewDispatcher(store, queue, &log)
	return NewBroadcaster(events, users, dispatcher, &log)
}

func TestBroadcast(t *testing.T) {
	ctx := context.Background()

	t.Run("reaches every attendee", func(t *testing.T) {
		events, users := broadcastFixture("user-a", "user-b", "user-c")
		store := &fakeNotificationStore{}
		queue := &fakeQueue{}

		result, err := newTestBroadcaster(events, users, store, queue).
			Broadcast(ctx, "ev1", model.NotificationTypeReminder)
		require.NoError(t, err)

		assert.Equal(t, 3, result.Attempted)
		assert.Equal(t, 0, result.Skipped)
		assert.Len(t, store.created, 3)
		assert.Len(t, queue.published, 3)
		for _, n := range store.created {
			assert.Equal(t, model.NotificationTypeReminder, n.Type)
			assert.Equal(t, "ev1", n.EventID)
		}
	})

	t.Run("skips unresolvable attendee", func(t *testing.T) {
		events, users := broadcastFixture("user-a", "user-b", "user-c")
		delete(users.users, "user-b")
		store := &fakeNotificationStore{}

		result, err := newTestBroadcaster(events, users, store, &fakeQueue{}).
			Broadcast(ctx, "ev1", model.NotificationTypeUpdate)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Attempted)
		assert.Equal(t, 1, result.Skipped)
		assert.Len(t, store.created, 2)
	})

	t.Run("unknown event", func(t *testing.T) {
		events, users := broadcastFixture("user-a")

		_, err := newTestBroadcaster(events, users, &fakeNotificationStore{}, &fakeQueue{}).
			Broadcast(ctx, "missing", model.NotificationTypeReminder)
		assert.ErrorIs(t, err, registration.ErrEventNotFound)
	})

	t.Run("no attendees", func(t *testing.T) {
		events, users := broadcastFixture()

		_, err := newTestBroadcaster(events, users, &fakeNotificationStore{}, &fakeQueue{}).
			Broadcast(ctx, "ev1", model.NotificationTypeReminder)
		assert.ErrorIs(t, err, ErrNoAttendees)
	})

	t.Run("recording failure skips, not aborts", func(t *testing.T) {
		events, users := broadcastFixture("user-a", "user-b")
		store := &fakeNotificationStore{fail: true}

		result, err := newTestBroadcaster(events, users, store, &fakeQueue{}).
			Broadcast(ctx, "ev1", model.NotificationTypeReminder)
		require.NoError(t, err)

		assert.Equal(t, 0, result.Attempted)
		assert.Equal(t, 2, result.Skipped)
	})
}

func TestDispatcher(t *testing.T) {
	ctx := context.Background()
	log := zerolog.Nop()

	notification := func() *model.Notification {
		return &model.Notification{
			ID:        "n1",
			UserID:    "user-a",
			Type:      model.NotificationTypeConfirmation,
			Message:   "hi",
			CreatedAt: time.Now(),
		}
	}

	t.Run("records then publishes", func(t *testing.T) {
		store := &fakeNotificationStore{}
		queue := &fakeQueue{}
		d := NewDispatcher(store, queue, &log)

		require.NoError(t, d.Enqueue(ctx, notification()))
		assert.Len(t, store.created, 1)
		require.Len(t, queue.published, 1)
		assert.JSONEq(t, `{"notification_id":"n1"}`, string(queue.published[0]))
	})

	t.Run("publish failure is swallowed", func(t *testing.T) {
		store := &fakeNotificationStore{}
		d := NewDispatcher(store, &fakeQueue{fail: true}, &log)

		require.NoError(t, d.Enqueue(ctx, notification()))
		assert.Len(t, store.created, 1)
	})

	t.Run("record failure is surfaced", func(t *testing.T) {
		queue := &fakeQueue{}
		d := NewDispatcher(&fakeNotificationStore{fail: true}, queue, &log)

		assert.Error(t, d.Enqueue(ctx, notification()))
		assert.Empty(t, queue.published)
	})
}

func TestSendCustom(t *testing.T) {
	ctx := context.Background()

	t.Run("records for known user", func(t *testing.T) {
		events, users := broadcastFixture("user-a")
		store := &fakeNotificationStore{}

		n, err := newTestBroadcaster(events, users, store, &fakeQueue{}).
			SendCustom(ctx, "user-a", "maintenance window tonight")
		require.NoError(t, err)

		assert.Equal(t, model.NotificationTypeCustom, n.Type)
		assert.Empty(t, n.EventID)
		require.Len(t, store.created, 1)
		assert.Equal(t, "maintenance window tonight", store.created[0].Message)
	})

	t.Run("unknown user", func(t *testing.T) {
		events, users := broadcastFixture()

		_, err := newTestBroadcaster(events, users, &fakeNotificationStore{}, &fakeQueue{}).
			SendCustom(ctx, "ghost", "hello")
		assert.ErrorIs(t, err, repo.ErrUserNotFound)
	})
}
