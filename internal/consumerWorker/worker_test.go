package consumerWorker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/model"
	"eventhub/internal/repo"
)

type fakeNotifications struct {
	byID   map[string]*model.Notification
	sent   []string
	getErr error
}

func (f *fakeNotifications) GetNotification(_ context.Context, id string) (*model.Notification, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	n, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotificationNotFound
	}
	return n, nil
}

func (f *fakeNotifications) MarkSent(_ context.Context, id string, _ time.Time) error {
	f.sent = append(f.sent, id)
	return nil
}

type fakeUsers struct {
	byID map[string]*model.User
}

func (f *fakeUsers) GetUser(_ context.Context, id string) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	return u, nil
}

type fakeSender struct {
	delivered []string
	fail      bool
}

func (f *fakeSender) Send(_ *model.Notification, recipientEmail string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.delivered = append(f.delivered, recipientEmail)
	return nil
}

func workerFixture() (*fakeNotifications, *fakeUsers, *fakeSender, *Reader) {
	notifications := &fakeNotifications{byID: map[string]*model.Notification{
		"n1": {
			ID:      "n1",
			UserID:  "user-a",
			Type:    model.NotificationTypeConfirmation,
			Message: "confirmed",
		},
	}}
	users := &fakeUsers{byID: map[string]*model.User{
		"user-a": {ID: "user-a", Email: "a@example.com"},
	}}
	sender := &fakeSender{}
	reader := NewReader(nil, notifications, users, sender)
	return notifications, users, sender, reader
}

func TestHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers and stamps", func(t *testing.T) {
		notifications, _, sender, reader := workerFixture()

		err := reader.Handle(ctx, []byte(`{"notification_id":"n1"}`))
		require.NoError(t, err)

		assert.Equal(t, []string{"a@example.com"}, sender.delivered)
		assert.Equal(t, []string{"n1"}, notifications.sent)
	})

	t.Run("malformed message is dropped", func(t *testing.T) {
		_, _, sender, reader := workerFixture()

		err := reader.Handle(ctx, []byte(`{broken`))
		assert.NoError(t, err)
		assert.Empty(t, sender.delivered)
	})

	t.Run("unknown notification is dropped", func(t *testing.T) {
		_, _, sender, reader := workerFixture()

		err := reader.Handle(ctx, []byte(`{"notification_id":"ghost"}`))
		assert.NoError(t, err)
		assert.Empty(t, sender.delivered)
	})

	t.Run("transient store error requeues", func(t *testing.T) {
		notifications, _, _, reader := workerFixture()
		notifications.getErr = errors.New("connection reset")

		err := reader.Handle(ctx, []byte(`{"notification_id":"n1"}`))
		assert.Error(t, err)
	})

	t.Run("missing recipient is dropped", func(t *testing.T) {
		_, users, sender, reader := workerFixture()
		delete(users.byID, "user-a")

		err := reader.Handle(ctx, []byte(`{"notification_id":"n1"}`))
		assert.NoError(t, err)
		assert.Empty(t, sender.delivered)
	})

	t.Run("delivery failure leaves row unsent", func(t *testing.T) {
		notifications, _, sender, reader := workerFixture()
		sender.fail = true

		err := reader.Handle(ctx, []byte(`{"notification_id":"n1"}`))
		assert.NoError(t, err)
		assert.Empty(t, notifications.sent)
	})

	t.Run("already sent is skipped", func(t *testing.T) {
		notifications, _, sender, reader := workerFixture()
		sentAt := time.Now()
		notifications.byID["n1"].SentAt = &sentAt

		err := reader.Handle(ctx, []byte(`{"notification_id":"n1"}`))
		assert.NoError(t, err)
		assert.Empty(t, sender.delivered)
		assert.Empty(t, notifications.sent)
	})
}
