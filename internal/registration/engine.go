// Package registration holds the registration engine: it gates event capacity
// under concurrent requests, keeps the event attendee set and the registration
// records consistent, and emits notifications on state transitions.
package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"eventhub/internal/model"
)

// EventStore is the engine's view of event persistence.
type EventStore interface {
	// GetEvent returns ErrEventNotFound when the event does not exist.
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
	// AppendAttendee adds userID to the event's attendee set only if the set
	// is below capacity and does not already contain userID. The check and the
	// write are a single atomic operation in the store; a rejected write is
	// reported as ErrConditionFailed.
	AppendAttendee(ctx context.Context, eventID, userID string) error
	// RemoveAttendee is idempotent: removing an absent attendee is a no-op.
	RemoveAttendee(ctx context.Context, eventID, userID string) error
}

// RegistrationStore persists registration records.
type RegistrationStore interface {
	Create(ctx context.Context, reg *model.Registration) error
	// FindConfirmed returns (nil, nil) when no confirmed registration exists
	// for the pair.
	FindConfirmed(ctx context.Context, eventID, userID string) (*model.Registration, error)
	Delete(ctx context.Context, registrationID string) error
	DeleteByEvent(ctx context.Context, eventID string) error
	ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]model.Registration, error)
}

// Dispatcher records a notification durably and queues it for delivery.
type Dispatcher interface {
	Enqueue(ctx context.Context, n *model.Notification) error
}

// Identity is the resolved caller, as established by the auth middleware.
type Identity struct {
	UserID string
	Role   string
}

const (
	maxAppendAttempts = 3
	retryBaseDelay    = 25 * time.Millisecond
)

type Engine struct {
	events        EventStore
	registrations RegistrationStore
	dispatcher    Dispatcher
	log           *zerolog.Logger
}

func NewEngine(events EventStore, registrations RegistrationStore, dispatcher Dispatcher, log *zerolog.Logger) *Engine {
	return &Engine{
		events:        events,
		registrations: registrations,
		dispatcher:    dispatcher,
		log:           log,
	}
}

// Register confirms userID's attendance of eventID. The capacity check and the
// attendee append are one conditional write in the store, so two concurrent
// calls cannot both take the last slot. A successful registration enqueues a
// confirmation notification; enqueue failures are logged and never unwind the
// registration.
func (e *Engine) Register(ctx context.Context, eventID, userID string) (*model.Registration, error) {
	event, err := e.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	existing, err := e.registrations.FindConfirmed(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("find registration: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	// Fast-path reject; the conditional append below is what actually holds
	// under concurrency.
	if len(event.Attendees) >= event.Capacity {
		return nil, ErrCapacityExceeded
	}

	if err := e.appendAttendee(ctx, eventID, userID); err != nil {
		return nil, err
	}

	reg := &model.Registration{
		ID:        uuid.NewString(),
		EventID:   eventID,
		UserID:    userID,
		Status:    model.RegistrationStatusConfirmed,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.registrations.Create(ctx, reg); err != nil {
		if rbErr := e.events.RemoveAttendee(ctx, eventID, userID); rbErr != nil {
			e.log.Error().Err(rbErr).
				Str("event_id", eventID).
				Str("user_id", userID).
				Msg("failed to roll back attendee append")
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	notification := &model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventID:   eventID,
		Type:      model.NotificationTypeConfirmation,
		Message:   fmt.Sprintf("Your registration for %q is confirmed.", event.Title),
		CreatedAt: time.Now().UTC(),
	}
	if err := e.dispatcher.Enqueue(ctx, notification); err != nil {
		e.log.Warn().Err(err).
			Str("event_id", eventID).
			Str("user_id", userID).
			Msg("failed to enqueue confirmation notification")
	}

	return reg, nil
}

// appendAttendee drives the conditional write with a bounded retry. A rejected
// condition is re-decided against a fresh read; transient store errors are
// retried with doubling delay and reported as ErrConflict once attempts run
// out.
func (e *Engine) appendAttendee(ctx context.Context, eventID, userID string) error {
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		err := e.events.AppendAttendee(ctx, eventID, userID)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrEventNotFound):
			return err
		case errors.Is(err, ErrConditionFailed):
			event, getErr := e.events.GetEvent(ctx, eventID)
			if getErr != nil {
				return getErr
			}
			if containsAttendee(event.Attendees, userID) {
				return ErrAlreadyRegistered
			}
			if len(event.Attendees) >= event.Capacity {
				return ErrCapacityExceeded
			}
			// The slot freed up between the write and this read; retry.
		default:
			e.log.Warn().Err(err).
				Str("event_id", eventID).
				Int("attempt", attempt).
				Msg("attendee append failed")
		}

		if attempt >= maxAppendAttempts {
			return ErrConflict
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
}

// Cancel frees userID's slot on eventID. The attendee is removed before the
// registration row is deleted: attendee removal is idempotent, so a retry
// after a partial failure converges instead of stranding the slot.
func (e *Engine) Cancel(ctx context.Context, eventID, userID string) error {
	reg, err := e.registrations.FindConfirmed(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("find registration: %w", err)
	}
	if reg == nil {
		return ErrRegistrationNotFound
	}

	if _, err := e.events.GetEvent(ctx, eventID); err != nil {
		return err
	}

	if err := e.events.RemoveAttendee(ctx, eventID, userID); err != nil {
		return fmt.Errorf("remove attendee: %w", err)
	}
	if err := e.registrations.Delete(ctx, reg.ID); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

// ListForEvent returns an event's registrations to its organizer or an admin.
func (e *Engine) ListForEvent(ctx context.Context, eventID string, caller Identity) ([]model.Registration, error) {
	event, err := e.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Organizer != caller.UserID && caller.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return e.registrations.ListByEvent(ctx, eventID)
}

// ListForUser returns the caller's own registrations.
func (e *Engine) ListForUser(ctx context.Context, userID string) ([]model.Registration, error) {
	return e.registrations.ListByUser(ctx, userID)
}

// CascadeDelete removes all registrations of a deleted event.
func (e *Engine) CascadeDelete(ctx context.Context, eventID string) error {
	return e.registrations.DeleteByEvent(ctx, eventID)
}

func containsAttendee(attendees []string, userID string) bool {
	for _, a := range attendees {
		if a == userID {
			return true
		}
	}
	return false
}
