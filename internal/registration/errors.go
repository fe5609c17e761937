package registration

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrCapacityExceeded     = errors.New("event is full")
	ErrConflict             = errors.New("lost registration race, retries exhausted")
	ErrForbidden            = errors.New("not allowed")

	// ErrConditionFailed is returned by EventStore.AppendAttendee when the
	// guarded write was rejected: at the moment of the write the attendee set
	// was at capacity or already contained the user.
	ErrConditionFailed = errors.New("attendee append condition failed")
)
