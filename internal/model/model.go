package model

import "time"

type RegistrationStatus string

const (
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

type NotificationType string

const (
	NotificationTypeConfirmation NotificationType = "confirmation"
	NotificationTypeReminder     NotificationType = "reminder"
	NotificationTypeUpdate       NotificationType = "update"
	NotificationTypeCustom       NotificationType = "custom"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Event struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description,omitempty" json:"description,omitempty"`
	Date        time.Time `db:"date" json:"date"`
	Location    string    `db:"location,omitempty" json:"location,omitempty"`
	Capacity    int       `db:"capacity" json:"capacity"`
	Attendees   []string  `db:"attendees" json:"attendees"`
	Organizer   string    `db:"organizer" json:"organizer"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Registration struct {
	ID        string             `db:"id" json:"id"`
	EventID   string             `db:"event_id" json:"event_id"`
	UserID    string             `db:"user_id" json:"user_id"`
	Status    RegistrationStatus `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}

// Notification rows are immutable after creation; only SentAt is stamped
// by the delivery worker once the e-mail goes out.
type Notification struct {
	ID        string           `db:"id" json:"id"`
	UserID    string           `db:"user_id" json:"user_id"`
	EventID   string           `db:"event_id,omitempty" json:"event_id,omitempty"`
	Type      NotificationType `db:"type" json:"type"`
	Message   string           `db:"message" json:"message"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	SentAt    *time.Time       `db:"sent_at,omitempty" json:"sent_at,omitempty"`
}

type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
