package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"

	"eventhub/internal/model"
)

const (
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	Unauthorized          = "UNAUTHORIZED"
	Forbidden             = "FORBIDDEN"
	InvalidCredentials    = "INVALID_CREDENTIALS"
	EmailTaken            = "EMAIL_TAKEN"
	EventNotFound         = "EVENT_NOT_FOUND"
	EventFull             = "EVENT_FULL"
	UserNotFound          = "USER_NOT_FOUND"
	RegistrationNotFound  = "REGISTRATION_NOT_FOUND"
	RegistrationDuplicate = "REGISTRATION_DUPLICATE"
	RegistrationConflict  = "REGISTRATION_CONFLICT"
	NoAttendees           = "NO_ATTENDEES"
)

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=64"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required,future"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity" validate:"required,positive"`
}

type UpdateEventRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity" validate:"required,positive"`
}

type EventResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Date           time.Time `json:"date"`
	Location       string    `json:"location,omitempty"`
	Capacity       int       `json:"capacity"`
	AvailableSeats int       `json:"available_seats"`
	Organizer      string    `json:"organizer"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RegistrationResponse struct {
	ID        string                   `json:"id"`
	EventID   string                   `json:"event_id"`
	UserID    string                   `json:"user_id"`
	Status    model.RegistrationStatus `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
}

type NotificationResponse struct {
	ID        string                 `json:"id"`
	EventID   string                 `json:"event_id,omitempty"`
	Type      model.NotificationType `json:"type"`
	Message   string                 `json:"message"`
	CreatedAt time.Time              `json:"created_at"`
	SentAt    *time.Time             `json:"sent_at,omitempty"`
}

type CustomNotificationRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Message string `json:"message" validate:"required,max=1000"`
}

type BroadcastResponse struct {
	Attempted int `json:"attempted"`
	Skipped   int `json:"skipped"`
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func NewEventResponse(e *model.Event) EventResponse {
	return EventResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		Date:           e.Date,
		Location:       e.Location,
		Capacity:       e.Capacity,
		AvailableSeats: e.Capacity - len(e.Attendees),
		Organizer:      e.Organizer,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func NewRegistrationResponse(r *model.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:        r.ID,
		EventID:   r.EventID,
		UserID:    r.UserID,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

func NewNotificationResponse(n *model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		EventID:   n.EventID,
		Type:      n.Type,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
		SentAt:    n.SentAt,
	}
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func errorResponse(c *ginext.Context, status int, code, desc string) {
	c.JSON(status, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func BadResponseError(c *ginext.Context, code, desc string) {
	errorResponse(c, 400, code, desc)
}

func UnauthorizedError(c *ginext.Context) {
	errorResponse(c, 401, Unauthorized, "Missing or invalid access token")
}

func ForbiddenError(c *ginext.Context, desc string) {
	errorResponse(c, 403, Forbidden, desc)
}

func InvalidCredentialsError(c *ginext.Context) {
	errorResponse(c, 400, InvalidCredentials, "Invalid email or password")
}

func EmailTakenError(c *ginext.Context) {
	errorResponse(c, 400, EmailTaken, "A user with this email already exists")
}

func EventNotFoundError(c *ginext.Context) {
	errorResponse(c, 404, EventNotFound, "Event not found")
}

func UserNotFoundError(c *ginext.Context) {
	errorResponse(c, 404, UserNotFound, "User not found")
}

func RegistrationNotFoundError(c *ginext.Context) {
	errorResponse(c, 404, RegistrationNotFound, "Registration not found")
}

func RegistrationDuplicateError(c *ginext.Context) {
	errorResponse(c, 409, RegistrationDuplicate, "You have already registered for this event")
}

func EventFullError(c *ginext.Context) {
	errorResponse(c, 409, EventFull, "Event is full")
}

func RegistrationConflictError(c *ginext.Context) {
	errorResponse(c, 409, RegistrationConflict, "Could not complete registration, please retry")
}

func NoAttendeesError(c *ginext.Context) {
	errorResponse(c, 400, NoAttendees, "Event has no attendees")
}

func InternalServerError(c *ginext.Context) {
	errorResponse(c, 500, ServiceUnavailable, InternalError)
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}
