package service

import (
	"errors"
	"fmt"

	"github.com/wb-go/wbf/ginext"

	"eventhub/internal/dto"
	"eventhub/internal/model"
	"eventhub/internal/notifier"
	"eventhub/internal/registration"
	"eventhub/internal/repo"
	"eventhub/pkg/validator"
)

func (s *Service) SendReminder(c *ginext.Context) {
	s.broadcast(c, model.NotificationTypeReminder)
}

func (s *Service) SendUpdateNotice(c *ginext.Context) {
	s.broadcast(c, model.NotificationTypeUpdate)
}

func (s *Service) broadcast(c *ginext.Context, kind model.NotificationType) {
	eventID := c.Param("id")

	result, err := s.broadcaster.Broadcast(c.Request.Context(), eventID, kind)
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrEventNotFound):
			dto.EventNotFoundError(c)
		case errors.Is(err, notifier.ErrNoAttendees):
			dto.NoAttendeesError(c)
		default:
			s.log.Error().Err(err).
				Str("event_id", eventID).
				Msgf("failed to broadcast %s", kind)
			dto.InternalServerError(c)
		}
		return
	}

	s.log.Info().
		Str("event_id", eventID).
		Int("attempted", result.Attempted).
		Int("skipped", result.Skipped).
		Msgf("%s broadcast finished", kind)
	dto.SuccessResponse(c, dto.BroadcastResponse{
		Attempted: result.Attempted,
		Skipped:   result.Skipped,
	})
}

func (s *Service) SendCustomNotification(c *ginext.Context) {
	if !isAdmin(identityFrom(c)) {
		dto.ForbiddenError(c, "Only admins can send custom notifications")
		return
	}

	var req dto.CustomNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(c, req); verr != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	notification, err := s.broadcaster.SendCustom(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			dto.UserNotFoundError(c)
			return
		}
		s.log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to send custom notification")
		dto.InternalServerError(c)
		return
	}

	dto.SuccessCreatedResponse(c, dto.NewNotificationResponse(notification))
}

func (s *Service) ListMyNotifications(c *ginext.Context) {
	caller := identityFrom(c)

	notifications, err := s.notifications.ListByUser(c.Request.Context(), caller.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", caller.UserID).Msg("failed to list notifications")
		dto.InternalServerError(c)
		return
	}

	resp := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		resp = append(resp, dto.NewNotificationResponse(&notifications[i]))
	}
	dto.SuccessResponse(c, resp)
}
