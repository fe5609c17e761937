package service

import (
	"errors"

	"github.com/wb-go/wbf/ginext"

	"eventhub/internal/dto"
	"eventhub/internal/registration"
)

func (s *Service) Register(c *ginext.Context) {
	eventID := c.Param("id")
	caller := identityFrom(c)

	reg, err := s.engine.Register(c.Request.Context(), eventID, caller.UserID)
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrEventNotFound):
			dto.EventNotFoundError(c)
		case errors.Is(err, registration.ErrAlreadyRegistered):
			dto.RegistrationDuplicateError(c)
		case errors.Is(err, registration.ErrCapacityExceeded):
			dto.EventFullError(c)
		case errors.Is(err, registration.ErrConflict):
			dto.RegistrationConflictError(c)
		default:
			s.log.Error().Err(err).
				Str("event_id", eventID).
				Str("user_id", caller.UserID).
				Msg("failed to register")
			dto.InternalServerError(c)
		}
		return
	}

	s.log.Info().
		Str("registration_id", reg.ID).
		Str("event_id", eventID).
		Str("user_id", caller.UserID).
		Msg("registration created successfully")
	dto.SuccessCreatedResponse(c, dto.NewRegistrationResponse(reg))
}

func (s *Service) CancelRegistration(c *ginext.Context) {
	eventID := c.Param("id")
	caller := identityFrom(c)

	if err := s.engine.Cancel(c.Request.Context(), eventID, caller.UserID); err != nil {
		switch {
		case errors.Is(err, registration.ErrRegistrationNotFound):
			dto.RegistrationNotFoundError(c)
		case errors.Is(err, registration.ErrEventNotFound):
			dto.EventNotFoundError(c)
		default:
			s.log.Error().Err(err).
				Str("event_id", eventID).
				Str("user_id", caller.UserID).
				Msg("failed to cancel registration")
			dto.InternalServerError(c)
		}
		return
	}

	s.log.Info().
		Str("event_id", eventID).
		Str("user_id", caller.UserID).
		Msg("registration cancelled")
	dto.SuccessResponse(c, nil)
}

func (s *Service) ListEventRegistrations(c *ginext.Context) {
	eventID := c.Param("id")

	regs, err := s.engine.ListForEvent(c.Request.Context(), eventID, identityFrom(c))
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrEventNotFound):
			dto.EventNotFoundError(c)
		case errors.Is(err, registration.ErrForbidden):
			dto.ForbiddenError(c, "Only the organizer or an admin can view this event's registrations")
		default:
			s.log.Error().Err(err).Str("event_id", eventID).Msg("failed to list registrations")
			dto.InternalServerError(c)
		}
		return
	}

	resp := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		resp = append(resp, dto.NewRegistrationResponse(&regs[i]))
	}
	dto.SuccessResponse(c, resp)
}

func (s *Service) ListMyRegistrations(c *ginext.Context) {
	caller := identityFrom(c)

	regs, err := s.engine.ListForUser(c.Request.Context(), caller.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", caller.UserID).Msg("failed to list registrations")
		dto.InternalServerError(c)
		return
	}

	resp := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		resp = append(resp, dto.NewRegistrationResponse(&regs[i]))
	}
	dto.SuccessResponse(c, resp)
}
