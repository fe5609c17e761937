package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"

	"eventhub/internal/dto"
	"eventhub/internal/model"
	"eventhub/internal/registration"
	"eventhub/pkg/validator"
)

func (s *Service) CreateEvent(c *ginext.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.log.Error().Err(err).Msg("failed to parse create event request")
		dto.BadResponseError(c, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(c, req); verr != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	caller := identityFrom(c)
	now := time.Now().UTC()
	event := &model.Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Attendees:   []string{},
		Organizer:   caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.events.CreateEvent(c.Request.Context(), event); err != nil {
		s.log.Error().Err(err).Msg("failed to create event in DB")
		dto.InternalServerError(c)
		return
	}

	s.log.Info().Str("event_id", event.ID).Msg("event created successfully")
	dto.SuccessCreatedResponse(c, dto.NewEventResponse(event))
}

func (s *Service) GetAllEvents(c *ginext.Context) {
	events, err := s.events.GetAllEvents(c.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events")
		dto.InternalServerError(c)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, dto.NewEventResponse(&events[i]))
	}
	dto.SuccessResponse(c, resp)
}

func (s *Service) GetEvent(c *ginext.Context) {
	event, err := s.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, registration.ErrEventNotFound) {
			dto.EventNotFoundError(c)
			return
		}
		s.log.Error().Err(err).Msg("failed to get event")
		dto.InternalServerError(c)
		return
	}
	dto.SuccessResponse(c, dto.NewEventResponse(event))
}

func (s *Service) UpdateEvent(c *ginext.Context) {
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(c, req); verr != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	event, err := s.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, registration.ErrEventNotFound) {
			dto.EventNotFoundError(c)
			return
		}
		s.log.Error().Err(err).Msg("failed to load event for update")
		dto.InternalServerError(c)
		return
	}

	caller := identityFrom(c)
	if event.Organizer != caller.UserID && !isAdmin(caller) {
		dto.ForbiddenError(c, "Only the organizer or an admin can update this event")
		return
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Date = req.Date
	event.Location = req.Location
	event.Capacity = req.Capacity
	if err := s.events.UpdateEvent(c.Request.Context(), event); err != nil {
		s.log.Error().Err(err).Msg("failed to update event")
		dto.InternalServerError(c)
		return
	}

	s.log.Info().Str("event_id", event.ID).Msg("event updated")
	dto.SuccessResponse(c, dto.NewEventResponse(event))
}

func (s *Service) DeleteEvent(c *ginext.Context) {
	eventID := c.Param("id")
	event, err := s.events.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, registration.ErrEventNotFound) {
			dto.EventNotFoundError(c)
			return
		}
		s.log.Error().Err(err).Msg("failed to load event for deletion")
		dto.InternalServerError(c)
		return
	}

	caller := identityFrom(c)
	if event.Organizer != caller.UserID && !isAdmin(caller) {
		dto.ForbiddenError(c, "Only the organizer or an admin can delete this event")
		return
	}

	if err := s.events.DeleteEvent(c.Request.Context(), eventID); err != nil {
		s.log.Error().Err(err).Msg("failed to delete event")
		dto.InternalServerError(c)
		return
	}
	if err := s.engine.CascadeDelete(c.Request.Context(), eventID); err != nil {
		s.log.Error().Err(err).
			Str("event_id", eventID).
			Msg("failed to cascade-delete registrations")
	}

	s.log.Info().Str("event_id", eventID).Msg("event deleted")
	dto.SuccessResponse(c, nil)
}
