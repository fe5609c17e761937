package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wb-go/wbf/ginext"

	"eventhub/internal/dto"
	"eventhub/internal/repo"
	"eventhub/pkg/validator"
)

func (s *Service) GetProfile(c *ginext.Context) {
	caller := identityFrom(c)

	user, err := s.users.GetUser(c.Request.Context(), caller.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			dto.UserNotFoundError(c)
			return
		}
		s.log.Error().Err(err).Str("user_id", caller.UserID).Msg("failed to load profile")
		dto.InternalServerError(c)
		return
	}
	dto.SuccessResponse(c, dto.NewUserResponse(user))
}

func (s *Service) UpdateProfile(c *ginext.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(c, req); verr != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	caller := identityFrom(c)
	user, err := s.users.GetUser(c.Request.Context(), caller.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			dto.UserNotFoundError(c)
			return
		}
		s.log.Error().Err(err).Str("user_id", caller.UserID).Msg("failed to load profile for update")
		dto.InternalServerError(c)
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if err := s.users.UpdateUser(c.Request.Context(), user); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to update profile")
		dto.InternalServerError(c)
		return
	}

	dto.SuccessResponse(c, dto.NewUserResponse(user))
}

func (s *Service) ListUsers(c *ginext.Context) {
	if !isAdmin(identityFrom(c)) {
		dto.ForbiddenError(c, "Only admins can list users")
		return
	}

	users, err := s.users.ListUsers(c.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list users")
		dto.InternalServerError(c)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewUserResponse(&users[i]))
	}
	dto.SuccessResponse(c, resp)
}

func (s *Service) DeleteUser(c *ginext.Context) {
	if !isAdmin(identityFrom(c)) {
		dto.ForbiddenError(c, "Only admins can delete users")
		return
	}

	userID := c.Param("id")
	if err := s.users.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			dto.UserNotFoundError(c)
			return
		}
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to delete user")
		dto.InternalServerError(c)
		return
	}

	s.log.Info().Str("user_id", userID).Msg("user deleted")
	dto.SuccessResponse(c, nil)
}
