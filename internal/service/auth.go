package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"

	"eventhub/internal/auth"
	"eventhub/internal/dto"
	"eventhub/internal/model"
	"eventhub/internal/repo"
	"eventhub/pkg/validator"
)

func (s *Service) Signup(c *ginext.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(c, req); verr != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	_, err := s.users.GetUserByEmail(c.Request.Context(), email)
	if err == nil {
		dto.EmailTakenError(c)
		return
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		s.log.Error().Err(err).Msg("failed to check existing user")
		dto.InternalServerError(c)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to hash password")
		dto.InternalServerError(c)
		return
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(c.Request.Context(), user); err != nil {
		s.log.Error().Err(err).Msg("failed to create user")
		dto.InternalServerError(c)
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to issue token")
		dto.InternalServerError(c)
		return
	}

	s.log.Info().Str("user_id", user.ID).Msg("user signed up")
	dto.SuccessCreatedResponse(c, dto.TokenResponse{Token: token})
}

func (s *Service) Login(c *ginext.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(c, req); verr != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			dto.InvalidCredentialsError(c)
			return
		}
		s.log.Error().Err(err).Msg("failed to load user for login")
		dto.InternalServerError(c)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		dto.InvalidCredentialsError(c)
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to issue token")
		dto.InternalServerError(c)
		return
	}

	dto.SuccessResponse(c, dto.TokenResponse{Token: token})
}
