// Package service exposes the HTTP handlers: request binding and validation,
// identity resolution, and mapping engine errors to API responses.
package service

import (
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"eventhub/internal/auth"
	"eventhub/internal/model"
	"eventhub/internal/notifier"
	"eventhub/internal/registration"
	"eventhub/internal/repo"
)

type Service struct {
	engine        *registration.Engine
	broadcaster   *notifier.Broadcaster
	events        *repo.EventRepo
	users         *repo.UserRepo
	notifications *repo.NotificationRepo
	tokens        *auth.TokenService
	log           *zerolog.Logger
}

func NewService(
	engine *registration.Engine,
	broadcaster *notifier.Broadcaster,
	events *repo.EventRepo,
	users *repo.UserRepo,
	notifications *repo.NotificationRepo,
	tokens *auth.TokenService,
	log *zerolog.Logger,
) *Service {
	return &Service{
		engine:        engine,
		broadcaster:   broadcaster,
		events:        events,
		users:         users,
		notifications: notifications,
		tokens:        tokens,
		log:           log,
	}
}

// identityFrom reads the caller set by the auth middleware.
func identityFrom(c *ginext.Context) registration.Identity {
	return registration.Identity{
		UserID: c.GetString("user_id"),
		Role:   c.GetString("role"),
	}
}

func isAdmin(id registration.Identity) bool {
	return id.Role == model.RoleAdmin
}
