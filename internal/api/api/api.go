package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"eventhub/cmd/middleware"
	"eventhub/internal/auth"
	"eventhub/internal/service"
)

type Routers struct {
	Service *service.Service
	Tokens  *auth.TokenService
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())

	v1 := app.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", r.Service.Signup)
	authGroup.POST("/login", r.Service.Login)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(r.Tokens))

	protected.POST("/events", r.Service.CreateEvent)
	protected.GET("/events", r.Service.GetAllEvents)
	protected.GET("/events/:id", r.Service.GetEvent)
	protected.PUT("/events/:id", r.Service.UpdateEvent)
	protected.DELETE("/events/:id", r.Service.DeleteEvent)

	protected.POST("/events/:id/register", r.Service.Register)
	protected.DELETE("/events/:id/register", r.Service.CancelRegistration)
	protected.GET("/events/:id/registrations", r.Service.ListEventRegistrations)
	protected.GET("/registrations", r.Service.ListMyRegistrations)

	protected.POST("/events/:id/reminder", r.Service.SendReminder)
	protected.POST("/events/:id/update-notice", r.Service.SendUpdateNotice)
	protected.POST("/notifications", r.Service.SendCustomNotification)
	protected.GET("/notifications", r.Service.ListMyNotifications)

	protected.GET("/users/me", r.Service.GetProfile)
	protected.PUT("/users/me", r.Service.UpdateProfile)
	protected.GET("/users", r.Service.ListUsers)
	protected.DELETE("/users/:id", r.Service.DeleteUser)

	return app
}
