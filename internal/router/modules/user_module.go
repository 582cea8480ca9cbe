package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-api/internal/application"
	"github.com/oksasatya/go-todo-api/internal/container"
	handlers "github.com/oksasatya/go-todo-api/internal/interface/http"
	"github.com/oksasatya/go-todo-api/internal/interface/middleware"
)

// UserModule wires registration and the authenticated profile lookup:
// POST /users (public), GET /users/me (x-auth token required).
type UserModule struct {
	Handler *handlers.UserHandler
	Svc     *application.UserService
}

func NewUserModule(h *handlers.UserHandler, svc *application.UserService) *UserModule {
	return &UserModule{Handler: h, Svc: svc}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/users", registerLimiter, m.Handler.Register)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Svc))
	{
		auth.GET("/users/me", m.Handler.Me)
	}
}
