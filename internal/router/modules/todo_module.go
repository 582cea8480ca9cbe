package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-api/internal/container"
	handlers "github.com/oksasatya/go-todo-api/internal/interface/http"
	"github.com/oksasatya/go-todo-api/internal/interface/middleware"
)

// TodoModule wires the todo CRUD surface:
// POST /todos, GET /todos, GET /todos/search,
// GET|DELETE|PATCH /todos/:id
type TodoModule struct {
	Handler *handlers.TodoHandler
}

func NewTodoModule(h *handlers.TodoHandler) *TodoModule {
	return &TodoModule{Handler: h}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	writeLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/todos", writeLimiter, m.Handler.Create)
	rg.GET("/todos", m.Handler.List)
	rg.GET("/todos/search", m.Handler.Search)
	rg.GET("/todos/:id", m.Handler.Get)
	rg.DELETE("/todos/:id", writeLimiter, m.Handler.Delete)
	rg.PATCH("/todos/:id", writeLimiter, m.Handler.Update)
}
