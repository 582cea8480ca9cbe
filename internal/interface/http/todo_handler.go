package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-api/internal/application"
	"github.com/oksasatya/go-todo-api/pkg/response"
	"github.com/oksasatya/go-todo-api/pkg/validation"
)

type TodoHandler struct {
	Svc    *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger}
}

type createTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

// Create handles POST /todos.
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// List handles GET /todos.
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// Get handles GET /todos/:id.
func (h *TodoHandler) Get(c *gin.Context) {
	t, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": t})
}

// Delete handles DELETE /todos/:id and returns the deleted todo.
func (h *TodoHandler) Delete(c *gin.Context) {
	t, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": t})
}

// Update handles PATCH /todos/:id. Only text and completed are honored;
// completed must be a JSON boolean true to count, any other value or type
// resets the todo to not completed.
func (h *TodoHandler) Update(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	var patch application.TodoPatch
	if v, present := raw["text"]; present {
		s, ok := v.(string)
		if !ok {
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"text": "must be a string"})
			return
		}
		patch.Text = &s
	}
	if v, ok := raw["completed"].(bool); ok && v {
		patch.Completed = true
	}

	t, err := h.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": t})
}

// Search handles GET /todos/search?q=.
func (h *TodoHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "missing query", map[string]string{"q": "is required"})
		return
	}
	todos, err := h.Svc.Search(c.Request.Context(), q, 10)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// fail maps service errors onto the wire contract: malformed ids answer
// 400 and missing records 404, both with empty bodies; anything else is a
// 400 with an error payload.
func (h *TodoHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidID):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, application.ErrTodoNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, application.ErrEmptyText):
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"text": "is required"})
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("todo store operation failed")
		}
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	}
}
