package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-api/internal/application"
	"github.com/oksasatya/go-todo-api/internal/domain/entity"
	"github.com/oksasatya/go-todo-api/pkg/response"
	"github.com/oksasatya/go-todo-api/pkg/validation"
)

// AuthHeader carries the issued token on registration responses and
// authenticates protected requests.
const AuthHeader = "x-auth"

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Binding only requires presence; the service trims the email before
// validating it, so format and length rules live there.
type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /users. Only email and password are read from the
// body; the response is the public projection plus the x-auth header.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header(AuthHeader, token)
	c.JSON(http.StatusCreated, u.Public())
}

// Me handles GET /users/me for a request already authenticated by the
// auth middleware.
func (h *UserHandler) Me(c *gin.Context) {
	v, ok := c.Get("user")
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	u, ok := v.(*entity.User)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidEmail):
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"email": "must be a valid email"})
	case errors.Is(err, application.ErrShortPassword):
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"password": "must be at least 6 characters long"})
	case errors.Is(err, application.ErrDuplicateEmail):
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"email": "already registered"})
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("user registration failed")
		}
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	}
}
