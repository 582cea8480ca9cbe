package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-api/internal/application"
)

// Auth resolves the x-auth header to a stored user via the user service.
// A bad signature and a valid-but-revoked token both answer 401 with an
// empty body; the distinction stays inside the service layer.
// On success the resolved *entity.User is stored under "user".
func Auth(svc *application.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("x-auth")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		u, err := svc.FindByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("user", u)
		c.Set("userID", u.ID)
		c.Next()
	}
}
