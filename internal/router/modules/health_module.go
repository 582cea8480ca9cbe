package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-api/internal/container"
)

// HealthModule exposes GET /healthz, answering 503 while the record store
// is unreachable.
type HealthModule struct{}

func NewHealthModule() *HealthModule { return &HealthModule{} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		if pool := container.GetPGPool(); pool != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			err := pool.Ping(ctx)
			cancel()
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "postgres": err.Error()})
				return
			}
		}
		if rdb := container.GetRedis(); rdb != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			err := rdb.Ping(ctx).Err()
			cancel()
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
