package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/orgauth-service/internal/interface/http"
	"github.com/oksasatya/orgauth-service/internal/interface/middleware"
)

// HealthModule serves the public dependency probe, rate-limited per IP.
type HealthModule struct {
	Handler *handlers.HealthHandler
	Redis   *redis.Client
}

func NewHealthModule(h *handlers.HealthHandler, rdb *redis.Client) *HealthModule {
	return &HealthModule{Handler: h, Redis: rdb}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP())
	rg.GET("/healthz", rl, m.Handler.Health)
}
