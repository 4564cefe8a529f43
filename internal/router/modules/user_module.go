package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/orgauth-service/internal/interface/http"
	"github.com/oksasatya/orgauth-service/internal/interface/middleware"
)

// UserModule serves GET /api/users/:id behind the access guard.
type UserModule struct {
	Handler  *handlers.UserHandler
	Resolver middleware.IdentityResolver
	Redis    *redis.Client
}

func NewUserModule(h *handlers.UserHandler, resolver middleware.IdentityResolver, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Resolver: resolver, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	api := rg.Group("/api")
	api.Use(
		middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP()),
		middleware.Auth(m.Resolver),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID()),
	)
	api.GET("/users/:id", m.Handler.GetUser)
}
