package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/orgauth-service/internal/interface/http"
	"github.com/oksasatya/orgauth-service/internal/interface/middleware"
)

// OrganisationModule serves /api/organisations behind the access guard.
type OrganisationModule struct {
	Handler  *handlers.OrganisationHandler
	Resolver middleware.IdentityResolver
	Redis    *redis.Client
}

func NewOrganisationModule(h *handlers.OrganisationHandler, resolver middleware.IdentityResolver, rdb *redis.Client) *OrganisationModule {
	return &OrganisationModule{Handler: h, Resolver: resolver, Redis: rdb}
}

func (m *OrganisationModule) Register(rg *gin.RouterGroup) {
	orgs := rg.Group("/api/organisations")
	orgs.Use(
		middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP()),
		middleware.Auth(m.Resolver),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID()),
	)
	{
		orgs.GET("", m.Handler.List)
		orgs.POST("", m.Handler.Create)
		orgs.GET("/search", middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByUserID()), m.Handler.Search)
		orgs.GET("/:orgId", m.Handler.Get)
		orgs.GET("/:orgId/users", m.Handler.Members)
		orgs.POST("/:orgId/users", m.Handler.AddMember)
	}
}
