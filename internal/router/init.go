package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/orgauth-service/internal/container"
	handlers "github.com/oksasatya/orgauth-service/internal/interface/http"
	"github.com/oksasatya/orgauth-service/internal/interface/middleware"
	"github.com/oksasatya/orgauth-service/internal/router/modules"
	"github.com/oksasatya/orgauth-service/pkg/validation"
)

// InitModules builds the handlers and registers every module with the registry.
func InitModules(r *Registry, c *container.Container) {
	rdb := c.RateLimiter()
	cfg := c.Config

	authHandler := handlers.NewAuthHandler(c.Auth, c.Logger, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(c.Organisations)
	orgHandler := handlers.NewOrganisationHandler(c.Organisations)
	healthHandler := handlers.NewHealthHandler(c.HealthChecks(), c.Logger)

	r.Add(modules.NewAuthModule(authHandler, rdb))
	r.Add(modules.NewUserModule(userHandler, c.Auth, rdb))
	r.Add(modules.NewOrganisationModule(orgHandler, c.Auth, rdb))
	r.Add(modules.NewHealthModule(healthHandler, rdb))
}

// NewEngine returns the gin engine with global middleware, every module and
// the unknown-route handler installed.
func NewEngine(c *container.Container) *gin.Engine {
	validation.Init()

	r := gin.New()
	r.Use(middleware.Recovery(c.Logger))
	r.Use(middleware.RequestID(), middleware.RealIP())
	if origins := c.Config.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if c.Config.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorHandler(c.Logger))

	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()

	r.NoRoute(middleware.NoRoute)
	return r
}
