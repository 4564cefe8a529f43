// Package container holds the components main builds once and hands to the router.
package container

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/orgauth-service/config"
	"github.com/oksasatya/orgauth-service/internal/application"
	"github.com/oksasatya/orgauth-service/internal/domain/repository"
	"github.com/oksasatya/orgauth-service/internal/infrastructure/search"
	"github.com/oksasatya/orgauth-service/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Store  repository.Manager
	JWT    *helpers.JWTManager

	// Optional infrastructure; nil disables the feature
	Redis     *redis.Client
	Publisher *helpers.RabbitPublisher
	Directory *search.OrgDirectory

	Auth          *application.AuthService
	Organisations *application.OrganisationService
}

// New wires the application services on top of the given infrastructure.
func New(cfg *config.Config, logger *logrus.Logger, store repository.Manager, jwt *helpers.JWTManager, rdb *redis.Client, pub *helpers.RabbitPublisher, dir *search.OrgDirectory) *Container {
	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		JWT:       jwt,
		Redis:     rdb,
		Publisher: pub,
		Directory: dir,
	}

	// keep absent optional deps as nil interfaces
	var jobs application.JobPublisher
	if pub != nil {
		jobs = pub
	}
	var index application.OrgIndex
	if dir.Enabled() {
		index = dir
	}

	c.Auth = application.NewAuthService(store, jwt, jobs, index, logger, cfg.AppName, cfg.PhoneDefaultRegion)
	c.Organisations = application.NewOrganisationService(store, jobs, index, logger, cfg.AppName)
	return c
}

// RateLimiter returns the redis client for rate limiting, or nil when disabled.
func (c *Container) RateLimiter() *redis.Client {
	if !c.Config.RateLimitEnabled {
		return nil
	}
	return c.Redis
}

// HealthChecks returns one probe per configured dependency, keyed by name.
func (c *Container) HealthChecks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{}
	if p, ok := c.Store.(interface{ Ping(context.Context) error }); ok {
		checks["database"] = p.Ping
	}
	if c.Redis != nil {
		rdb := c.Redis
		checks["redis"] = func(ctx context.Context) error { return helpers.PingRedis(ctx, rdb) }
	}
	if c.Publisher != nil {
		checks["rabbitmq"] = c.Publisher.Ping
	}
	if c.Directory.Enabled() {
		es := c.Directory.ES
		checks["elasticsearch"] = func(ctx context.Context) error { return helpers.PingES(ctx, es) }
	}
	return checks
}
