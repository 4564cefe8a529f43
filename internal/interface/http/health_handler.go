package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/orgauth-service/pkg/response"
)

const (
	MsgHealthy  = "Service is healthy"
	MsgDegraded = "Service is degraded"
)

type HealthHandler struct {
	Checks  map[string]func(context.Context) error
	Logger  logrus.FieldLogger
	Timeout time.Duration
}

func NewHealthHandler(checks map[string]func(context.Context) error, logger logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{Checks: checks, Logger: logger, Timeout: 3 * time.Second}
}

// Health runs every probe and reports "up" or "down" per dependency.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			healthy = false
			status[name] = "down"
			if h.Logger != nil {
				h.Logger.WithError(err).WithField("dependency", name).Warn("health check failed")
			}
			continue
		}
		status[name] = "up"
	}

	data := gin.H{"checks": status}
	if !healthy {
		response.Fail(c, http.StatusServiceUnavailable, MsgDegraded, data)
		return
	}
	response.Success(c, http.StatusOK, MsgHealthy, data)
}
