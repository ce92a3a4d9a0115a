package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tempoaovivo/account-service/shared/middleware"
)

const healthTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type dependency struct {
	name string
	p    Pinger
}

// HealthHandler serves the liveness text on / and dependency checks on
// /health. The database is always checked; others are added with WithCheck.
type HealthHandler struct {
	deps []dependency
	log  logrus.FieldLogger
}

func NewHealthHandler(store Pinger, log logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{deps: []dependency{{name: "database", p: store}}, log: log}
}

func (h *HealthHandler) WithCheck(name string, p Pinger) *HealthHandler {
	h.deps = append(h.deps, dependency{name: name, p: p})
	return h
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Account service is running")
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	for _, d := range h.deps {
		if err := d.p.Ping(ctx); err != nil {
			h.log.WithError(err).WithField("dependency", d.name).Error("health check failed")
			middleware.RespondWithError(c, http.StatusServiceUnavailable, d.name+" unavailable")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
