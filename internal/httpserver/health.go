package httpserver

import (
	"context"
	"net/http"
	"time"

	"sos-srv/internal/realtime"

	"github.com/gin-gonic/gin"
)

const readyCheckTimeout = 2 * time.Second

type dependencyStatus struct {
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
}

type readyResp struct {
	Status       string             `json:"status"`
	Instance     string             `json:"instance,omitempty"`
	Dependencies dependencyStatus   `json:"dependencies"`
	Hub          *realtime.HubStats `json:"hub,omitempty"`
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the service is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     "sos-srv",
		"environment": srv.environment,
	})
}

// readyCheck reports whether the configured dependencies answer.
// @Summary Readiness Check
// @Description Ping PostgreSQL and Redis when configured and report hub stats
// @Tags Health
// @Produce json
// @Success 200 {object} readyResp
// @Failure 503 {object} readyResp
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyCheckTimeout)
	defer cancel()

	resp := readyResp{
		Status:   "ready",
		Instance: srv.instanceID,
		Dependencies: dependencyStatus{
			Postgres: "disabled",
			Redis:    "disabled",
		},
	}

	if srv.postgresDB != nil {
		resp.Dependencies.Postgres = "up"
		if err := srv.postgresDB.PingContext(ctx); err != nil {
			srv.logger.Warnf(ctx, "internal.httpserver.readyCheck.Postgres: %v", err)
			resp.Dependencies.Postgres = "down"
			resp.Status = "not_ready"
		}
	}

	if srv.redis != nil {
		resp.Dependencies.Redis = "up"
		if err := srv.redis.Ping(ctx); err != nil {
			srv.logger.Warnf(ctx, "internal.httpserver.readyCheck.Redis: %v", err)
			resp.Dependencies.Redis = "down"
			resp.Status = "not_ready"
		}
	}

	if srv.realtimeUC != nil {
		stats := srv.realtimeUC.GetStats(ctx)
		resp.Hub = &stats
	}

	code := http.StatusOK
	if resp.Status != "ready" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the service is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
