package http

import (
	"sos-srv/internal/realtime"
	"sos-srv/pkg/response"
	"sos-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// HandleWebSocket upgrades the HTTP connection to a WebSocket connection.
// @Summary Connect to the SOS event stream
// @Description Upgrade HTTP to WebSocket for alert lifecycle events. Requires a valid JWT in the 'token' query, the auth cookie or a bearer header.
// @Tags Realtime
// @Param token query string false "JWT Token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} response.Resp "Unauthorized"
// @Router /ws [GET]
func (h handler) HandleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	stats := h.uc.GetStats(ctx)
	if stats.ActiveConnections >= stats.MaxConnections && stats.MaxConnections > 0 {
		response.Error(c, h.mapError(realtime.ErrMaxConnections), nil)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the handshake error.
		h.l.Warnf(ctx, "internal.realtime.delivery.http.HandleWebSocket.Upgrade: %v", err)
		return
	}

	// The request context ends with this handler; the connection outlives it.
	if err := h.uc.Register(ctx, realtime.ConnectionInput{Scope: sc, Conn: conn}); err != nil {
		h.l.Errorf(ctx, "internal.realtime.delivery.http.HandleWebSocket.Register: %v", err)
		_ = conn.Close()
		return
	}
}

// @Summary Socket hub statistics
// @Tags Realtime
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Resp{data=realtime.HubStats}
// @Failure 403 {object} response.Resp
// @Router /ws/stats [GET]
func (h handler) Stats(c *gin.Context) {
	response.OK(c, h.uc.GetStats(c.Request.Context()))
}
