package http

import (
	"sos-srv/internal/middleware"
	"sos-srv/internal/model"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the socket endpoint. Browsers cannot set headers
// on a socket handshake, so the token may also come from the query string.
func (h handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	ws := r.Group("/ws")
	{
		ws.GET("", mw.AuthSocket(), h.HandleWebSocket)
		ws.GET("/stats", mw.Auth(), mw.RequireRole(model.RoleAdmin), h.Stats)
	}
}
