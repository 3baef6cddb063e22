package http

import (
	"sos-srv/internal/middleware"
	"sos-srv/internal/model"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the SOS routes under r. Every route requires a
// verified caller and then passes limit, which sees the caller's scope.
// Responder-only routes additionally require the police role claim.
func (h handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware, limit gin.HandlerFunc) {
	police := mw.RequireRole(model.RolePolice)

	g := r.Group("/sos", mw.Auth(), limit)
	{
		g.POST("", h.Create)
		g.POST("/cancel", h.Cancel)
		g.GET("/history", h.History)
		g.GET("/:id", h.Detail)

		g.GET("/active", police, h.ListActive)
		g.POST("/accept", police, h.Accept)
		g.POST("/location", police, h.RelayLocation)
		g.POST("/complete", police, h.Complete)
		g.POST("/complete/:id", police, h.Complete)
	}
}
