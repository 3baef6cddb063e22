package http

import (
	"sos-srv/internal/middleware"
	"sos-srv/internal/sos"
	"sos-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware, limit gin.HandlerFunc)
}

type handler struct {
	l  log.Logger
	uc sos.UseCase
}

// New creates the HTTP handler for SOS alerts.
func New(l log.Logger, uc sos.UseCase) Handler {
	return handler{
		l:  l,
		uc: uc,
	}
}
