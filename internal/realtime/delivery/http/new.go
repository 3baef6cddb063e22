package http

import (
	"sos-srv/internal/middleware"
	"sos-srv/internal/realtime"
	"sos-srv/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l        log.Logger
	uc       realtime.UseCase
	upgrader websocket.Upgrader
}

// New creates the socket handler. An empty AllowedOrigins accepts any
// origin.
func New(l log.Logger, uc realtime.UseCase, cfg WSConfig) Handler {
	return handler{
		l:  l,
		uc: uc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     checkOrigin(cfg.AllowedOrigins),
		},
	}
}
