package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"sos-srv/internal/model"
	"sos-srv/internal/realtime"
	"sos-srv/internal/sos"
	"sos-srv/pkg/log"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Connection is one socket of an authenticated user.
type Connection struct {
	hub    *Hub
	conn   *websocket.Conn
	scope  model.Scope
	client realtime.Client

	// Buffered channel of outbound messages. Closed by the hub only.
	send chan []byte

	cfg     Config
	limiter *rate.Limiter
	logger  log.Logger

	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(hub *Hub, conn *websocket.Conn, sc model.Scope, cfg Config, logger log.Logger) *Connection {
	return &Connection{
		hub:     hub,
		conn:    conn,
		scope:   sc,
		client:  realtime.Client{UserID: sc.UserID, Role: sc.Role},
		send:    make(chan []byte, cfg.SendBuffer),
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.InboundRate), cfg.InboundBurst),
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// readPump reads client frames until the socket fails, then unregisters.
// It is the only reader of conn.
func (c *Connection) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		c.Close()
	}()

	if c.conn == nil {
		return
	}

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warnf(context.Background(), "websocket read error for user %s: %v", c.client.UserID, err)
			}
			return
		}
		c.handleInbound(message)
	}
}

// handleInbound routes a client frame. Errors are logged and never
// reported back to the client.
func (c *Connection) handleInbound(message []byte) {
	ctx := log.WithFields(context.Background(), "user_id", c.client.UserID)

	if !c.limiter.Allow() {
		c.logger.Debugf(ctx, "internal.realtime.usecase.handleInbound: rate limited")
		return
	}

	var msg realtime.InboundMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.logger.Debugf(ctx, "internal.realtime.usecase.handleInbound.Unmarshal: %v", err)
		return
	}

	switch msg.Type {
	case realtime.EventAlertLocationUpdate:
		var p realtime.InboundLocationPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.logger.Debugf(ctx, "internal.realtime.usecase.handleInbound.Unmarshal: %v", err)
			return
		}
		relayer := c.hub.getRelayer()
		if relayer == nil {
			return
		}
		err := relayer.RelayLocation(ctx, c.scope, sos.RelayLocationInput{AlertID: p.AlertID, Location: p.Location})
		if err != nil {
			c.logger.Warnf(ctx, "internal.realtime.usecase.handleInbound.RelayLocation: alert=%s err=%v", p.AlertID, err)
		}
	default:
		c.logger.Debugf(ctx, "internal.realtime.usecase.handleInbound: %v: %s", realtime.ErrUnknownMessageType, msg.Type)
	}
}

// writePump writes queued frames and keepalive pings. It is the only
// writer of conn.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	if c.conn == nil {
		return
	}

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close is safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}
