package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"sos-srv/internal/metrics"
	"sos-srv/internal/realtime"
	"sos-srv/pkg/log"
)

// Hub is the connection registry. Its Run loop owns registration and
// delivery; readers of the registry take mu.
type Hub struct {
	// userID -> connections, one per open tab or device
	connections map[string][]*Connection
	mu          sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	events     chan realtime.Event

	maxConnections int

	relayMu sync.RWMutex
	relayer realtime.LocationRelayer

	messagesSent    atomic.Int64
	messagesDropped atomic.Int64

	logger  log.Logger
	metrics *metrics.Metrics

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func newHub(logger log.Logger, maxConnections int, m *metrics.Metrics) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		connections:    make(map[string][]*Connection),
		register:       make(chan *Connection, 100),
		unregister:     make(chan *Connection, 100),
		events:         make(chan realtime.Event, eventQueueSize),
		maxConnections: maxConnections,
		logger:         logger,
		metrics:        m,
		ctx:            ctx,
		cancel:         cancel,
		done:           make(chan struct{}),
	}
}

// Run processes registrations and events until Shutdown.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info(context.Background(), "realtime hub shutting down")
			h.closeAllConnections()
			return

		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)

		case ev := <-h.events:
			h.deliver(ev)
		}
	}
}

func (h *Hub) registerConnection(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConnectionsLocked() >= h.maxConnections {
		h.logger.Warnf(context.Background(), "internal.realtime.usecase.registerConnection: max connections reached, rejecting user %s", conn.client.UserID)
		go conn.Close()
		return
	}

	h.connections[conn.client.UserID] = append(h.connections[conn.client.UserID], conn)
	h.metrics.ConnectionOpened()

	h.logger.Infof(context.Background(), "user connected: %s role=%s (total connections: %d, user connections: %d)",
		conn.client.UserID, conn.client.Role, h.totalConnectionsLocked(), len(h.connections[conn.client.UserID]))
}

func (h *Hub) unregisterConnection(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.connections[conn.client.UserID]
	if !ok {
		return
	}

	for i, c := range conns {
		if c != conn {
			continue
		}
		h.connections[conn.client.UserID] = append(conns[:i], conns[i+1:]...)
		close(conn.send)
		h.metrics.ConnectionClosed()

		if len(h.connections[conn.client.UserID]) == 0 {
			delete(h.connections, conn.client.UserID)
			h.logger.Infof(context.Background(), "user disconnected (all tabs closed): %s", conn.client.UserID)
		}
		return
	}
}

// deliver queues ev on every matching connection. A full buffer drops the
// copy for that connection only.
func (h *Hub) deliver(ev realtime.Event) {
	data, err := json.Marshal(ev.Frame())
	if err != nil {
		h.logger.Errorf(context.Background(), "internal.realtime.usecase.deliver.Marshal: %v", err)
		return
	}

	sent, dropped := h.BroadcastWhere(ev.Audience.Matches, data)
	h.metrics.Fanout(string(ev.Type), sent, dropped)
	if dropped > 0 {
		h.logger.Warnf(context.Background(), "event %s dropped for %d connections (buffer full)", ev.Type, dropped)
	}
}

// BroadcastWhere queues data on every connection whose client satisfies
// pred and returns how many copies were queued and dropped.
func (h *Hub) BroadcastWhere(pred func(realtime.Client) bool, data []byte) (sent, dropped int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conns := range h.connections {
		for _, conn := range conns {
			if !pred(conn.client) {
				continue
			}
			select {
			case conn.send <- data:
				sent++
			default:
				dropped++
			}
		}
	}

	h.messagesSent.Add(int64(sent))
	h.messagesDropped.Add(int64(dropped))
	return sent, dropped
}

// enqueue hands ev to the Run loop without blocking.
func (h *Hub) enqueue(ev realtime.Event) bool {
	select {
	case <-h.ctx.Done():
		return false
	default:
	}

	select {
	case h.events <- ev:
		return true
	default:
		return false
	}
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conns := range h.connections {
		for _, conn := range conns {
			close(conn.send)
			conn.Close()
			h.metrics.ConnectionClosed()
		}
	}

	h.connections = make(map[string][]*Connection)
}

func (h *Hub) Stats() realtime.HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return realtime.HubStats{
		ActiveConnections: h.totalConnectionsLocked(),
		MaxConnections:    h.maxConnections,
		TotalUniqueUsers:  len(h.connections),
		MessagesSent:      h.messagesSent.Load(),
		MessagesDropped:   h.messagesDropped.Load(),
	}
}

// totalConnectionsLocked must be called with mu held.
func (h *Hub) totalConnectionsLocked() int {
	total := 0
	for _, conns := range h.connections {
		total += len(conns)
	}
	return total
}

func (h *Hub) setRelayer(r realtime.LocationRelayer) {
	h.relayMu.Lock()
	defer h.relayMu.Unlock()
	h.relayer = r
}

func (h *Hub) getRelayer() realtime.LocationRelayer {
	h.relayMu.RLock()
	defer h.relayMu.RUnlock()
	return h.relayer
}

func (h *Hub) Shutdown(ctx context.Context) error {
	h.cancel()

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
