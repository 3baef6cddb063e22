package usecase

import (
	"context"

	"sos-srv/internal/metrics"
	"sos-srv/internal/realtime"
	"sos-srv/pkg/log"

	"github.com/gorilla/websocket"
)

type implUseCase struct {
	hub     *Hub
	cfg     Config
	logger  log.Logger
	metrics *metrics.Metrics
}

var _ realtime.UseCase = &implUseCase{}

// New creates the realtime UseCase and its hub. Call Run before
// registering connections.
func New(logger log.Logger, cfg Config, m *metrics.Metrics) *implUseCase {
	cfg = cfg.withDefaults()
	return &implUseCase{
		hub:     newHub(logger, cfg.MaxConnections, m),
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}
}

func (uc *implUseCase) Run() {
	uc.hub.Run()
}

func (uc *implUseCase) Shutdown(ctx context.Context) error {
	return uc.hub.Shutdown(ctx)
}

func (uc *implUseCase) Register(ctx context.Context, input realtime.ConnectionInput) error {
	conn, ok := input.Conn.(*websocket.Conn)
	if !ok || conn == nil {
		return realtime.ErrInvalidConnection
	}

	c := newConnection(uc.hub, conn, input.Scope, uc.cfg, uc.logger)

	select {
	case uc.hub.register <- c:
	case <-uc.hub.ctx.Done():
		return realtime.ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	c.Start()
	return nil
}

// Publish queues ev for local delivery. A full queue drops the event.
func (uc *implUseCase) Publish(ctx context.Context, ev realtime.Event) {
	uc.metrics.EventPublished(string(ev.Type))
	if !uc.hub.enqueue(ev) {
		uc.logger.Warnf(ctx, "internal.realtime.usecase.Publish: event %s dropped (queue full or hub closed)", ev.Type)
	}
}

func (uc *implUseCase) GetStats(ctx context.Context) realtime.HubStats {
	return uc.hub.Stats()
}

func (uc *implUseCase) SetLocationRelayer(r realtime.LocationRelayer) {
	uc.hub.setRelayer(r)
}
