// Package redis relays lifecycle events between service instances over a
// Redis pub/sub channel so a socket connected to any instance receives
// them.
package redis

import (
	"context"
	"sync"
	"time"

	"sos-srv/internal/realtime"
	"sos-srv/pkg/log"
	pkgRedis "sos-srv/pkg/redis"

	"github.com/redis/go-redis/v9"
)

const (
	// Channel carries every lifecycle event.
	Channel = "sos:events"

	publishTimeout = 3 * time.Second
)

// envelope is the wire form of a relayed event. Origin identifies the
// instance that already delivered it locally.
type envelope struct {
	Origin string         `json:"origin"`
	Event  realtime.Event `json:"event"`
}

type Subscriber interface {
	Start() error
	Shutdown(ctx context.Context) error
}

type subscriber struct {
	redis    pkgRedis.IRedis
	local    realtime.Publisher
	logger   log.Logger
	instance string

	pubsub *redis.PubSub
	wg     sync.WaitGroup
	quit   chan struct{}
	once   sync.Once
}

// NewSubscriber delivers events published by other instances to local.
func NewSubscriber(r pkgRedis.IRedis, local realtime.Publisher, instance string, logger log.Logger) Subscriber {
	return &subscriber{
		redis:    r,
		local:    local,
		logger:   logger,
		instance: instance,
		quit:     make(chan struct{}),
	}
}

type publisher struct {
	redis    pkgRedis.IRedis
	local    realtime.Publisher
	logger   log.Logger
	instance string
	wg       sync.WaitGroup
}

// NewPublisher delivers events to local and relays them to the other
// instances. The relay runs in the background.
func NewPublisher(r pkgRedis.IRedis, local realtime.Publisher, instance string, logger log.Logger) *publisher {
	return &publisher{
		redis:    r,
		local:    local,
		logger:   logger,
		instance: instance,
	}
}
