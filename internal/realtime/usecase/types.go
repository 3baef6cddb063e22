package usecase

import "time"

// Config holds socket and hub settings.
type Config struct {
	MaxConnections int
	SendBuffer     int
	PongWait       time.Duration
	PingPeriod     time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
	// InboundRate is the number of client messages allowed per second on
	// one connection, with InboundBurst on top.
	InboundRate  float64
	InboundBurst int
}

func (c Config) withDefaults() Config {
	if c.MaxConnections <= 0 {
		c.MaxConnections = 10000
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = 256
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.PingPeriod <= 0 || c.PingPeriod >= c.PongWait {
		c.PingPeriod = c.PongWait * 9 / 10
	}
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = 1024
	}
	if c.InboundRate <= 0 {
		c.InboundRate = 2
	}
	if c.InboundBurst <= 0 {
		c.InboundBurst = 5
	}
	return c
}

const eventQueueSize = 1000
