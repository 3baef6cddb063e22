package middleware

import (
	"sos-srv/internal/metrics"
	"sos-srv/pkg/log"
	"sos-srv/pkg/scope"
)

const (
	DefaultCookieName = "token"
	// TokenQueryParam carries the token on socket upgrades, where browsers
	// cannot set headers.
	TokenQueryParam = "token"
)

type Middleware struct {
	l            log.Logger
	scopeManager scope.Manager
	cookieName   string
	metrics      *metrics.Metrics
}

func New(l log.Logger, scopeManager scope.Manager, cookieName string, m *metrics.Metrics) Middleware {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return Middleware{
		l:            l,
		scopeManager: scopeManager,
		cookieName:   cookieName,
		metrics:      m,
	}
}
