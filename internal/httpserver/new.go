package httpserver

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"sos-srv/config"
	"sos-srv/internal/metrics"
	"sos-srv/internal/realtime"
	redisDelivery "sos-srv/internal/realtime/delivery/redis"
	"sos-srv/pkg/discord"
	"sos-srv/pkg/log"
	pkgRedis "sos-srv/pkg/redis"
	"sos-srv/pkg/scope"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) is responsible for starting background services and HTTP serving.
type HTTPServer struct {
	// Server configuration
	gin             *gin.Engine
	srv             *http.Server
	logger          log.Logger
	host            string
	port            int
	environment     string
	instanceID      string
	shutdownTimeout time.Duration
	allowedOrigins  []string
	rateLimit       config.RateLimitConfig

	// Storage
	postgresDB   *sql.DB
	queryTimeout time.Duration
	autoMigrate  bool

	// Realtime core, built in mapHandlers
	wsConfig   config.WebSocketConfig
	realtimeUC realtime.UseCase
	subscriber redisDelivery.Subscriber
	relay      interface{ Wait() }

	// Auth & security
	scopeManager scope.Manager
	cookieName   string

	// External services
	redis   pkgRedis.IRedis
	discord discord.IDiscord

	// Monitoring
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// Config is the constructor input for HTTPServer.
type Config struct {
	// Server configuration
	Host            string
	Port            int
	Mode            string
	Environment     string
	InstanceID      string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	RateLimit       config.RateLimitConfig

	// Storage. A nil PostgresDB keeps alerts in memory.
	PostgresDB   *sql.DB
	QueryTimeout time.Duration
	AutoMigrate  bool

	// WebSocket configuration
	WSConfig config.WebSocketConfig

	// Auth & security
	ScopeManager scope.Manager
	CookieName   string

	// External services. Both are optional; without Redis events stay on
	// this instance and without Discord nothing is dispatched.
	Redis   pkgRedis.IRedis
	Discord discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start any goroutines. Use (*HTTPServer).Run() to start the service.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &HTTPServer{
		gin:             gin.New(),
		logger:          logger,
		host:            cfg.Host,
		port:            cfg.Port,
		environment:     cfg.Environment,
		instanceID:      cfg.InstanceID,
		shutdownTimeout: cfg.ShutdownTimeout,
		allowedOrigins:  cfg.AllowedOrigins,
		rateLimit:       cfg.RateLimit,

		postgresDB:   cfg.PostgresDB,
		queryTimeout: cfg.QueryTimeout,
		autoMigrate:  cfg.AutoMigrate,

		wsConfig: cfg.WSConfig,

		scopeManager: cfg.ScopeManager,
		cookieName:   cfg.CookieName,

		redis:   cfg.Redis,
		discord: cfg.Discord,

		registry: registry,
		metrics:  metrics.New(registry),
	}

	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = 10 * time.Second
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (s *HTTPServer) validate() error {
	if s.logger == nil {
		return errors.New("logger is required")
	}
	if s.port == 0 {
		return errors.New("port is required")
	}
	if s.scopeManager == nil {
		return errors.New("ScopeManager is required")
	}
	if s.redis != nil && s.instanceID == "" {
		return errors.New("InstanceID is required when Redis is enabled")
	}

	return nil
}
