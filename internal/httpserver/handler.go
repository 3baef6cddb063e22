package httpserver

import (
	"context"
	"fmt"

	// Import this to execute the init function in docs.go which setups the Swagger docs.
	_ "sos-srv/docs"

	"sos-srv/internal/dispatch"
	dispatchUC "sos-srv/internal/dispatch/usecase"
	"sos-srv/internal/middleware"
	"sos-srv/internal/realtime"
	realtimeHTTP "sos-srv/internal/realtime/delivery/http"
	redisDelivery "sos-srv/internal/realtime/delivery/redis"
	realtimeUC "sos-srv/internal/realtime/usecase"
	sosHTTP "sos-srv/internal/sos/delivery/http"
	"sos-srv/internal/sos/repository"
	"sos-srv/internal/sos/repository/memory"
	postgres "sos-srv/internal/sos/repository/postgre"
	sosUC "sos-srv/internal/sos/usecase"
	"sos-srv/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	Api = "/api/v1"
)

// mapHandlers builds the domain services and mounts every route. Cancelling
// ctx stops background helpers such as the rate
// limiter cleanup.
func (srv *HTTPServer) mapHandlers(ctx context.Context) error {
	if err := validator.RegisterGin(); err != nil {
		return err
	}

	mw := middleware.New(srv.logger, srv.scopeManager, srv.cookieName, srv.metrics)

	corsConfig := middleware.DefaultCORSConfig()
	if len(srv.allowedOrigins) > 0 {
		corsConfig.AllowedOrigins = srv.allowedOrigins
	}
	srv.gin.Use(
		middleware.Recovery(srv.logger, srv.discord),
		middleware.CORS(corsConfig),
		mw.Metrics(),
	)

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/metrics", gin.WrapH(promhttp.HandlerFor(srv.registry, promhttp.HandlerOpts{Registry: srv.registry})))

	// Swagger UI
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Repositories
	repo, err := srv.newRepository(ctx)
	if err != nil {
		return err
	}

	// Realtime
	srv.realtimeUC = realtimeUC.New(srv.logger, realtimeUC.Config{
		MaxConnections: srv.wsConfig.MaxConnections,
		SendBuffer:     srv.wsConfig.SendBuffer,
		PongWait:       srv.wsConfig.PongWait,
		PingPeriod:     srv.wsConfig.PingInterval,
		WriteWait:      srv.wsConfig.WriteWait,
		MaxMessageSize: srv.wsConfig.MaxMessageSize,
		InboundRate:    srv.wsConfig.InboundRate,
		InboundBurst:   srv.wsConfig.InboundBurst,
	}, srv.metrics)

	var publisher realtime.Publisher = srv.realtimeUC
	if srv.redis != nil {
		relay := redisDelivery.NewPublisher(srv.redis, srv.realtimeUC, srv.instanceID, srv.logger)
		srv.relay = relay
		publisher = relay
		srv.subscriber = redisDelivery.NewSubscriber(srv.redis, srv.realtimeUC, srv.instanceID, srv.logger)
	}

	// Dispatch
	var dispatcher dispatch.UseCase
	if srv.discord != nil {
		dispatcher = dispatchUC.New(srv.logger, srv.discord)
	}

	// SOS
	alertUC := sosUC.New(srv.logger, repo, publisher, dispatcher, srv.metrics)
	srv.realtimeUC.SetLocationRelayer(alertUC)

	api := srv.gin.Group(Api)
	limit := mw.RateLimit(ctx, middleware.RateLimitConfig{
		RPS:   srv.rateLimit.RPS,
		Burst: srv.rateLimit.Burst,
		TTL:   srv.rateLimit.TTL,
	})
	sosHTTP.New(srv.logger, alertUC).RegisterRoutes(api, mw, limit)
	realtimeHTTP.New(srv.logger, srv.realtimeUC, realtimeHTTP.WSConfig{
		ReadBufferSize:  srv.wsConfig.ReadBufferSize,
		WriteBufferSize: srv.wsConfig.WriteBufferSize,
		AllowedOrigins:  srv.allowedOrigins,
	}).RegisterRoutes(api, mw)

	return nil
}

func (srv *HTTPServer) newRepository(ctx context.Context) (repository.Repository, error) {
	if srv.postgresDB == nil {
		srv.logger.Warn(ctx, "No PostgreSQL configured, alerts are kept in memory")
		return memory.New(srv.logger), nil
	}

	if srv.autoMigrate {
		if err := postgres.Migrate(ctx, srv.postgresDB); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return postgres.New(srv.logger, srv.postgresDB, srv.queryTimeout), nil
}
