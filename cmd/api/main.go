package main

import (
	"context"
	"database/sql"
	"fmt"

	"sos-srv/config"
	"sos-srv/config/postgre"
	configRedis "sos-srv/config/redis"
	"sos-srv/internal/httpserver"
	"sos-srv/pkg/discord"
	"sos-srv/pkg/log"
	pkgRedis "sos-srv/pkg/redis"
	"sos-srv/pkg/scope"
)

// @title       SOS Service
// @description SOS alert lifecycle API with realtime fan-out over WebSocket
// @version     1.0
// @host        localhost:8080
// @schemes     http ws
// @BasePath    /api/v1
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Bearer token authentication. Format: "Bearer {token}"
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		Service:      "sos-srv",
	})

	ctx := context.Background()

	// Initialize PostgreSQL
	var postgresDB *sql.DB
	if cfg.Storage.Driver == config.StoragePostgres {
		postgresDB, err = postgre.Connect(ctx, cfg.Postgres)
		if err != nil {
			logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
			return
		}
		defer postgre.Disconnect(ctx)
		logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	}

	// Initialize Redis
	var redisClient pkgRedis.IRedis
	if cfg.Redis.Enabled {
		redisClient, err = configRedis.Connect(cfg.Redis)
		if err != nil {
			logger.Error(ctx, "Failed to connect to Redis: ", err)
			return
		}
		defer configRedis.Disconnect()
		logger.Infof(ctx, "Redis connected successfully to %s:%d", cfg.Redis.Host, cfg.Redis.Port)
	}

	// Initialize Discord
	var discordClient discord.IDiscord
	if url := cfg.Discord.WebhookURL(); url != "" {
		discordClient, err = discord.New(logger, url)
		if err != nil {
			logger.Error(ctx, "Failed to initialize Discord: ", err)
			return
		}
		defer discordClient.Close()
	}

	// Initialize token verification
	scopeManager, err := scope.New(scope.Config{
		SecretKey: cfg.JWT.SecretKey,
		Issuer:    cfg.JWT.Issuer,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize scope manager: ", err)
		return
	}

	// Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		// Server Configuration
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		Mode:            cfg.Server.Mode,
		Environment:     cfg.Environment.Name,
		InstanceID:      cfg.Instance.ID,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		RateLimit:       cfg.RateLimit,

		// Storage Configuration
		PostgresDB:   postgresDB,
		QueryTimeout: cfg.Postgres.QueryTimeout,
		AutoMigrate:  cfg.Postgres.AutoMigrate,

		// WebSocket Configuration
		WSConfig: cfg.WebSocket,

		// Authentication & Security Configuration
		ScopeManager: scopeManager,
		CookieName:   cfg.Cookie.Name,

		// External services
		Redis:   redisClient,
		Discord: discordClient,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}
