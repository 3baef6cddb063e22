package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig
	Instance    InstanceConfig

	// Server Configuration
	Server    ServerConfig
	Logger    LoggerConfig
	RateLimit RateLimitConfig

	// Storage Configuration
	Storage  StorageConfig
	Postgres PostgresConfig
	Redis    RedisConfig

	// WebSocket Configuration
	WebSocket WebSocketConfig

	// Authentication & Security Configuration
	JWT    JWTConfig
	Cookie CookieConfig

	// Monitoring & Notification Configuration
	Discord DiscordConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// InstanceConfig identifies this process among the replicas sharing Redis.
type InstanceConfig struct {
	ID string
}

// ServerConfig is the configuration for the HTTP server
type ServerConfig struct {
	Host            string
	Port            int
	Mode            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// RateLimitConfig bounds requests per caller on the API.
type RateLimitConfig struct {
	RPS   float64
	Burst int
	TTL   time.Duration
}

// StorageConfig selects the alert store.
type StorageConfig struct {
	Driver string
}

// PostgresConfig is the configuration for PostgreSQL
type PostgresConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	QueryTimeout time.Duration
	AutoMigrate  bool
}

// RedisConfig is the configuration for Redis. When disabled, events are
// only delivered to sockets on this instance.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	UseTLS   bool

	// Connection pool settings
	MaxRetries      int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// WebSocketConfig is the configuration for WebSocket connections
type WebSocketConfig struct {
	PingInterval    time.Duration
	PongWait        time.Duration
	WriteWait       time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBuffer      int
	MaxConnections  int
	InboundRate     float64
	InboundBurst    int
}

// JWTConfig is the configuration for the JWT
type JWTConfig struct {
	SecretKey string
	Issuer    string
}

// CookieConfig names the HttpOnly cookie that may carry the token.
type CookieConfig struct {
	Name string
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// DiscordConfig is the configuration for Discord webhook notifications
type DiscordConfig struct {
	WebhookID    string
	WebhookToken string
}

// WebhookURL returns the webhook endpoint, or "" when Discord is not
// configured.
func (d DiscordConfig) WebhookURL() string {
	if d.WebhookID == "" || d.WebhookToken == "" {
		return ""
	}
	return fmt.Sprintf("https://discord.com/api/webhooks/%s/%s", d.WebhookID, d.WebhookToken)
}

// Load loads configuration using Viper
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("sos-config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/sos/")

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults(v)

	// Read config file (optional - will use env vars if file not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.Instance.ID = v.GetString("instance.id")

	// Server
	cfg.Server.Host = v.GetString("server.host")
	cfg.Server.Port = v.GetInt("server.port")
	cfg.Server.Mode = v.GetString("server.mode")
	cfg.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	cfg.Server.ShutdownTimeout = v.GetDuration("server.shutdown_timeout")

	// Rate limit
	cfg.RateLimit.RPS = v.GetFloat64("rate_limit.rps")
	cfg.RateLimit.Burst = v.GetInt("rate_limit.burst")
	cfg.RateLimit.TTL = v.GetDuration("rate_limit.ttl")

	// Logger
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Storage
	cfg.Storage.Driver = strings.ToLower(v.GetString("storage.driver"))

	// Postgres
	cfg.Postgres.Host = v.GetString("postgres.host")
	cfg.Postgres.Port = v.GetInt("postgres.port")
	cfg.Postgres.User = v.GetString("postgres.user")
	cfg.Postgres.Password = v.GetString("postgres.password")
	cfg.Postgres.DBName = v.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = v.GetString("postgres.sslmode")
	cfg.Postgres.QueryTimeout = v.GetDuration("postgres.query_timeout")
	cfg.Postgres.AutoMigrate = v.GetBool("postgres.auto_migrate")

	// Redis
	cfg.Redis.Enabled = v.GetBool("redis.enabled")
	cfg.Redis.Host = v.GetString("redis.host")
	cfg.Redis.Port = v.GetInt("redis.port")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.Redis.UseTLS = v.GetBool("redis.use_tls")
	cfg.Redis.MaxRetries = v.GetInt("redis.max_retries")
	cfg.Redis.MinIdleConns = v.GetInt("redis.min_idle_conns")
	cfg.Redis.PoolSize = v.GetInt("redis.pool_size")
	cfg.Redis.PoolTimeout = v.GetDuration("redis.pool_timeout")
	cfg.Redis.ConnMaxIdleTime = v.GetDuration("redis.conn_max_idle_time")
	cfg.Redis.ConnMaxLifetime = v.GetDuration("redis.conn_max_lifetime")

	// WebSocket
	cfg.WebSocket.PingInterval = v.GetDuration("websocket.ping_interval")
	cfg.WebSocket.PongWait = v.GetDuration("websocket.pong_wait")
	cfg.WebSocket.WriteWait = v.GetDuration("websocket.write_wait")
	cfg.WebSocket.MaxMessageSize = v.GetInt64("websocket.max_message_size")
	cfg.WebSocket.ReadBufferSize = v.GetInt("websocket.read_buffer_size")
	cfg.WebSocket.WriteBufferSize = v.GetInt("websocket.write_buffer_size")
	cfg.WebSocket.SendBuffer = v.GetInt("websocket.send_buffer")
	cfg.WebSocket.MaxConnections = v.GetInt("websocket.max_connections")
	cfg.WebSocket.InboundRate = v.GetFloat64("websocket.inbound_rate")
	cfg.WebSocket.InboundBurst = v.GetInt("websocket.inbound_burst")

	// JWT
	cfg.JWT.SecretKey = v.GetString("jwt.secret_key")
	cfg.JWT.Issuer = v.GetString("jwt.issuer")

	// Cookie
	cfg.Cookie.Name = v.GetString("cookie.name")

	// Discord
	cfg.Discord.WebhookID = v.GetString("discord.webhook_id")
	cfg.Discord.WebhookToken = v.GetString("discord.webhook_token")

	// Validate required fields
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Environment
	v.SetDefault("environment.name", "production")

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	// Rate limit
	v.SetDefault("rate_limit.rps", 5)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.ttl", 10*time.Minute)

	// Logger
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "production")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.color_enabled", false)

	// Storage
	v.SetDefault("storage.driver", StorageMemory)

	// Postgres
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.dbname", "sos")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.query_timeout", 5*time.Second)
	v.SetDefault("postgres.auto_migrate", true)

	// Redis
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.use_tls", false)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.min_idle_conns", 10)
	v.SetDefault("redis.pool_size", 100)
	v.SetDefault("redis.pool_timeout", 4*time.Second)
	v.SetDefault("redis.conn_max_idle_time", 5*time.Minute)
	v.SetDefault("redis.conn_max_lifetime", 30*time.Minute)

	// WebSocket
	v.SetDefault("websocket.ping_interval", 30*time.Second)
	v.SetDefault("websocket.pong_wait", 60*time.Second)
	v.SetDefault("websocket.write_wait", 10*time.Second)
	v.SetDefault("websocket.max_message_size", 1024)
	v.SetDefault("websocket.read_buffer_size", 1024)
	v.SetDefault("websocket.write_buffer_size", 1024)
	v.SetDefault("websocket.send_buffer", 256)
	v.SetDefault("websocket.max_connections", 10000)
	v.SetDefault("websocket.inbound_rate", 2)
	v.SetDefault("websocket.inbound_burst", 5)

	// JWT
	v.SetDefault("jwt.issuer", "")

	// Cookie
	v.SetDefault("cookie.name", "token")
}

func validate(cfg *Config) error {
	// Validate JWT
	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key is required")
	}
	if len(cfg.JWT.SecretKey) < 32 {
		return fmt.Errorf("jwt.secret_key must be at least 32 characters for security")
	}

	// Validate server
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	// Validate storage
	switch cfg.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.Postgres.Host == "" || cfg.Postgres.DBName == "" {
			return fmt.Errorf("postgres.host and postgres.dbname are required for the postgres driver")
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", StorageMemory, StoragePostgres, cfg.Storage.Driver)
	}

	// Validate Redis
	if cfg.Redis.Enabled {
		if cfg.Redis.Host == "" {
			return fmt.Errorf("redis.host is required")
		}
		if cfg.Redis.Port == 0 {
			return fmt.Errorf("redis.port is required")
		}
	}

	// Validate rate limit
	if cfg.RateLimit.RPS < 0 || cfg.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must not be negative")
	}

	return nil
}
