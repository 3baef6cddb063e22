package log

import "go.uber.org/zap"

// ZapConfig holds the logger settings read from config.
type ZapConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	// Service is attached to every entry when set.
	Service string
}

type zapLogger struct {
	cfg   ZapConfig
	sugar *zap.SugaredLogger
}

type fieldsKey struct{}
