package discord

import (
	"context"
	"errors"
	"strings"

	"sos-srv/pkg/log"
)

var (
	errWebhookRequired = errors.New("discord: webhook url is required")
	errInvalidWebhook  = errors.New("discord: webhook url must be https://discord.com/api/webhooks/{id}/{token}")
)

//go:generate mockery --name IDiscord
type IDiscord interface {
	SendMessage(ctx context.Context, content string) error
	SendEmbed(ctx context.Context, options MessageOptions) error
	ReportBug(ctx context.Context, message string) error
	Close() error
}

// New validates webhookURL and returns a webhook client.
func New(l log.Logger, webhookURL string) (IDiscord, error) {
	webhookURL = strings.TrimSpace(webhookURL)
	if webhookURL == "" {
		return nil, errWebhookRequired
	}
	parts := strings.Split(strings.TrimPrefix(webhookURL, webhookPrefix), "/")
	if !strings.HasPrefix(webhookURL, webhookPrefix) || len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, errInvalidWebhook
	}
	return newImpl(l, webhookURL, DefaultConfig()), nil
}

func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		RetryCount:      DefaultRetryCount,
		RetryDelay:      DefaultRetryDelay,
		DefaultUsername: DefaultUsername,
	}
}
