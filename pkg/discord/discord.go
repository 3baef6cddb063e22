package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sos-srv/pkg/log"
)

func newImpl(l log.Logger, url string, cfg Config) *discordImpl {
	return &discordImpl{
		l:      l,
		url:    url,
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

func (d *discordImpl) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

func (d *discordImpl) SendMessage(ctx context.Context, content string) error {
	if len(content) > MaxMessageLength {
		return fmt.Errorf("discord: message too long: %d characters (max: %d)", len(content), MaxMessageLength)
	}
	return d.sendWithRetry(ctx, &WebhookPayload{
		Content:  content,
		Username: d.config.DefaultUsername,
	})
}

func (d *discordImpl) SendEmbed(ctx context.Context, opts MessageOptions) error {
	embed := Embed{
		Title:       truncate(opts.Title, MaxTitleLen),
		Description: truncate(opts.Description, MaxDescriptionLen),
		URL:         opts.URL,
		Color:       colorFor(opts.Type),
		Footer:      opts.Footer,
		Fields:      make([]EmbedField, 0, len(opts.Fields)),
	}
	for _, f := range opts.Fields {
		f.Value = truncate(f.Value, MaxFieldValueLen)
		embed.Fields = append(embed.Fields, f)
	}
	if !opts.Timestamp.IsZero() {
		embed.Timestamp = opts.Timestamp.UTC().Format(time.RFC3339)
	}
	if n := embedLength(embed); n > MaxEmbedLength {
		return fmt.Errorf("discord: embed too long: %d characters (max: %d)", n, MaxEmbedLength)
	}

	username := opts.Username
	if username == "" {
		username = d.config.DefaultUsername
	}
	return d.sendWithRetry(ctx, &WebhookPayload{Username: username, Embeds: []Embed{embed}})
}

func (d *discordImpl) ReportBug(ctx context.Context, message string) error {
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeError,
		Title:       ReportBugTitle,
		Description: fmt.Sprintf("```%s```", truncate(message, MaxDescriptionLen-6)),
		Timestamp:   time.Now(),
	})
}

func (d *discordImpl) sendWithRetry(ctx context.Context, payload *WebhookPayload) error {
	var lastErr error
	for attempt := 0; attempt <= d.config.RetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.config.RetryDelay):
			}
		}
		if lastErr = d.send(ctx, payload); lastErr == nil {
			return nil
		}
		if d.l != nil {
			d.l.Warnf(ctx, "pkg.discord.sendWithRetry: attempt %d failed: %v", attempt+1, lastErr)
		}
	}
	return fmt.Errorf("discord: failed after %d attempts: %w", d.config.RetryCount+1, lastErr)
}

func (d *discordImpl) send(ctx context.Context, payload *WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

func colorFor(t MessageType) int {
	switch t {
	case MessageTypeSuccess:
		return ColorGreen
	case MessageTypeWarning:
		return ColorYellow
	case MessageTypeError:
		return ColorRed
	case MessageTypeUrgent:
		return ColorOrange
	default:
		return ColorBlue
	}
}

func embedLength(e Embed) int {
	n := len(e.Title) + len(e.Description)
	for _, f := range e.Fields {
		n += len(f.Name) + len(f.Value)
	}
	return n
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max < 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
