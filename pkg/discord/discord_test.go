package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesWebhook(t *testing.T) {
	_, err := New(nil, "")
	assert.ErrorIs(t, err, errWebhookRequired)

	_, err = New(nil, "https://example.com/hook")
	assert.ErrorIs(t, err, errInvalidWebhook)

	_, err = New(nil, "https://discord.com/api/webhooks/123")
	assert.ErrorIs(t, err, errInvalidWebhook)

	d, err := New(nil, "https://discord.com/api/webhooks/123/abc")
	require.NoError(t, err)
	assert.NoError(t, d.Close())
}

func TestSendEmbed(t *testing.T) {
	var got WebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := newImpl(nil, srv.URL, DefaultConfig())
	err := d.SendEmbed(context.Background(), MessageOptions{
		Type:   MessageTypeUrgent,
		Title:  "New SOS",
		Fields: []EmbedField{{Name: "Location", Value: strings.Repeat("x", 2000)}},
	})
	require.NoError(t, err)

	require.Len(t, got.Embeds, 1)
	assert.Equal(t, DefaultUsername, got.Username)
	assert.Equal(t, ColorOrange, got.Embeds[0].Color)
	assert.Len(t, got.Embeds[0].Fields[0].Value, MaxFieldValueLen)
}

func TestSendWithRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.RetryDelay = time.Millisecond
	d := newImpl(nil, srv.URL, cfg)

	require.NoError(t, d.SendMessage(context.Background(), "hello"))
	assert.Equal(t, int32(2), calls.Load())
}

func TestSendMessageTooLong(t *testing.T) {
	d := newImpl(nil, "http://unused", DefaultConfig())
	err := d.SendMessage(context.Background(), strings.Repeat("a", MaxMessageLength+1))
	assert.Error(t, err)
}
