package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"sos-srv/internal/model"
	"sos-srv/internal/realtime"
	"sos-srv/internal/sos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// testLogger implements log.Logger for testing
type testLogger struct{}

func (m *testLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *testLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func testConn(hub *Hub, userID, role string, buffer int) *Connection {
	return &Connection{
		hub:     hub,
		scope:   model.Scope{UserID: userID, Role: role},
		client:  realtime.Client{UserID: userID, Role: role},
		send:    make(chan []byte, buffer),
		cfg:     Config{}.withDefaults(),
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  &testLogger{},
		done:    make(chan struct{}),
	}
}

func startHub(t *testing.T, maxConnections int) *Hub {
	t.Helper()
	hub := newHub(&testLogger{}, maxConnections, nil)
	go hub.Run()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = hub.Shutdown(ctx)
	})
	return hub
}

func registerAll(t *testing.T, hub *Hub, conns ...*Connection) {
	t.Helper()
	before := hub.Stats().ActiveConnections
	for _, c := range conns {
		hub.register <- c
	}
	require.Eventually(t, func() bool {
		return hub.Stats().ActiveConnections == before+len(conns)
	}, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Connection) realtime.Frame {
	t.Helper()
	select {
	case data := <-c.send:
		var f realtime.Frame
		require.NoError(t, json.Unmarshal(data, &f))
		return f
	case <-time.After(time.Second):
		t.Fatalf("no frame for %s", c.client.UserID)
		return realtime.Frame{}
	}
}

func assertSilent(t *testing.T, c *Connection) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Fatalf("unexpected frame for %s: %s", c.client.UserID, data)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestHubDeliversByAudience(t *testing.T) {
	hub := startHub(t, 100)

	creator := testConn(hub, "p1", model.RolePolice, 8)
	other := testConn(hub, "p2", model.RolePolice, 8)
	otherTab := testConn(hub, "p2", model.RolePolice, 8)
	civilian := testConn(hub, "u1", model.RoleUser, 8)
	registerAll(t, hub, creator, other, otherTab, civilian)

	ev, err := realtime.NewEvent(realtime.EventAlertCreated,
		realtime.Audience{Roles: []string{model.RolePolice}, ExcludeUserIDs: []string{"p1"}},
		realtime.AlertIDPayload{AlertID: "a1"}, time.Now())
	require.NoError(t, err)
	require.True(t, hub.enqueue(ev))

	assert.Equal(t, realtime.EventAlertCreated, receive(t, other).Type)
	assert.Equal(t, realtime.EventAlertCreated, receive(t, otherTab).Type)
	assertSilent(t, creator)
	assertSilent(t, civilian)
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := startHub(t, 100)

	slow := testConn(hub, "u1", model.RoleUser, 1)
	fast := testConn(hub, "u1", model.RoleUser, 8)
	registerAll(t, hub, slow, fast)

	data := []byte(`{}`)
	pred := func(c realtime.Client) bool { return c.UserID == "u1" }

	sent, dropped := hub.BroadcastWhere(pred, data)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 0, dropped)

	sent, dropped = hub.BroadcastWhere(pred, data)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, dropped)

	stats := hub.Stats()
	assert.Equal(t, int64(3), stats.MessagesSent)
	assert.Equal(t, int64(1), stats.MessagesDropped)
	assert.Equal(t, 1, stats.TotalUniqueUsers)
}

func TestHubUnregister(t *testing.T) {
	hub := startHub(t, 100)

	c1 := testConn(hub, "u1", model.RoleUser, 8)
	c2 := testConn(hub, "u1", model.RoleUser, 8)
	registerAll(t, hub, c1, c2)

	hub.unregister <- c1
	require.Eventually(t, func() bool { return hub.Stats().ActiveConnections == 1 }, time.Second, 5*time.Millisecond)

	_, ok := <-c1.send
	assert.False(t, ok, "send channel is closed on unregister")

	// A second unregister of the same connection is ignored.
	hub.unregister <- c1
	hub.unregister <- c2
	require.Eventually(t, func() bool { return hub.Stats().TotalUniqueUsers == 0 }, time.Second, 5*time.Millisecond)
}

func TestHubMaxConnections(t *testing.T) {
	hub := startHub(t, 1)

	first := testConn(hub, "u1", model.RoleUser, 8)
	registerAll(t, hub, first)

	second := testConn(hub, "u2", model.RoleUser, 8)
	hub.register <- second

	select {
	case <-second.done:
	case <-time.After(time.Second):
		t.Fatal("connection over the limit was not closed")
	}
	assert.Equal(t, 1, hub.Stats().ActiveConnections)
}

func TestHubShutdownClosesConnections(t *testing.T) {
	hub := newHub(&testLogger{}, 10, nil)
	go hub.Run()

	c := testConn(hub, "u1", model.RoleUser, 8)
	registerAll(t, hub, c)

	require.NoError(t, hub.Shutdown(context.Background()))

	select {
	case <-c.done:
	case <-time.After(time.Second):
		t.Fatal("connection not closed on shutdown")
	}
	assert.False(t, hub.enqueue(realtime.Event{Type: realtime.EventAlertCompleted}))
}

type recordingRelayer struct {
	mu    sync.Mutex
	calls []sos.RelayLocationInput
	err   error
}

func (r *recordingRelayer) RelayLocation(ctx context.Context, sc model.Scope, input sos.RelayLocationInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, input)
	return r.err
}

func TestConnectionHandleInbound(t *testing.T) {
	hub := newHub(&testLogger{}, 10, nil)
	relayer := &recordingRelayer{err: sos.ErrForbidden}
	hub.setRelayer(relayer)

	c := testConn(hub, "p1", model.RolePolice, 8)

	c.handleInbound([]byte(`{"type":"alert-location-update","payload":{"alert_id":"a1","location":{"lat":23.81,"lng":90.41}}}`))
	c.handleInbound([]byte(`{"type":"something-else","payload":{}}`))
	c.handleInbound([]byte(`not json`))

	require.Len(t, relayer.calls, 1)
	assert.Equal(t, sos.RelayLocationInput{AlertID: "a1", Location: model.Location{Lat: 23.81, Lng: 90.41}}, relayer.calls[0])
}

func TestConnectionInboundRateLimit(t *testing.T) {
	hub := newHub(&testLogger{}, 10, nil)
	relayer := &recordingRelayer{}
	hub.setRelayer(relayer)

	c := testConn(hub, "p1", model.RolePolice, 8)
	c.limiter = rate.NewLimiter(rate.Every(time.Hour), 2)

	msg := []byte(`{"type":"alert-location-update","payload":{"alert_id":"a1","location":{"lat":1,"lng":2}}}`)
	for i := 0; i < 5; i++ {
		c.handleInbound(msg)
	}

	assert.Len(t, relayer.calls, 2)
}

func TestConnectionCloseIdempotent(t *testing.T) {
	c := testConn(nil, "u1", model.RoleUser, 1)
	assert.NotPanics(t, func() {
		c.Close()
		c.Close()
	})
}
