package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"sos-srv/internal/middleware"
	"sos-srv/internal/model"
	"sos-srv/internal/realtime"
	"sos-srv/internal/realtime/usecase"
	"sos-srv/internal/sos"
	"sos-srv/pkg/log"
	"sos-srv/pkg/scope"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingRelayer struct {
	mu    sync.Mutex
	calls []sos.RelayLocationInput
	who   []string
}

func (r *recordingRelayer) RelayLocation(_ context.Context, sc model.Scope, input sos.RelayLocationInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, input)
	r.who = append(r.who, sc.UserID)
	return nil
}

func (r *recordingRelayer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type env struct {
	uc  realtime.UseCase
	srv *httptest.Server
	mgr scope.Manager
}

func setup(t *testing.T) env {
	t.Helper()
	l := log.NewNop()
	mgr, err := scope.New(scope.Config{SecretKey: testSecret})
	require.NoError(t, err)

	uc := usecase.New(l, usecase.Config{MaxConnections: 10}, nil)
	go uc.Run()

	r := gin.New()
	New(l, uc, WSConfig{}).RegisterRoutes(r.Group("/api/v1"), middleware.New(l, mgr, "", nil))
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = uc.Shutdown(ctx)
		srv.Close()
	})
	return env{uc: uc, srv: srv, mgr: mgr}
}

func (e env) token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := e.mgr.CreateToken(scope.Payload{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}, Role: role})
	require.NoError(t, err)
	return tok
}

func (e env) dial(t *testing.T, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	u := "ws" + strings.TrimPrefix(e.srv.URL, "http") + "/api/v1/ws"
	if token != "" {
		u += "?token=" + token
	}
	return websocket.DefaultDialer.Dial(u, nil)
}

func (e env) waitConnections(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return e.uc.GetStats(context.Background()).ActiveConnections == n
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHandleWebSocket_Unauthorized(t *testing.T) {
	e := setup(t)

	_, resp, err := e.dial(t, "")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = e.dial(t, "not-a-token")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleWebSocket_DeliversByAudience(t *testing.T) {
	e := setup(t)

	police, _, err := e.dial(t, e.token(t, "p1", model.RolePolice))
	require.NoError(t, err)
	defer police.Close()
	civilian, _, err := e.dial(t, e.token(t, "u1", model.RoleUser))
	require.NoError(t, err)
	defer civilian.Close()
	e.waitConnections(t, 2)

	created, err := realtime.NewEvent(realtime.EventAlertCreated,
		realtime.Audience{Roles: []string{model.RolePolice}, ExcludeUserIDs: []string{"u1"}},
		realtime.AlertCreatedPayload{AlertID: "a1", RequesterID: "u1"}, time.Now())
	require.NoError(t, err)
	accepted, err := realtime.NewEvent(realtime.EventAlertAccepted,
		realtime.Audience{UserIDs: []string{"u1"}},
		realtime.AlertAcceptedPayload{AlertID: "a1", ResponderID: "p1"}, time.Now())
	require.NoError(t, err)

	e.uc.Publish(context.Background(), created)
	e.uc.Publish(context.Background(), accepted)

	var f realtime.Frame
	require.NoError(t, police.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, police.ReadJSON(&f))
	assert.Equal(t, realtime.EventAlertCreated, f.Type)
	assert.JSONEq(t, string(created.Payload), string(f.Payload))

	require.NoError(t, civilian.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, civilian.ReadJSON(&f))
	assert.Equal(t, realtime.EventAlertAccepted, f.Type, "civilian must not see alert-created")
}

func TestHandleWebSocket_InboundLocation(t *testing.T) {
	e := setup(t)
	relayer := &recordingRelayer{}
	e.uc.SetLocationRelayer(relayer)

	conn, _, err := e.dial(t, e.token(t, "p1", model.RolePolice))
	require.NoError(t, err)
	defer conn.Close()
	e.waitConnections(t, 1)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":    realtime.EventAlertLocationUpdate,
		"payload": map[string]any{"alert_id": "a1", "location": map[string]any{"lat": 23.81, "lng": 90.41}},
	}))

	require.Eventually(t, func() bool { return relayer.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	relayer.mu.Lock()
	defer relayer.mu.Unlock()
	assert.Equal(t, "a1", relayer.calls[0].AlertID)
	assert.Equal(t, model.Location{Lat: 23.81, Lng: 90.41}, relayer.calls[0].Location)
	assert.Equal(t, "p1", relayer.who[0])
}

func TestHandleWebSocket_DisconnectUnregisters(t *testing.T) {
	e := setup(t)

	conn, _, err := e.dial(t, e.token(t, "u1", model.RoleUser))
	require.NoError(t, err)
	e.waitConnections(t, 1)

	require.NoError(t, conn.Close())
	e.waitConnections(t, 0)
}

func TestCheckOrigin(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	open := checkOrigin(nil)
	assert.True(t, open(req("https://evil.example")))

	strict := checkOrigin([]string{"https://app.example"})
	assert.True(t, strict(req("https://app.example")))
	assert.True(t, strict(req("")))
	assert.False(t, strict(req("https://evil.example")))
}
