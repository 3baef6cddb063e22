package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sos-srv/internal/middleware"
	"sos-srv/internal/model"
	"sos-srv/internal/realtime"
	"sos-srv/internal/sos"
	"sos-srv/internal/sos/repository/memory"
	"sos-srv/internal/sos/usecase"
	pkgErrors "sos-srv/pkg/errors"
	"sos-srv/pkg/log"
	"sos-srv/pkg/response"
	"sos-srv/pkg/scope"
	"sos-srv/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterGin(); err != nil {
		panic(err)
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, realtime.Event) {}

type server struct {
	t      *testing.T
	router *gin.Engine
	mgr    scope.Manager
}

func newServer(t *testing.T, uc sos.UseCase) *server {
	t.Helper()
	l := log.NewNop()
	mgr, err := scope.New(scope.Config{SecretKey: testSecret})
	require.NoError(t, err)

	if uc == nil {
		uc = usecase.New(l, memory.New(l), nopPublisher{}, nil, nil)
	}

	r := gin.New()
	r.Use(middleware.Recovery(l, nil))
	mw := middleware.New(l, mgr, "", nil)
	New(l, uc).RegisterRoutes(r.Group("/api/v1"), mw, mw.RateLimit(t.Context(), middleware.RateLimitConfig{}))
	return &server{t: t, router: r, mgr: mgr}
}

func (s *server) token(userID, role string) string {
	tok, err := s.mgr.CreateToken(scope.Payload{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}, Role: role})
	require.NoError(s.t, err)
	return tok
}

func (s *server) do(method, path, token string, body any, headers ...string) (*httptest.ResponseRecorder, response.Resp) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp response.Resp
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func dataOf[T any](t *testing.T, resp response.Resp) T {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

var dhaka = map[string]any{"lat": 23.8, "lng": 90.4}

func (s *server) create(token string) alertResp {
	w, resp := s.do(http.MethodPost, "/api/v1/sos", token, map[string]any{"location": dhaka})
	require.Equal(s.t, http.StatusCreated, w.Code)
	return dataOf[alertResp](s.t, resp)
}

func TestCreate(t *testing.T) {
	s := newServer(t, nil)
	u1 := s.token("u1", model.RoleUser)

	a := s.create(u1)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "ACTIVE", a.Status)
	assert.Equal(t, locationResp{Lat: 23.8, Lng: 90.4}, a.Location)
	assert.Nil(t, a.ResponderID)

	tcs := map[string]struct {
		token string
		body  any
		code  int
		kind  pkgErrors.Kind
	}{
		"no token":         {body: map[string]any{"location": dhaka}, code: http.StatusUnauthorized, kind: pkgErrors.KindUnauthenticated},
		"missing location": {token: u1, body: map[string]any{}, code: http.StatusBadRequest, kind: pkgErrors.KindValidation},
		"lat out of range": {token: u1, body: map[string]any{"location": map[string]any{"lat": 95, "lng": 0}}, code: http.StatusBadRequest, kind: pkgErrors.KindValidation},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			w, resp := s.do(http.MethodPost, "/api/v1/sos", tc.token, tc.body)
			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, tc.kind, resp.Kind)
		})
	}
}

func TestAccept(t *testing.T) {
	s := newServer(t, nil)
	u1 := s.token("u1", model.RoleUser)
	p1 := s.token("p1", model.RolePolice)
	p2 := s.token("p2", model.RolePolice)

	a := s.create(u1)
	body := map[string]any{"alert_id": a.ID, "responder_location": dhaka}

	w, _ := s.do(http.MethodPost, "/api/v1/sos/accept", u1, body)
	assert.Equal(t, http.StatusForbidden, w.Code, "civilians cannot accept")

	w, resp := s.do(http.MethodPost, "/api/v1/sos/accept", p1, body)
	require.Equal(t, http.StatusOK, w.Code)
	got := dataOf[transitionResp](t, resp)
	assert.Equal(t, msgAccepted, got.Message)
	assert.Equal(t, "ACCEPTED", got.Status)
	require.NotNil(t, got.ResponderID)
	assert.Equal(t, "p1", *got.ResponderID)

	w, resp = s.do(http.MethodPost, "/api/v1/sos/accept", p2, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, pkgErrors.KindInvalidState, resp.Kind)
	assert.Equal(t, "SOS is already accepted", resp.Message)
	assert.Equal(t, "ACCEPTED", dataOf[stateData](t, resp).Status)

	w, resp = s.do(http.MethodPost, "/api/v1/sos/accept", p2, map[string]any{"alert_id": "missing", "responder_location": dhaka})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SOS not found", resp.Message)
}

func TestRelayLocation(t *testing.T) {
	s := newServer(t, nil)
	u1 := s.token("u1", model.RoleUser)
	p1 := s.token("p1", model.RolePolice)
	p2 := s.token("p2", model.RolePolice)

	a := s.create(u1)
	_, _ = s.do(http.MethodPost, "/api/v1/sos/accept", p1, map[string]any{"alert_id": a.ID, "responder_location": dhaka})

	body := map[string]any{"alert_id": a.ID, "location": map[string]any{"lat": 23.81, "lng": 90.41}}
	w, resp := s.do(http.MethodPost, "/api/v1/sos/location", p1, body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, msgRelayed, dataOf[messageResp](t, resp).Message)

	w, resp = s.do(http.MethodPost, "/api/v1/sos/location", p2, body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, forbiddenMessages[sos.OpRelay], resp.Message)
}

func TestComplete(t *testing.T) {
	s := newServer(t, nil)
	u1 := s.token("u1", model.RoleUser)
	p1 := s.token("p1", model.RolePolice)
	p2 := s.token("p2", model.RolePolice)

	a := s.create(u1)
	_, _ = s.do(http.MethodPost, "/api/v1/sos/accept", p1, map[string]any{"alert_id": a.ID, "responder_location": dhaka})

	w, resp := s.do(http.MethodPost, "/api/v1/sos/complete/"+a.ID, p2, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only the police officer who accepted this SOS can complete it", resp.Message)

	w, resp = s.do(http.MethodPost, "/api/v1/sos/complete/"+a.ID, p1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "COMPLETED", dataOf[transitionResp](t, resp).Status)

	w, _ = s.do(http.MethodPost, "/api/v1/sos/complete/missing", p1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	b := s.create(u1)
	_, _ = s.do(http.MethodPost, "/api/v1/sos/accept", p1, map[string]any{"alert_id": b.ID, "responder_location": dhaka})
	w, resp = s.do(http.MethodPost, "/api/v1/sos/complete", p1, map[string]any{"alert_id": b.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, b.ID, dataOf[transitionResp](t, resp).AlertID)

	w, resp = s.do(http.MethodPost, "/api/v1/sos/complete", p1, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SOS ID is required", resp.Message)
}

func TestCancel(t *testing.T) {
	s := newServer(t, nil)
	u1 := s.token("u1", model.RoleUser)
	u2 := s.token("u2", model.RoleUser)

	a := s.create(u2)

	w, _ := s.do(http.MethodPost, "/api/v1/sos/cancel", "", nil, AlertIDHeader, a.ID)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := s.do(http.MethodPost, "/api/v1/sos/cancel", u1, nil, AlertIDHeader, a.ID)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, forbiddenMessages[sos.OpCancel], resp.Message)

	w, resp = s.do(http.MethodPost, "/api/v1/sos/cancel", u2, nil, AlertIDHeader, a.ID)
	require.Equal(t, http.StatusOK, w.Code)
	got := dataOf[transitionResp](t, resp)
	assert.Equal(t, "CANCELLED", got.Status)
	assert.Equal(t, msgCancelled, got.Message)
	assert.Nil(t, got.ResponderID)

	w, resp = s.do(http.MethodPost, "/api/v1/sos/cancel", u2, map[string]any{"alert_id": a.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SOS is already cancelled", resp.Message)

	w, _ = s.do(http.MethodPost, "/api/v1/sos/cancel", u2, map[string]any{"alert_id": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailAndLists(t *testing.T) {
	s := newServer(t, nil)
	u1 := s.token("u1", model.RoleUser)
	u2 := s.token("u2", model.RoleUser)
	p1 := s.token("p1", model.RolePolice)

	first := s.create(u1)
	second := s.create(u1)

	w, resp := s.do(http.MethodGet, "/api/v1/sos/"+first.ID, u1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first.ID, dataOf[alertResp](t, resp).ID)

	w, resp = s.do(http.MethodGet, "/api/v1/sos/"+first.ID, u2, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, pkgErrors.MessageForbidden, resp.Message)

	w, _ = s.do(http.MethodGet, "/api/v1/sos/active", u1, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = s.do(http.MethodGet, "/api/v1/sos/active", p1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	active := dataOf[[]alertResp](t, resp)
	require.Len(t, active, 2)
	assert.Equal(t, second.ID, active[0].ID)

	w, resp = s.do(http.MethodGet, "/api/v1/sos/history?limit=1", u1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataOf[[]alertResp](t, resp), 1)

	w, resp = s.do(http.MethodGet, "/api/v1/sos/history?limit=0", u1, nil)
	assert.Equal(t, http.StatusOK, w.Code, resp.Message)

	w, _ = s.do(http.MethodGet, "/api/v1/sos/history?limit=-1", u1, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type mockUseCase struct {
	mock.Mock
	sos.UseCase
}

func (m *mockUseCase) ListActive(ctx context.Context, sc model.Scope) ([]model.Alert, error) {
	args := m.Called(ctx, sc)
	alerts, _ := args.Get(0).([]model.Alert)
	return alerts, args.Error(1)
}

func TestUnknownErrorIsTransient(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("ListActive", mock.Anything, mock.MatchedBy(func(sc model.Scope) bool { return sc.UserID == "p1" })).
		Return(nil, errors.New("dial tcp: connection refused"))

	s := newServer(t, uc)
	w, resp := s.do(http.MethodGet, "/api/v1/sos/active", s.token("p1", model.RolePolice), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, pkgErrors.KindTransient, resp.Kind)
	assert.Equal(t, response.DefaultErrorMessage, resp.Message)
	uc.AssertExpectations(t)
}
