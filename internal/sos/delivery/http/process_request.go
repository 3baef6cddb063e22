package http

import (
	"strings"

	"sos-srv/internal/model"
	"sos-srv/internal/sos"
	"sos-srv/pkg/scope"
	"sos-srv/pkg/validator"

	"github.com/gin-gonic/gin"
)

func (h handler) callerScope(c *gin.Context) (model.Scope, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok || !sc.IsAuthenticated() {
		return model.Scope{}, sos.ErrUnauthenticated
	}
	return sc, nil
}

func (h handler) processCreateRequest(c *gin.Context) (model.Scope, createReq, error) {
	sc, err := h.callerScope(c)
	if err != nil {
		return model.Scope{}, createReq{}, err
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.sos.delivery.http.processCreateRequest.ShouldBindJSON: %v", err)
		return model.Scope{}, createReq{}, validator.Collect(err)
	}
	return sc, req, nil
}

func (h handler) processAcceptRequest(c *gin.Context) (model.Scope, acceptReq, error) {
	sc, err := h.callerScope(c)
	if err != nil {
		return model.Scope{}, acceptReq{}, err
	}

	var req acceptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.sos.delivery.http.processAcceptRequest.ShouldBindJSON: %v", err)
		return model.Scope{}, acceptReq{}, validator.Collect(err)
	}
	return sc, req, nil
}

func (h handler) processRelayRequest(c *gin.Context) (model.Scope, relayReq, error) {
	sc, err := h.callerScope(c)
	if err != nil {
		return model.Scope{}, relayReq{}, err
	}

	var req relayReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.sos.delivery.http.processRelayRequest.ShouldBindJSON: %v", err)
		return model.Scope{}, relayReq{}, validator.Collect(err)
	}
	return sc, req, nil
}

// processAlertIDRequest resolves the target alert from the path, then the
// X-SOS-ID header, then an optional JSON body.
func (h handler) processAlertIDRequest(c *gin.Context) (model.Scope, string, error) {
	sc, err := h.callerScope(c)
	if err != nil {
		return model.Scope{}, "", err
	}

	if id := strings.TrimSpace(c.Param("id")); id != "" {
		return sc, id, nil
	}
	if id := strings.TrimSpace(c.GetHeader(AlertIDHeader)); id != "" {
		return sc, id, nil
	}

	var req alertIDReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.l.Warnf(c.Request.Context(), "internal.sos.delivery.http.processAlertIDRequest.ShouldBindJSON: %v", err)
			return model.Scope{}, "", validator.Collect(err)
		}
	}
	if id := strings.TrimSpace(req.AlertID); id != "" {
		return sc, id, nil
	}
	return model.Scope{}, "", errMissingAlertID
}

func (h handler) processHistoryRequest(c *gin.Context) (model.Scope, historyReq, error) {
	sc, err := h.callerScope(c)
	if err != nil {
		return model.Scope{}, historyReq{}, err
	}

	var req historyReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.sos.delivery.http.processHistoryRequest.ShouldBindQuery: %v", err)
		return model.Scope{}, historyReq{}, validator.Collect(err)
	}
	return sc, req, nil
}
