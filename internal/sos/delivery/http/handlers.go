package http

import (
	"sos-srv/internal/sos"
	"sos-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	opCreate  = "create"
	opDetail  = "detail"
	opList    = "list"
	opHistory = "history"
)

// @Summary Raise an SOS
// @Description Creates an ACTIVE alert at the caller's location and notifies every connected responder.
// @Tags SOS
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createReq true "Location"
// @Success 201 {object} response.Resp{data=alertResp}
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /sos [POST]
func (h handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processCreateRequest(c)
	if err != nil {
		h.fail(c, opCreate, err)
		return
	}

	a, err := h.uc.CreateAlert(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "internal.sos.delivery.http.Create.CreateAlert: %v", err)
		h.fail(c, opCreate, err)
		return
	}

	response.Created(c, newAlertResp(a))
}

// @Summary Accept an SOS
// @Description Binds the calling police officer to an ACTIVE alert. The first officer to commit wins; later callers get INVALID_STATE with the current status.
// @Tags SOS
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body acceptReq true "Alert and responder location"
// @Success 200 {object} response.Resp{data=transitionResp}
// @Failure 400 {object} response.Resp{data=stateData}
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /sos/accept [POST]
func (h handler) Accept(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processAcceptRequest(c)
	if err != nil {
		h.fail(c, sos.OpAccept, err)
		return
	}

	a, err := h.uc.AcceptAlert(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "internal.sos.delivery.http.Accept.AcceptAlert: %v", err)
		h.fail(c, sos.OpAccept, err)
		return
	}

	response.OK(c, newTransitionResp(msgAccepted, a))
}

// @Summary Relay responder location
// @Description Forwards the assigned officer's live position to the requester. Nothing is stored.
// @Tags SOS
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body relayReq true "Alert and location"
// @Success 200 {object} response.Resp{data=messageResp}
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /sos/location [POST]
func (h handler) RelayLocation(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processRelayRequest(c)
	if err != nil {
		h.fail(c, sos.OpRelay, err)
		return
	}

	if err := h.uc.RelayLocation(ctx, sc, req.toInput()); err != nil {
		h.l.Warnf(ctx, "internal.sos.delivery.http.RelayLocation.RelayLocation: %v", err)
		h.fail(c, sos.OpRelay, err)
		return
	}

	response.OK(c, messageResp{Message: msgRelayed})
}

// @Summary Complete an SOS
// @Description Marks an ACCEPTED alert as COMPLETED. Only the officer who accepted it may do so.
// @Tags SOS
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string false "Alert ID"
// @Param body body alertIDReq false "Alert ID when not in the path"
// @Success 200 {object} response.Resp{data=transitionResp}
// @Failure 400 {object} response.Resp{data=stateData}
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /sos/complete/{id} [POST]
func (h handler) Complete(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processAlertIDRequest(c)
	if err != nil {
		h.fail(c, sos.OpComplete, err)
		return
	}

	a, err := h.uc.CompleteAlert(ctx, sc, id)
	if err != nil {
		h.l.Warnf(ctx, "internal.sos.delivery.http.Complete.CompleteAlert: %v", err)
		h.fail(c, sos.OpComplete, err)
		return
	}

	response.OK(c, newTransitionResp(msgCompleted, a))
}

// @Summary Cancel an SOS
// @Description Withdraws the caller's own ACTIVE or ACCEPTED alert. The id comes from the X-SOS-ID header or the body.
// @Tags SOS
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-SOS-ID header string false "Alert ID"
// @Param body body alertIDReq false "Alert ID when the header is absent"
// @Success 200 {object} response.Resp{data=transitionResp}
// @Failure 400 {object} response.Resp{data=stateData}
// @Failure 401 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /sos/cancel [POST]
func (h handler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processAlertIDRequest(c)
	if err != nil {
		h.fail(c, sos.OpCancel, err)
		return
	}

	a, err := h.uc.CancelAlert(ctx, sc, id)
	if err != nil {
		h.l.Warnf(ctx, "internal.sos.delivery.http.Cancel.CancelAlert: %v", err)
		h.fail(c, sos.OpCancel, err)
		return
	}

	response.OK(c, newTransitionResp(msgCancelled, a))
}

// @Summary Get an SOS
// @Tags SOS
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Resp{data=alertResp}
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /sos/{id} [GET]
func (h handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processAlertIDRequest(c)
	if err != nil {
		h.fail(c, opDetail, err)
		return
	}

	a, err := h.uc.Detail(ctx, sc, id)
	if err != nil {
		h.l.Warnf(ctx, "internal.sos.delivery.http.Detail.Detail: %v", err)
		h.fail(c, opDetail, err)
		return
	}

	response.OK(c, newAlertResp(a))
}

// @Summary List active SOS alerts
// @Description Alerts still waiting for a responder, newest first.
// @Tags SOS
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Resp{data=[]alertResp}
// @Failure 403 {object} response.Resp
// @Router /sos/active [GET]
func (h handler) ListActive(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.callerScope(c)
	if err != nil {
		h.fail(c, opList, err)
		return
	}

	alerts, err := h.uc.ListActive(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "internal.sos.delivery.http.ListActive.ListActive: %v", err)
		h.fail(c, opList, err)
		return
	}

	response.OK(c, newAlertListResp(alerts))
}

// @Summary SOS history
// @Description Alerts the caller raised or responded to, newest first.
// @Tags SOS
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size, at most 100"
// @Success 200 {object} response.Resp{data=[]alertResp}
// @Router /sos/history [GET]
func (h handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processHistoryRequest(c)
	if err != nil {
		h.fail(c, opHistory, err)
		return
	}

	alerts, err := h.uc.History(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "internal.sos.delivery.http.History.History: %v", err)
		h.fail(c, opHistory, err)
		return
	}

	response.OK(c, newAlertListResp(alerts))
}
