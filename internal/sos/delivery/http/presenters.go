package http

import (
	"time"

	"sos-srv/internal/model"
	"sos-srv/internal/sos"
	"sos-srv/pkg/paginator"
)

// AlertIDHeader carries the alert id on cancel requests from clients that
// send no body.
const AlertIDHeader = "X-SOS-ID"

const (
	msgCreated   = "SOS created successfully"
	msgAccepted  = "SOS accepted successfully"
	msgRelayed   = "Location relayed"
	msgCompleted = "SOS marked as completed"
	msgCancelled = "SOS cancelled successfully"
)

type locationReq struct {
	Lat *float64 `json:"lat" binding:"required,lat" example:"23.8"`
	Lng *float64 `json:"lng" binding:"required,lng" example:"90.4"`
}

func (r locationReq) toLocation() model.Location {
	var loc model.Location
	if r.Lat != nil {
		loc.Lat = *r.Lat
	}
	if r.Lng != nil {
		loc.Lng = *r.Lng
	}
	return loc
}

type createReq struct {
	Location locationReq `json:"location"`
}

func (r createReq) toInput() sos.CreateInput {
	return sos.CreateInput{Location: r.Location.toLocation()}
}

type acceptReq struct {
	AlertID           string      `json:"alert_id" binding:"required"`
	ResponderLocation locationReq `json:"responder_location"`
}

func (r acceptReq) toInput() sos.AcceptInput {
	return sos.AcceptInput{
		AlertID:           r.AlertID,
		ResponderLocation: r.ResponderLocation.toLocation(),
	}
}

type relayReq struct {
	AlertID  string      `json:"alert_id" binding:"required"`
	Location locationReq `json:"location"`
}

func (r relayReq) toInput() sos.RelayLocationInput {
	return sos.RelayLocationInput{
		AlertID:  r.AlertID,
		Location: r.Location.toLocation(),
	}
}

type alertIDReq struct {
	AlertID string `json:"alert_id"`
}

type historyReq struct {
	Page  int   `form:"page" binding:"omitempty,min=1"`
	Limit int64 `form:"limit" binding:"omitempty,min=1"`
}

func (r historyReq) toInput() sos.HistoryInput {
	return sos.HistoryInput{Paginate: paginator.PaginateQuery{Page: r.Page, Limit: r.Limit}}
}

type locationResp struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type alertResp struct {
	ID          string       `json:"id"`
	RequesterID string       `json:"requester_id"`
	Location    locationResp `json:"location"`
	Status      string       `json:"status"`
	ResponderID *string      `json:"responder_id"`
	CreatedAt   time.Time    `json:"created_at"`
	AcceptedAt  *time.Time   `json:"accepted_at"`
	CompletedAt *time.Time   `json:"completed_at"`
	CancelledAt *time.Time   `json:"cancelled_at"`
}

func newAlertResp(a model.Alert) alertResp {
	return alertResp{
		ID:          a.ID,
		RequesterID: a.RequesterID,
		Location:    locationResp{Lat: a.Location.Lat, Lng: a.Location.Lng},
		Status:      string(a.Status),
		ResponderID: a.ResponderID,
		CreatedAt:   a.CreatedAt,
		AcceptedAt:  a.AcceptedAt,
		CompletedAt: a.CompletedAt,
		CancelledAt: a.CancelledAt,
	}
}

func newAlertListResp(alerts []model.Alert) []alertResp {
	out := make([]alertResp, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, newAlertResp(a))
	}
	return out
}

type transitionResp struct {
	Message     string  `json:"message"`
	AlertID     string  `json:"alert_id"`
	ResponderID *string `json:"responder_id,omitempty"`
	Status      string  `json:"status"`
}

func newTransitionResp(msg string, a model.Alert) transitionResp {
	return transitionResp{
		Message:     msg,
		AlertID:     a.ID,
		ResponderID: a.ResponderID,
		Status:      string(a.Status),
	}
}

type messageResp struct {
	Message string `json:"message"`
}
