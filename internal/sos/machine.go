package sos

import (
	"time"

	"sos-srv/internal/model"
)

const (
	OpAccept   = "accept"
	OpComplete = "complete"
	OpCancel   = "cancel"
	OpRelay    = "relay location"
)

var transitions = map[model.AlertStatus][]model.AlertStatus{
	model.AlertStatusActive:   {model.AlertStatusAccepted, model.AlertStatusCancelled},
	model.AlertStatusAccepted: {model.AlertStatusCompleted, model.AlertStatusCancelled},
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
func CanTransition(from, to model.AlertStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NewAlert builds an ACTIVE alert.
func NewAlert(id, requesterID string, loc model.Location, now time.Time) model.Alert {
	return model.Alert{
		ID:          id,
		RequesterID: requesterID,
		Location:    loc,
		Status:      model.AlertStatusActive,
		CreatedAt:   now,
	}
}

// Accept binds responderID to an ACTIVE alert.
func Accept(a model.Alert, responderID string, now time.Time) (model.Alert, error) {
	if !CanAccept(responderID, a) || !CanTransition(a.Status, model.AlertStatusAccepted) {
		return a, &StateError{Current: a.Status, Op: OpAccept}
	}
	rid := responderID
	a.Status = model.AlertStatusAccepted
	a.ResponderID = &rid
	a.AcceptedAt = &now
	return a, nil
}

// Complete finishes an ACCEPTED alert. Only the bound responder may do so,
// whatever the status.
func Complete(a model.Alert, actorID string, now time.Time) (model.Alert, error) {
	if !CanComplete(actorID, a) {
		return a, ErrForbidden
	}
	if !CanTransition(a.Status, model.AlertStatusCompleted) {
		return a, &StateError{Current: a.Status, Op: OpComplete}
	}
	a.Status = model.AlertStatusCompleted
	a.CompletedAt = &now
	return a, nil
}

// Cancel withdraws an ACTIVE or ACCEPTED alert on behalf of its requester.
func Cancel(a model.Alert, actorID string, now time.Time) (model.Alert, error) {
	if !a.IsRequester(actorID) {
		return a, ErrForbidden
	}
	if !CanCancel(actorID, a) {
		return a, &StateError{Current: a.Status, Op: OpCancel}
	}
	a.Status = model.AlertStatusCancelled
	a.CancelledAt = &now
	return a, nil
}

// CheckRelay validates that responderID may stream its location for a.
func CheckRelay(a model.Alert, responderID string) error {
	if !a.IsResponder(responderID) {
		return ErrForbidden
	}
	if a.Status != model.AlertStatusAccepted {
		return &StateError{Current: a.Status, Op: OpRelay}
	}
	return nil
}
