package sos

import "sos-srv/internal/model"

// CanView reports whether actorID is the requester or the bound responder.
func CanView(actorID string, a model.Alert) bool {
	return a.IsRequester(actorID) || a.IsResponder(actorID)
}

// CanAccept reports whether the alert is still open for acceptance. The
// caller's role is checked before this is consulted.
func CanAccept(_ string, a model.Alert) bool {
	return a.Status == model.AlertStatusActive
}

// CanComplete reports whether actorID is the bound responder.
func CanComplete(actorID string, a model.Alert) bool {
	return a.IsResponder(actorID)
}

// CanCancel reports whether actorID raised the alert and it is not finished.
func CanCancel(actorID string, a model.Alert) bool {
	return a.IsRequester(actorID) &&
		(a.Status == model.AlertStatusActive || a.Status == model.AlertStatusAccepted)
}
