package dispatch

import (
	"time"

	"sos-srv/internal/model"
)

// NewAlertInput describes a freshly raised SOS.
type NewAlertInput struct {
	AlertID       string
	RequesterID   string
	RequesterName string
	Location      model.Location
	CreatedAt     time.Time
}

// StatusChangeInput describes a lifecycle transition of an existing SOS.
type StatusChangeInput struct {
	AlertID string
	Status  model.AlertStatus
	// ActorID is the user who caused the transition.
	ActorID string
	At      time.Time
}
