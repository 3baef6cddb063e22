package model

import (
	"time"

	"sos-srv/internal/sqlboiler"

	"github.com/aarondl/null/v8"
)

// AlertStatus is the lifecycle state of an SOS alert.
type AlertStatus string

const (
	AlertStatusActive    AlertStatus = "ACTIVE"
	AlertStatusAccepted  AlertStatus = "ACCEPTED"
	AlertStatusCompleted AlertStatus = "COMPLETED"
	AlertStatusCancelled AlertStatus = "CANCELLED"
)

// IsValid reports whether s is one of the known statuses.
func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertStatusActive, AlertStatusAccepted, AlertStatusCompleted, AlertStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s AlertStatus) IsTerminal() bool {
	return s == AlertStatusCompleted || s == AlertStatusCancelled
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Alert is an SOS alert raised by a civilian.
type Alert struct {
	ID          string      `json:"id"`
	RequesterID string      `json:"requester_id"`
	Location    Location    `json:"location"`
	Status      AlertStatus `json:"status"`
	ResponderID *string     `json:"responder_id"`
	CreatedAt   time.Time   `json:"created_at"`
	AcceptedAt  *time.Time  `json:"accepted_at"`
	CompletedAt *time.Time  `json:"completed_at"`
	CancelledAt *time.Time  `json:"cancelled_at"`
}

// IsRequester reports whether userID raised the alert.
func (a Alert) IsRequester(userID string) bool {
	return userID != "" && a.RequesterID == userID
}

// IsResponder reports whether userID is the bound responder.
func (a Alert) IsResponder(userID string) bool {
	return userID != "" && a.ResponderID != nil && *a.ResponderID == userID
}

// Participants returns the requester followed by the responder when bound.
func (a Alert) Participants() []string {
	ids := []string{a.RequesterID}
	if a.ResponderID != nil {
		ids = append(ids, *a.ResponderID)
	}
	return ids
}

// NewAlertFromDB converts the storage row into the domain model.
func NewAlertFromDB(row *sqlboiler.SosAlert) *Alert {
	a := &Alert{
		ID:          row.ID,
		RequesterID: row.RequesterID,
		Location:    Location{Lat: row.Lat, Lng: row.LNG},
		Status:      AlertStatus(row.Status),
		CreatedAt:   row.CreatedAt,
	}
	if row.ResponderID.Valid {
		a.ResponderID = &row.ResponderID.String
	}
	if row.AcceptedAt.Valid {
		a.AcceptedAt = &row.AcceptedAt.Time
	}
	if row.CompletedAt.Valid {
		a.CompletedAt = &row.CompletedAt.Time
	}
	if row.CancelledAt.Valid {
		a.CancelledAt = &row.CancelledAt.Time
	}
	return a
}

// ToDBAlert converts the domain model into the storage row.
func (a Alert) ToDBAlert() *sqlboiler.SosAlert {
	return &sqlboiler.SosAlert{
		ID:          a.ID,
		RequesterID: a.RequesterID,
		Lat:         a.Location.Lat,
		LNG:         a.Location.Lng,
		Status:      string(a.Status),
		ResponderID: null.StringFromPtr(a.ResponderID),
		CreatedAt:   a.CreatedAt,
		AcceptedAt:  null.TimeFromPtr(a.AcceptedAt),
		CompletedAt: null.TimeFromPtr(a.CompletedAt),
		CancelledAt: null.TimeFromPtr(a.CancelledAt),
	}
}
