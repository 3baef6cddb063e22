package realtime

import (
	"encoding/json"
	"time"

	"sos-srv/internal/model"
)

// EventType names an alert lifecycle event pushed to sockets.
type EventType string

const (
	EventAlertCreated         EventType = "alert-created"
	EventAlertAccepted        EventType = "alert-accepted"
	EventAlertAcceptedByOther EventType = "alert-accepted-by-other"
	EventAlertLocationUpdate  EventType = "alert-location-update"
	EventAlertCancelled       EventType = "alert-cancelled"
	EventAlertCompleted       EventType = "alert-completed"
)

// Client identifies the owner of a socket connection.
type Client struct {
	UserID string
	Role   string
}

// Audience selects the connections an event goes to. A connection matches
// when its user is listed in UserIDs or its role in Roles, unless the user
// is listed in ExcludeUserIDs.
type Audience struct {
	Roles          []string `json:"roles,omitempty"`
	UserIDs        []string `json:"user_ids,omitempty"`
	ExcludeUserIDs []string `json:"exclude_user_ids,omitempty"`
}

func (a Audience) Matches(c Client) bool {
	for _, id := range a.ExcludeUserIDs {
		if id == c.UserID {
			return false
		}
	}
	for _, id := range a.UserIDs {
		if id == c.UserID {
			return true
		}
	}
	for _, r := range a.Roles {
		if r == c.Role {
			return true
		}
	}
	return false
}

// Event is one lifecycle notification together with its audience. It is
// also the message relayed between instances.
type Event struct {
	Type      EventType       `json:"type"`
	Audience  Audience        `json:"audience"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent marshals payload into an Event stamped with now.
func NewEvent(typ EventType, aud Audience, payload any, now time.Time) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: typ, Audience: aud, Payload: raw, Timestamp: now}, nil
}

// Frame is what a socket client receives.
type Frame struct {
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

func (e Event) Frame() Frame {
	return Frame{Type: e.Type, Payload: e.Payload, Timestamp: e.Timestamp}
}

// --- Payloads ---

type AlertCreatedPayload struct {
	AlertID     string         `json:"alert_id"`
	RequesterID string         `json:"requester_id"`
	Location    model.Location `json:"location"`
	CreatedAt   time.Time      `json:"created_at"`
}

type AlertAcceptedPayload struct {
	AlertID           string         `json:"alert_id"`
	ResponderID       string         `json:"responder_id"`
	ResponderLocation model.Location `json:"responder_location"`
	AcceptedAt        time.Time      `json:"accepted_at"`
}

type AlertLocationPayload struct {
	AlertID     string         `json:"alert_id"`
	ResponderID string         `json:"responder_id"`
	Location    model.Location `json:"location"`
}

// AlertIDPayload carries only the alert id.
type AlertIDPayload struct {
	AlertID string `json:"alert_id"`
}

// --- Inbound ---

// InboundMessage is a message sent by a socket client.
type InboundMessage struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type InboundLocationPayload struct {
	AlertID  string         `json:"alert_id"`
	Location model.Location `json:"location"`
}

// --- UseCase inputs / outputs ---

// ConnectionInput represents an upgraded socket ready to be registered.
type ConnectionInput struct {
	Scope model.Scope
	Conn  any // *websocket.Conn
}

type HubStats struct {
	ActiveConnections int   `json:"active_connections"`
	MaxConnections    int   `json:"max_connections"`
	TotalUniqueUsers  int   `json:"total_unique_users"`
	MessagesSent      int64 `json:"messages_sent"`
	MessagesDropped   int64 `json:"messages_dropped"`
}
