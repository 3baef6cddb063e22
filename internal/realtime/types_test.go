package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"sos-srv/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudienceMatches(t *testing.T) {
	police := Client{UserID: "p1", Role: model.RolePolice}
	otherPolice := Client{UserID: "p2", Role: model.RolePolice}
	civilian := Client{UserID: "u1", Role: model.RoleUser}

	responders := Audience{Roles: []string{model.RolePolice}, ExcludeUserIDs: []string{"p1"}}
	assert.False(t, responders.Matches(police))
	assert.True(t, responders.Matches(otherPolice))
	assert.False(t, responders.Matches(civilian))

	requester := Audience{UserIDs: []string{"u1"}}
	assert.True(t, requester.Matches(civilian))
	assert.False(t, requester.Matches(police))

	assert.False(t, Audience{}.Matches(civilian))
}

func TestNewEvent(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ev, err := NewEvent(EventAlertCancelled, Audience{UserIDs: []string{"u1"}}, AlertIDPayload{AlertID: "a1"}, now)
	require.NoError(t, err)
	assert.JSONEq(t, `{"alert_id":"a1"}`, string(ev.Payload))

	raw, err := json.Marshal(ev.Frame())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"alert-cancelled","payload":{"alert_id":"a1"},"timestamp":"2024-05-01T12:00:00Z"}`, string(raw))

	_, err = NewEvent(EventAlertCreated, Audience{}, make(chan int), now)
	assert.Error(t, err)
}
