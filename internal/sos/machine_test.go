package sos

import (
	"errors"
	"testing"
	"time"

	"sos-srv/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func accepted(t *testing.T, responderID string) model.Alert {
	t.Helper()
	a, err := Accept(NewAlert("a1", "u1", model.Location{Lat: 23.8, Lng: 90.4}, testNow), responderID, testNow)
	require.NoError(t, err)
	return a
}

func TestNewAlert(t *testing.T) {
	a := NewAlert("a1", "u1", model.Location{Lat: 23.8, Lng: 90.4}, testNow)

	assert.Equal(t, model.AlertStatusActive, a.Status)
	assert.Equal(t, testNow, a.CreatedAt)
	assert.Nil(t, a.ResponderID)
	assert.Nil(t, a.AcceptedAt)
	assert.Nil(t, a.CompletedAt)
	assert.Nil(t, a.CancelledAt)
}

func TestCanTransition(t *testing.T) {
	all := []model.AlertStatus{
		model.AlertStatusActive, model.AlertStatusAccepted,
		model.AlertStatusCompleted, model.AlertStatusCancelled,
	}
	allowed := map[[2]model.AlertStatus]bool{
		{model.AlertStatusActive, model.AlertStatusAccepted}:    true,
		{model.AlertStatusActive, model.AlertStatusCancelled}:   true,
		{model.AlertStatusAccepted, model.AlertStatusCompleted}: true,
		{model.AlertStatusAccepted, model.AlertStatusCancelled}: true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]model.AlertStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestAccept(t *testing.T) {
	a := accepted(t, "p1")
	assert.Equal(t, model.AlertStatusAccepted, a.Status)
	require.NotNil(t, a.ResponderID)
	assert.Equal(t, "p1", *a.ResponderID)
	assert.Equal(t, testNow, *a.AcceptedAt)

	_, err := Accept(a, "p2", testNow)
	assert.ErrorIs(t, err, ErrInvalidState)
	status, ok := CurrentStatus(err)
	assert.True(t, ok)
	assert.Equal(t, model.AlertStatusAccepted, status)
}

func TestComplete(t *testing.T) {
	tests := []struct {
		name    string
		alert   func() model.Alert
		actor   string
		wantErr error
	}{
		{"bound responder", func() model.Alert { return accepted(t, "p1") }, "p1", nil},
		{"other responder", func() model.Alert { return accepted(t, "p1") }, "p2", ErrForbidden},
		{"requester", func() model.Alert { return accepted(t, "p1") }, "u1", ErrForbidden},
		{"active alert has no responder", func() model.Alert {
			return NewAlert("a1", "u1", model.Location{}, testNow)
		}, "p1", ErrForbidden},
		{"already completed", func() model.Alert {
			a, _ := Complete(accepted(t, "p1"), "p1", testNow)
			return a
		}, "p1", ErrInvalidState},
		{"cancelled after accept", func() model.Alert {
			a, _ := Cancel(accepted(t, "p1"), "u1", testNow)
			return a
		}, "p1", ErrInvalidState},
		{"cancelled after accept, other actor", func() model.Alert {
			a, _ := Cancel(accepted(t, "p1"), "u1", testNow)
			return a
		}, "p2", ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Complete(tt.alert(), tt.actor, testNow)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.AlertStatusCompleted, got.Status)
			assert.NotNil(t, got.CompletedAt)
			assert.Nil(t, got.CancelledAt)
		})
	}
}

func TestCancel(t *testing.T) {
	active := NewAlert("a1", "u1", model.Location{}, testNow)

	got, err := Cancel(active, "u1", testNow)
	require.NoError(t, err)
	assert.Equal(t, model.AlertStatusCancelled, got.Status)
	assert.NotNil(t, got.CancelledAt)
	assert.Nil(t, got.ResponderID)

	_, err = Cancel(active, "p1", testNow)
	assert.ErrorIs(t, err, ErrForbidden)

	afterAccept, err := Cancel(accepted(t, "p1"), "u1", testNow)
	require.NoError(t, err)
	assert.Equal(t, "p1", *afterAccept.ResponderID)

	_, err = Cancel(got, "u1", testNow)
	assert.ErrorIs(t, err, ErrInvalidState)

	completed, err := Complete(accepted(t, "p1"), "p1", testNow)
	require.NoError(t, err)
	_, err = Cancel(completed, "u1", testNow)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.EqualError(t, err, "sos: cannot cancel: alert is already completed")
}

func TestCheckRelay(t *testing.T) {
	a := accepted(t, "p1")
	assert.NoError(t, CheckRelay(a, "p1"))
	assert.ErrorIs(t, CheckRelay(a, "p2"), ErrForbidden)

	done, _ := Complete(a, "p1", testNow)
	assert.ErrorIs(t, CheckRelay(done, "p1"), ErrInvalidState)

	active := NewAlert("a2", "u1", model.Location{}, testNow)
	assert.ErrorIs(t, CheckRelay(active, "p1"), ErrForbidden)
}

func TestValidLocation(t *testing.T) {
	assert.True(t, ValidLocation(model.Location{Lat: 23.8, Lng: 90.4}))
	assert.False(t, ValidLocation(model.Location{Lat: 91, Lng: 0}))
	assert.False(t, ValidLocation(model.Location{Lat: 0, Lng: -181}))
}
