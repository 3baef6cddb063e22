package usecase

import (
	"context"

	"sos-srv/internal/dispatch"
	"sos-srv/internal/model"
	"sos-srv/internal/realtime"
)

func (uc *implUseCase) publish(ctx context.Context, typ realtime.EventType, aud realtime.Audience, payload any) {
	ev, err := realtime.NewEvent(typ, aud, payload, uc.now())
	if err != nil {
		uc.l.Errorf(ctx, "internal.sos.usecase.publish.NewEvent: type=%s err=%v", typ, err)
		return
	}
	uc.publisher.Publish(ctx, ev)
}

func responders(exclude ...string) realtime.Audience {
	return realtime.Audience{Roles: []string{model.RolePolice}, ExcludeUserIDs: exclude}
}

func (uc *implUseCase) publishCreated(ctx context.Context, a model.Alert) {
	uc.publish(ctx, realtime.EventAlertCreated, responders(a.RequesterID), realtime.AlertCreatedPayload{
		AlertID:     a.ID,
		RequesterID: a.RequesterID,
		Location:    a.Location,
		CreatedAt:   a.CreatedAt,
	})
}

func (uc *implUseCase) publishAccepted(ctx context.Context, a model.Alert, responderLoc model.Location) {
	responderID := *a.ResponderID
	uc.publish(ctx, realtime.EventAlertAccepted, realtime.Audience{UserIDs: []string{a.RequesterID}}, realtime.AlertAcceptedPayload{
		AlertID:           a.ID,
		ResponderID:       responderID,
		ResponderLocation: responderLoc,
		AcceptedAt:        *a.AcceptedAt,
	})
	uc.publish(ctx, realtime.EventAlertAcceptedByOther, responders(responderID), realtime.AlertIDPayload{AlertID: a.ID})
}

func (uc *implUseCase) publishLocation(ctx context.Context, a model.Alert, responderID string, loc model.Location) {
	uc.publish(ctx, realtime.EventAlertLocationUpdate, realtime.Audience{UserIDs: []string{a.RequesterID}}, realtime.AlertLocationPayload{
		AlertID:     a.ID,
		ResponderID: responderID,
		Location:    loc,
	})
}

// publishCancelled notifies everyone who could see the alert. While it was
// still ACTIVE that includes every responder.
func (uc *implUseCase) publishCancelled(ctx context.Context, prev, a model.Alert) {
	aud := realtime.Audience{UserIDs: a.Participants()}
	if prev.Status == model.AlertStatusActive {
		aud.Roles = []string{model.RolePolice}
	}
	uc.publish(ctx, realtime.EventAlertCancelled, aud, realtime.AlertIDPayload{AlertID: a.ID})
}

func (uc *implUseCase) publishCompleted(ctx context.Context, a model.Alert) {
	uc.publish(ctx, realtime.EventAlertCompleted, realtime.Audience{UserIDs: a.Participants()}, realtime.AlertIDPayload{AlertID: a.ID})
}

// dispatchAsync runs fn in the background. Dispatch failures never affect
// the caller.
func (uc *implUseCase) dispatchAsync(ctx context.Context, fn func(ctx context.Context, d dispatch.UseCase) error) {
	if uc.dispatcher == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
		defer cancel()
		if err := fn(ctx, uc.dispatcher); err != nil {
			uc.l.Warnf(ctx, "internal.sos.usecase.dispatchAsync: %v", err)
		}
	}()
}
