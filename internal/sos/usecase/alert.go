package usecase

import (
	"context"
	"errors"
	"time"

	"sos-srv/internal/dispatch"
	"sos-srv/internal/model"
	"sos-srv/internal/sos"
	"sos-srv/internal/sos/repository"
)

func (uc *implUseCase) CreateAlert(ctx context.Context, sc model.Scope, input sos.CreateInput) (model.Alert, error) {
	if !sc.IsAuthenticated() {
		return model.Alert{}, sos.ErrUnauthenticated
	}
	if !sos.ValidLocation(input.Location) {
		return model.Alert{}, sos.ErrInvalidLocation
	}

	a, err := uc.repo.Create(ctx, repository.CreateOptions{
		Alert: sos.NewAlert(uc.newID(), sc.UserID, input.Location, uc.now()),
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.sos.usecase.CreateAlert.Create: %v", err)
		return model.Alert{}, err
	}
	uc.metrics.AlertCreated()

	uc.publishCreated(ctx, a)
	uc.dispatchAsync(ctx, func(ctx context.Context, d dispatch.UseCase) error {
		return d.DispatchNewAlert(ctx, dispatch.NewAlertInput{
			AlertID:       a.ID,
			RequesterID:   a.RequesterID,
			RequesterName: sc.Name,
			Location:      a.Location,
			CreatedAt:     a.CreatedAt,
		})
	})

	return a, nil
}

func (uc *implUseCase) AcceptAlert(ctx context.Context, sc model.Scope, input sos.AcceptInput) (a model.Alert, err error) {
	defer func() { uc.metrics.Transition(sos.OpAccept, outcome(err)) }()

	if !sc.IsAuthenticated() {
		return model.Alert{}, sos.ErrUnauthenticated
	}
	if !sc.IsResponder() {
		return model.Alert{}, sos.ErrForbidden
	}
	if !sos.ValidLocation(input.ResponderLocation) {
		return model.Alert{}, sos.ErrInvalidLocation
	}

	_, a, err = uc.transition(ctx, sos.OpAccept, input.AlertID, func(cur model.Alert, now time.Time) (model.Alert, error) {
		return sos.Accept(cur, sc.UserID, now)
	})
	if err != nil {
		return model.Alert{}, err
	}

	uc.publishAccepted(ctx, a, input.ResponderLocation)
	uc.dispatchStatus(ctx, a, sc.UserID, *a.AcceptedAt)
	return a, nil
}

// RelayLocation forwards the bound responder's position to the requester.
// Nothing is persisted.
func (uc *implUseCase) RelayLocation(ctx context.Context, sc model.Scope, input sos.RelayLocationInput) (err error) {
	defer func() { uc.metrics.Transition(sos.OpRelay, outcome(err)) }()

	if !sc.IsAuthenticated() {
		return sos.ErrUnauthenticated
	}
	if !sos.ValidLocation(input.Location) {
		return sos.ErrInvalidLocation
	}

	a, err := uc.detail(ctx, input.AlertID)
	if err != nil {
		return err
	}
	if err := sos.CheckRelay(a, sc.UserID); err != nil {
		return err
	}

	uc.publishLocation(ctx, a, sc.UserID, input.Location)
	return nil
}

func (uc *implUseCase) CompleteAlert(ctx context.Context, sc model.Scope, alertID string) (a model.Alert, err error) {
	defer func() { uc.metrics.Transition(sos.OpComplete, outcome(err)) }()

	if !sc.IsAuthenticated() {
		return model.Alert{}, sos.ErrUnauthenticated
	}

	_, a, err = uc.transition(ctx, sos.OpComplete, alertID, func(cur model.Alert, now time.Time) (model.Alert, error) {
		return sos.Complete(cur, sc.UserID, now)
	})
	if err != nil {
		return model.Alert{}, err
	}

	uc.publishCompleted(ctx, a)
	uc.dispatchStatus(ctx, a, sc.UserID, *a.CompletedAt)
	return a, nil
}

func (uc *implUseCase) CancelAlert(ctx context.Context, sc model.Scope, alertID string) (a model.Alert, err error) {
	defer func() { uc.metrics.Transition(sos.OpCancel, outcome(err)) }()

	if !sc.IsAuthenticated() {
		return model.Alert{}, sos.ErrUnauthenticated
	}

	prev, a, err := uc.transition(ctx, sos.OpCancel, alertID, func(cur model.Alert, now time.Time) (model.Alert, error) {
		return sos.Cancel(cur, sc.UserID, now)
	})
	if err != nil {
		return model.Alert{}, err
	}

	uc.publishCancelled(ctx, prev, a)
	uc.dispatchStatus(ctx, a, sc.UserID, *a.CancelledAt)
	return a, nil
}

// Detail returns the alert when the caller takes part in it.
func (uc *implUseCase) Detail(ctx context.Context, sc model.Scope, alertID string) (model.Alert, error) {
	if !sc.IsAuthenticated() {
		return model.Alert{}, sos.ErrUnauthenticated
	}

	a, err := uc.detail(ctx, alertID)
	if err != nil {
		return model.Alert{}, err
	}
	if !sos.CanView(sc.UserID, a) {
		return model.Alert{}, sos.ErrForbidden
	}
	return a, nil
}

// ListActive returns the alerts still waiting for a responder.
func (uc *implUseCase) ListActive(ctx context.Context, sc model.Scope) ([]model.Alert, error) {
	if !sc.IsAuthenticated() {
		return nil, sos.ErrUnauthenticated
	}
	if !sc.IsResponder() {
		return nil, sos.ErrForbidden
	}

	alerts, err := uc.repo.ListActive(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.sos.usecase.ListActive.ListActive: %v", err)
		return nil, err
	}
	return alerts, nil
}

// History returns the caller's own alerts, as requester or responder,
// newest first.
func (uc *implUseCase) History(ctx context.Context, sc model.Scope, input sos.HistoryInput) ([]model.Alert, error) {
	if !sc.IsAuthenticated() {
		return nil, sos.ErrUnauthenticated
	}

	input.Paginate.Adjust()

	alerts, err := uc.repo.ListByParticipant(ctx, repository.ListByParticipantOptions{
		UserID:   sc.UserID,
		Paginate: input.Paginate,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.sos.usecase.History.ListByParticipant: %v", err)
		return nil, err
	}
	return alerts, nil
}

func (uc *implUseCase) detail(ctx context.Context, alertID string) (model.Alert, error) {
	a, err := uc.repo.Detail(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Alert{}, sos.ErrNotFound
		}
		uc.l.Errorf(ctx, "internal.sos.usecase.detail.Detail: %v", err)
		return model.Alert{}, err
	}
	return a, nil
}

func (uc *implUseCase) dispatchStatus(ctx context.Context, a model.Alert, actorID string, at time.Time) {
	uc.dispatchAsync(ctx, func(ctx context.Context, d dispatch.UseCase) error {
		return d.DispatchStatusChange(ctx, dispatch.StatusChangeInput{
			AlertID: a.ID,
			Status:  a.Status,
			ActorID: actorID,
			At:      at,
		})
	})
}
