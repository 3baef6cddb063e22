package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sos-srv/internal/model"
	"sos-srv/internal/sos"
	"sos-srv/internal/sos/repository"
)

// applyFunc validates a transition against the freshly read alert and
// returns the next state.
type applyFunc func(cur model.Alert, now time.Time) (model.Alert, error)

// transition re-reads the alert, validates it with apply and writes the
// result conditioned on the status it read. A concurrent change restarts
// the cycle so the decision is always taken on current state. It returns
// the alert as read and as written.
func (uc *implUseCase) transition(ctx context.Context, op, alertID string, apply applyFunc) (prev, next model.Alert, err error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		prev, err = uc.repo.Detail(ctx, alertID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return model.Alert{}, model.Alert{}, sos.ErrNotFound
			}
			uc.l.Errorf(ctx, "internal.sos.usecase.transition.Detail: op=%s err=%v", op, err)
			return model.Alert{}, model.Alert{}, err
		}

		var candidate model.Alert
		candidate, err = apply(prev, uc.now())
		if err != nil {
			return prev, model.Alert{}, err
		}

		next, err = uc.repo.Update(ctx, repository.UpdateOptions{
			Alert:          candidate,
			ExpectedStatus: prev.Status,
		})
		if err == nil {
			return prev, next, nil
		}
		if errors.Is(err, repository.ErrStatusConflict) {
			uc.l.Debugf(ctx, "internal.sos.usecase.transition: op=%s alert=%s status moved from %s, retrying", op, alertID, prev.Status)
			continue
		}
		if errors.Is(err, repository.ErrNotFound) {
			return model.Alert{}, model.Alert{}, sos.ErrNotFound
		}
		uc.l.Errorf(ctx, "internal.sos.usecase.transition.Update: op=%s err=%v", op, err)
		return model.Alert{}, model.Alert{}, err
	}

	err = fmt.Errorf("internal.sos.usecase.transition: op=%s alert=%s: too many concurrent updates", op, alertID)
	uc.l.Errorf(ctx, "%v", err)
	return model.Alert{}, model.Alert{}, err
}

// outcome is the metrics label for err.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, sos.ErrNotFound):
		return "not_found"
	case errors.Is(err, sos.ErrForbidden), errors.Is(err, sos.ErrUnauthenticated):
		return "forbidden"
	case errors.Is(err, sos.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, sos.ErrInvalidLocation):
		return "invalid_input"
	default:
		return "error"
	}
}
