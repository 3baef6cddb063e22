package memory

import (
	"context"
	"fmt"
	"sort"

	"sos-srv/internal/model"
	"sos-srv/internal/sos/repository"
	"sos-srv/pkg/paginator"
)

func (r *implRepository) Create(ctx context.Context, opts repository.CreateOptions) (model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.alerts[opts.Alert.ID]; ok {
		err := fmt.Errorf("duplicate alert id %s", opts.Alert.ID)
		r.l.Errorf(ctx, "internal.sos.repository.memory.Create: %v", err)
		return model.Alert{}, err
	}

	a := clone(opts.Alert)
	r.alerts[a.ID] = a
	return clone(a), nil
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.alerts[id]
	if !ok {
		return model.Alert{}, repository.ErrNotFound
	}
	return clone(a), nil
}

func (r *implRepository) ListActive(ctx context.Context) ([]model.Alert, error) {
	return r.filter(func(a model.Alert) bool {
		return a.Status == model.AlertStatusActive
	}), nil
}

func (r *implRepository) ListByParticipant(ctx context.Context, opts repository.ListByParticipantOptions) ([]model.Alert, error) {
	return paginator.PaginateSlice(r.filter(func(a model.Alert) bool {
		return a.IsRequester(opts.UserID) || a.IsResponder(opts.UserID)
	}), opts.Paginate), nil
}

func (r *implRepository) Update(ctx context.Context, opts repository.UpdateOptions) (model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.alerts[opts.Alert.ID]
	if !ok {
		return model.Alert{}, repository.ErrNotFound
	}
	if cur.Status != opts.ExpectedStatus {
		return model.Alert{}, repository.ErrStatusConflict
	}

	// Only the mutable columns change, mirroring the SQL backend.
	cur.Status = opts.Alert.Status
	cur.ResponderID = opts.Alert.ResponderID
	cur.AcceptedAt = opts.Alert.AcceptedAt
	cur.CompletedAt = opts.Alert.CompletedAt
	cur.CancelledAt = opts.Alert.CancelledAt
	cur = clone(cur)
	r.alerts[cur.ID] = cur

	return clone(cur), nil
}

func (r *implRepository) filter(keep func(model.Alert) bool) []model.Alert {
	r.mu.RLock()
	res := make([]model.Alert, 0)
	for _, a := range r.alerts {
		if keep(a) {
			res = append(res, clone(a))
		}
	}
	r.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res
}

// clone copies the pointer fields so callers never share state with the store.
func clone(a model.Alert) model.Alert {
	if a.ResponderID != nil {
		v := *a.ResponderID
		a.ResponderID = &v
	}
	if a.AcceptedAt != nil {
		v := *a.AcceptedAt
		a.AcceptedAt = &v
	}
	if a.CompletedAt != nil {
		v := *a.CompletedAt
		a.CompletedAt = &v
	}
	if a.CancelledAt != nil {
		v := *a.CancelledAt
		a.CancelledAt = &v
	}
	return a
}
