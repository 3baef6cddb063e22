package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"sos-srv/internal/model"
	"sos-srv/internal/sos/repository"
	pkgLog "sos-srv/pkg/log"
	"sos-srv/pkg/paginator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, r *implRepository, id, requester string, created time.Time) model.Alert {
	t.Helper()
	a, err := r.Create(context.Background(), repository.CreateOptions{Alert: model.Alert{
		ID:          id,
		RequesterID: requester,
		Location:    model.Location{Lat: 23.8, Lng: 90.4},
		Status:      model.AlertStatusActive,
		CreatedAt:   created,
	}})
	require.NoError(t, err)
	return a
}

func TestCreateAndDetail(t *testing.T) {
	r := New(pkgLog.NewNop())
	ctx := context.Background()
	seed(t, r, "a1", "u1", base)

	got, err := r.Detail(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, model.AlertStatusActive, got.Status)
	assert.Equal(t, model.Location{Lat: 23.8, Lng: 90.4}, got.Location)

	_, err = r.Detail(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = r.Create(ctx, repository.CreateOptions{Alert: model.Alert{ID: "a1"}})
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	r := New(pkgLog.NewNop())
	ctx := context.Background()
	a := seed(t, r, "a1", "u1", base)

	p1 := "p1"
	now := base.Add(time.Minute)
	a.Status = model.AlertStatusAccepted
	a.ResponderID = &p1
	a.AcceptedAt = &now
	a.RequesterID = "someone-else"

	got, err := r.Update(ctx, repository.UpdateOptions{Alert: a, ExpectedStatus: model.AlertStatusActive})
	require.NoError(t, err)
	assert.Equal(t, model.AlertStatusAccepted, got.Status)
	assert.Equal(t, "u1", got.RequesterID, "requester is not a mutable column")

	p1 = "tampered"
	stored, err := r.Detail(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "p1", *stored.ResponderID)

	_, err = r.Update(ctx, repository.UpdateOptions{Alert: a, ExpectedStatus: model.AlertStatusActive})
	assert.ErrorIs(t, err, repository.ErrStatusConflict)

	a.ID = "missing"
	_, err = r.Update(ctx, repository.UpdateOptions{Alert: a, ExpectedStatus: model.AlertStatusActive})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateConcurrentAccept(t *testing.T) {
	r := New(pkgLog.NewNop())
	a := seed(t, r, "a1", "u1", base)

	const n = 16
	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rid := fmt.Sprintf("p%d", i)
			next := a
			next.Status = model.AlertStatusAccepted
			next.ResponderID = &rid
			_, err := r.Update(context.Background(), repository.UpdateOptions{Alert: next, ExpectedStatus: model.AlertStatusActive})
			if err == nil {
				atomic.AddInt32(&wins, 1)
				return
			}
			assert.ErrorIs(t, err, repository.ErrStatusConflict)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}

func TestListActive(t *testing.T) {
	r := New(pkgLog.NewNop())
	ctx := context.Background()
	seed(t, r, "old", "u1", base)
	seed(t, r, "new", "u2", base.Add(time.Hour))
	done := seed(t, r, "done", "u3", base.Add(2*time.Hour))
	done.Status = model.AlertStatusCancelled
	_, err := r.Update(ctx, repository.UpdateOptions{Alert: done, ExpectedStatus: model.AlertStatusActive})
	require.NoError(t, err)

	got, err := r.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "old", got[1].ID)
}

func TestListByParticipant(t *testing.T) {
	r := New(pkgLog.NewNop())
	ctx := context.Background()
	seed(t, r, "a1", "u1", base)
	a2 := seed(t, r, "a2", "u2", base.Add(time.Minute))
	seed(t, r, "a3", "u1", base.Add(2*time.Minute))

	p := "u1"
	a2.Status = model.AlertStatusAccepted
	a2.ResponderID = &p
	_, err := r.Update(ctx, repository.UpdateOptions{Alert: a2, ExpectedStatus: model.AlertStatusActive})
	require.NoError(t, err)

	got, err := r.ListByParticipant(ctx, repository.ListByParticipantOptions{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a3", "a2", "a1"}, []string{got[0].ID, got[1].ID, got[2].ID})

	got, err = r.ListByParticipant(ctx, repository.ListByParticipantOptions{UserID: "u1", Paginate: paginator.PaginateQuery{Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = r.ListByParticipant(ctx, repository.ListByParticipantOptions{UserID: "u1", Paginate: paginator.PaginateQuery{Page: 2, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)

	got, err = r.ListByParticipant(ctx, repository.ListByParticipantOptions{UserID: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
