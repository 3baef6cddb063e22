package postgres

import (
	"context"
	"database/sql"
	"errors"

	"sos-srv/internal/model"
	"sos-srv/internal/sos/repository"
	"sos-srv/internal/sqlboiler"
	postgresPkg "sos-srv/pkg/postgre"
)

func (r *implRepository) Create(ctx context.Context, opts repository.CreateOptions) (model.Alert, error) {
	if err := postgresPkg.IsUUID(opts.Alert.ID); err != nil {
		r.l.Errorf(ctx, "internal.sos.repository.postgres.Create.IsUUID: %v", err)
		return model.Alert{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	row := opts.Alert.ToDBAlert()
	if err := row.Insert(ctx, r.db); err != nil {
		r.l.Errorf(ctx, "internal.sos.repository.postgres.Create.Insert: %v", err)
		return model.Alert{}, err
	}

	return *model.NewAlertFromDB(row), nil
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.Alert, error) {
	// A malformed id cannot name a stored alert.
	if !postgresPkg.IsValidUUID(id) {
		return model.Alert{}, repository.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	row, err := sqlboiler.SosAlerts(sqlboiler.SosAlertWhere.ID.EQ(id)).One(ctx, r.db)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Alert{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.sos.repository.postgres.Detail.One: %v", err)
		return model.Alert{}, err
	}

	return *model.NewAlertFromDB(row), nil
}

func (r *implRepository) ListActive(ctx context.Context) ([]model.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := sqlboiler.SosAlerts(r.buildListActiveQuery()...).All(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.sos.repository.postgres.ListActive.All: %v", err)
		return nil, err
	}

	return toAlerts(rows), nil
}

func (r *implRepository) ListByParticipant(ctx context.Context, opts repository.ListByParticipantOptions) ([]model.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := sqlboiler.SosAlerts(r.buildListByParticipantQuery(opts)...).All(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.sos.repository.postgres.ListByParticipant.All: %v", err)
		return nil, err
	}

	return toAlerts(rows), nil
}

func (r *implRepository) Update(ctx context.Context, opts repository.UpdateOptions) (model.Alert, error) {
	if !postgresPkg.IsValidUUID(opts.Alert.ID) {
		return model.Alert{}, repository.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	row := opts.Alert.ToDBAlert()
	affected, err := row.UpdateIfStatus(ctx, r.db, string(opts.ExpectedStatus))
	if err != nil {
		r.l.Errorf(ctx, "internal.sos.repository.postgres.Update.UpdateIfStatus: %v", err)
		return model.Alert{}, err
	}

	if affected == 0 {
		exists, err := sqlboiler.SosAlerts(sqlboiler.SosAlertWhere.ID.EQ(opts.Alert.ID)).Exists(ctx, r.db)
		if err != nil {
			r.l.Errorf(ctx, "internal.sos.repository.postgres.Update.Exists: %v", err)
			return model.Alert{}, err
		}
		if !exists {
			return model.Alert{}, repository.ErrNotFound
		}
		return model.Alert{}, repository.ErrStatusConflict
	}

	fresh, err := sqlboiler.SosAlerts(sqlboiler.SosAlertWhere.ID.EQ(opts.Alert.ID)).One(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.sos.repository.postgres.Update.Reload: %v", err)
		return model.Alert{}, err
	}

	return *model.NewAlertFromDB(fresh), nil
}

func toAlerts(rows sqlboiler.SosAlertSlice) []model.Alert {
	res := make([]model.Alert, len(rows))
	for i, row := range rows {
		res[i] = *model.NewAlertFromDB(row)
	}
	return res
}
