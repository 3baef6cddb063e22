package postgres

import (
	"sos-srv/internal/model"
	"sos-srv/internal/sos/repository"
	"sos-srv/internal/sqlboiler"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
)

func newestFirst() qm.QueryMod {
	return qm.OrderBy(sqlboiler.SosAlertColumns.CreatedAt + " DESC, " + sqlboiler.SosAlertColumns.ID + " DESC")
}

func (r *implRepository) buildListActiveQuery() []qm.QueryMod {
	return []qm.QueryMod{
		sqlboiler.SosAlertWhere.Status.EQ(string(model.AlertStatusActive)),
		newestFirst(),
	}
}

func (r *implRepository) buildListByParticipantQuery(opts repository.ListByParticipantOptions) []qm.QueryMod {
	page := opts.Paginate
	page.Adjust()
	return []qm.QueryMod{
		qm.Expr(
			sqlboiler.SosAlertWhere.RequesterID.EQ(opts.UserID),
			qm.Or2(sqlboiler.SosAlertWhere.ResponderID.EQ(opts.UserID)),
		),
		newestFirst(),
		qm.Limit(int(page.Limit)),
		qm.Offset(int(page.Offset())),
	}
}
