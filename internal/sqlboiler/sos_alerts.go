package sqlboiler

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"
	"github.com/friendsofgo/errors"
)

// SosAlert is an object representing the database table.
type SosAlert struct {
	ID          string      `boil:"id" json:"id" toml:"id" yaml:"id"`
	RequesterID string      `boil:"requester_id" json:"requester_id" toml:"requester_id" yaml:"requester_id"`
	Lat         float64     `boil:"lat" json:"lat" toml:"lat" yaml:"lat"`
	LNG         float64     `boil:"lng" json:"lng" toml:"lng" yaml:"lng"`
	Status      string      `boil:"status" json:"status" toml:"status" yaml:"status"`
	ResponderID null.String `boil:"responder_id" json:"responder_id,omitempty" toml:"responder_id" yaml:"responder_id,omitempty"`
	CreatedAt   time.Time   `boil:"created_at" json:"created_at" toml:"created_at" yaml:"created_at"`
	AcceptedAt  null.Time   `boil:"accepted_at" json:"accepted_at,omitempty" toml:"accepted_at" yaml:"accepted_at,omitempty"`
	CompletedAt null.Time   `boil:"completed_at" json:"completed_at,omitempty" toml:"completed_at" yaml:"completed_at,omitempty"`
	CancelledAt null.Time   `boil:"cancelled_at" json:"cancelled_at,omitempty" toml:"cancelled_at" yaml:"cancelled_at,omitempty"`
}

var SosAlertColumns = struct {
	ID          string
	RequesterID string
	Lat         string
	LNG         string
	Status      string
	ResponderID string
	CreatedAt   string
	AcceptedAt  string
	CompletedAt string
	CancelledAt string
}{
	ID:          "id",
	RequesterID: "requester_id",
	Lat:         "lat",
	LNG:         "lng",
	Status:      "status",
	ResponderID: "responder_id",
	CreatedAt:   "created_at",
	AcceptedAt:  "accepted_at",
	CompletedAt: "completed_at",
	CancelledAt: "cancelled_at",
}

var SosAlertTableName = "sos_alerts"

var (
	sosAlertAllColumns = []string{"id", "requester_id", "lat", "lng", "status", "responder_id", "created_at", "accepted_at", "completed_at", "cancelled_at"}
	// Columns a transition may touch. id, requester_id, location and
	// created_at never change after insert.
	sosAlertMutableColumns    = []string{"status", "responder_id", "accepted_at", "completed_at", "cancelled_at"}
	sosAlertPrimaryKeyColumns = []string{"id"}
)

type whereHelperstring struct{ field string }

func (w whereHelperstring) EQ(x string) qm.QueryMod { return qm.Where(w.field+" = ?", x) }

type whereHelpernull_String struct{ field string }

func (w whereHelpernull_String) EQ(x string) qm.QueryMod { return qm.Where(w.field+" = ?", x) }

var SosAlertWhere = struct {
	ID          whereHelperstring
	RequesterID whereHelperstring
	Status      whereHelperstring
	ResponderID whereHelpernull_String
}{
	ID:          whereHelperstring{field: "\"sos_alerts\".\"id\""},
	RequesterID: whereHelperstring{field: "\"sos_alerts\".\"requester_id\""},
	Status:      whereHelperstring{field: "\"sos_alerts\".\"status\""},
	ResponderID: whereHelpernull_String{field: "\"sos_alerts\".\"responder_id\""},
}

// SosAlertSlice is an alias for a slice of pointers to SosAlert.
type SosAlertSlice []*SosAlert

type sosAlertQuery struct {
	*queries.Query
}

// SosAlerts retrieves all the records using an executor.
func SosAlerts(mods ...qm.QueryMod) sosAlertQuery {
	mods = append(mods, qm.From("\"sos_alerts\""))
	q := NewQuery(mods...)
	if len(queries.GetSelect(q)) == 0 {
		queries.SetSelect(q, []string{"\"sos_alerts\".*"})
	}
	return sosAlertQuery{q}
}

// One returns a single sosAlert record from the query.
func (q sosAlertQuery) One(ctx context.Context, exec boil.ContextExecutor) (*SosAlert, error) {
	o := &SosAlert{}

	queries.SetLimit(q.Query, 1)

	err := q.Bind(ctx, exec, o)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, errors.Wrap(err, "sqlboiler: failed to execute a one query for sos_alerts")
	}

	return o, nil
}

// All returns all SosAlert records from the query.
func (q sosAlertQuery) All(ctx context.Context, exec boil.ContextExecutor) (SosAlertSlice, error) {
	var o []*SosAlert

	err := q.Bind(ctx, exec, &o)
	if err != nil {
		return nil, errors.Wrap(err, "sqlboiler: failed to assign all query results to SosAlert slice")
	}

	return o, nil
}

// Exists checks if the row exists in the table.
func (q sosAlertQuery) Exists(ctx context.Context, exec boil.ContextExecutor) (bool, error) {
	var count int64

	queries.SetSelect(q.Query, nil)
	queries.SetCount(q.Query)
	queries.SetLimit(q.Query, 1)

	err := q.Query.QueryRowContext(ctx, exec).Scan(&count)
	if err != nil {
		return false, errors.Wrap(err, "sqlboiler: failed to check if sos_alerts exists")
	}

	return count > 0, nil
}

// Insert a single record using an executor.
func (o *SosAlert) Insert(ctx context.Context, exec boil.ContextExecutor) error {
	if o == nil {
		return errors.New("sqlboiler: no sos_alerts provided for insertion")
	}

	query := fmt.Sprintf("INSERT INTO \"sos_alerts\" (\"%s\") VALUES (%s)",
		strings.Join(sosAlertAllColumns, "\",\""),
		strmangle.Placeholders(dialect.UseIndexPlaceholders, len(sosAlertAllColumns), 1, 1),
	)

	if boil.IsDebug(ctx) {
		writer := boil.DebugWriterFrom(ctx)
		fmt.Fprintln(writer, query)
	}

	_, err := exec.ExecContext(ctx, query,
		o.ID, o.RequesterID, o.Lat, o.LNG, o.Status,
		o.ResponderID, o.CreatedAt, o.AcceptedAt, o.CompletedAt, o.CancelledAt,
	)
	if err != nil {
		return errors.Wrap(err, "sqlboiler: unable to insert into sos_alerts")
	}
	return nil
}

// UpdateIfStatus writes the mutable columns of o only when the stored
// status still equals expected. It returns the number of rows written,
// which is zero when the row is missing or its status moved on.
func (o *SosAlert) UpdateIfStatus(ctx context.Context, exec boil.ContextExecutor, expected string) (int64, error) {
	whereCols := append(append([]string{}, sosAlertPrimaryKeyColumns...), SosAlertColumns.Status)
	query := fmt.Sprintf("UPDATE \"sos_alerts\" SET %s WHERE %s",
		strmangle.SetParamNames("\"", "\"", 1, sosAlertMutableColumns),
		strmangle.WhereClause("\"", "\"", len(sosAlertMutableColumns)+1, whereCols),
	)

	if boil.IsDebug(ctx) {
		writer := boil.DebugWriterFrom(ctx)
		fmt.Fprintln(writer, query)
	}

	result, err := exec.ExecContext(ctx, query,
		o.Status, o.ResponderID, o.AcceptedAt, o.CompletedAt, o.CancelledAt,
		o.ID, expected,
	)
	if err != nil {
		return 0, errors.Wrap(err, "sqlboiler: unable to update sos_alerts row")
	}

	rowsAff, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "sqlboiler: failed to get rows affected by update for sos_alerts")
	}
	return rowsAff, nil
}
