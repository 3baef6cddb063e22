package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sos_alerts (
		id           UUID PRIMARY KEY,
		requester_id TEXT NOT NULL,
		lat          DOUBLE PRECISION NOT NULL CHECK (lat BETWEEN -90 AND 90),
		lng          DOUBLE PRECISION NOT NULL CHECK (lng BETWEEN -180 AND 180),
		status       TEXT NOT NULL CHECK (status IN ('ACTIVE', 'ACCEPTED', 'COMPLETED', 'CANCELLED')),
		responder_id TEXT,
		created_at   TIMESTAMPTZ NOT NULL,
		accepted_at  TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		cancelled_at TIMESTAMPTZ,
		CHECK (completed_at IS NULL OR cancelled_at IS NULL)
	)`,
	`CREATE INDEX IF NOT EXISTS sos_alerts_status_created_at_idx ON sos_alerts (status, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS sos_alerts_requester_id_idx ON sos_alerts (requester_id)`,
	`CREATE INDEX IF NOT EXISTS sos_alerts_responder_id_idx ON sos_alerts (responder_id)`,
}

// Migrate creates the sos_alerts table and its indexes when missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sos_alerts: %w", err)
		}
	}
	return nil
}
