package postgres

import (
	"database/sql"
	"time"

	"sos-srv/internal/sos/repository"
	pkgLog "sos-srv/pkg/log"
)

const defaultQueryTimeout = 5 * time.Second

type implRepository struct {
	l            pkgLog.Logger
	db           *sql.DB
	queryTimeout time.Duration
}

var _ repository.Repository = &implRepository{}

func New(l pkgLog.Logger, db *sql.DB, queryTimeout time.Duration) *implRepository {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &implRepository{
		l:            l,
		db:           db,
		queryTimeout: queryTimeout,
	}
}
