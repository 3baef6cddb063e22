package repository

import (
	"sos-srv/internal/model"
	"sos-srv/pkg/paginator"
)

// CreateOptions contains options for persisting a new alert.
type CreateOptions struct {
	Alert model.Alert
}

// UpdateOptions contains options for a conditional alert update.
type UpdateOptions struct {
	Alert          model.Alert
	ExpectedStatus model.AlertStatus
}

// ListByParticipantOptions selects alerts a user raised or accepted.
type ListByParticipantOptions struct {
	UserID   string
	Paginate paginator.PaginateQuery
}
