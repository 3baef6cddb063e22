package sos

import (
	"context"

	"sos-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	CreateAlert(ctx context.Context, sc model.Scope, input CreateInput) (model.Alert, error)
	AcceptAlert(ctx context.Context, sc model.Scope, input AcceptInput) (model.Alert, error)
	RelayLocation(ctx context.Context, sc model.Scope, input RelayLocationInput) error
	CompleteAlert(ctx context.Context, sc model.Scope, alertID string) (model.Alert, error)
	CancelAlert(ctx context.Context, sc model.Scope, alertID string) (model.Alert, error)
	Detail(ctx context.Context, sc model.Scope, alertID string) (model.Alert, error)
	ListActive(ctx context.Context, sc model.Scope) ([]model.Alert, error)
	History(ctx context.Context, sc model.Scope, input HistoryInput) ([]model.Alert, error)
}
