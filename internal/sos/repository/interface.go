package repository

import (
	"context"

	"sos-srv/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	Create(ctx context.Context, opts CreateOptions) (model.Alert, error)
	Detail(ctx context.Context, id string) (model.Alert, error)
	ListActive(ctx context.Context) ([]model.Alert, error)
	ListByParticipant(ctx context.Context, opts ListByParticipantOptions) ([]model.Alert, error)
	// Update writes the mutable fields of opts.Alert only if the stored
	// status still equals opts.ExpectedStatus. It returns ErrStatusConflict
	// when the status moved on and ErrNotFound when the alert is missing.
	Update(ctx context.Context, opts UpdateOptions) (model.Alert, error)
}
