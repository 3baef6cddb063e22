package dispatch

import "context"

// UseCase posts alert lifecycle notices to the responder dispatch channel.
type UseCase interface {
	DispatchNewAlert(ctx context.Context, input NewAlertInput) error
	DispatchStatusChange(ctx context.Context, input StatusChangeInput) error
}
