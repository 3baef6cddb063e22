package realtime

import (
	"context"

	"sos-srv/internal/model"
	"sos-srv/internal/sos"
)

// Publisher hands events to the fan-out channel. Publish never blocks on
// slow consumers.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// LocationRelayer receives location updates sent by responders over their
// socket.
type LocationRelayer interface {
	RelayLocation(ctx context.Context, sc model.Scope, input sos.RelayLocationInput) error
}

//go:generate mockery --name UseCase
type UseCase interface {
	Publisher

	Run()
	Shutdown(ctx context.Context) error

	Register(ctx context.Context, input ConnectionInput) error
	GetStats(ctx context.Context) HubStats

	SetLocationRelayer(r LocationRelayer)
}
