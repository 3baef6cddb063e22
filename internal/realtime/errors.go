package realtime

import "errors"

var (
	ErrInvalidConnection  = errors.New("realtime: invalid connection type")
	ErrMaxConnections     = errors.New("realtime: max connections reached")
	ErrUnknownMessageType = errors.New("realtime: unknown message type")
	ErrHubClosed          = errors.New("realtime: hub is shut down")
)
