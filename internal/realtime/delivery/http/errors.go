package http

import (
	"errors"
	"net/http"

	"sos-srv/internal/realtime"
	pkgErrors "sos-srv/pkg/errors"
)

var errCapacity = pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "Maximum connections reached")

func (h handler) mapError(err error) error {
	switch {
	case errors.Is(err, realtime.ErrMaxConnections), errors.Is(err, realtime.ErrHubClosed):
		return errCapacity
	}
	panic(err)
}
