package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"sos-srv/internal/sos"
	pkgErrors "sos-srv/pkg/errors"
	"sos-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

var (
	errUnauthenticated = pkgErrors.NewUnauthorizedHTTPError()
	errNotFound        = pkgErrors.NewKindHTTPError(http.StatusNotFound, pkgErrors.KindNotFound, "SOS not found")
	errInvalidLocation = pkgErrors.NewKindHTTPError(http.StatusBadRequest, pkgErrors.KindValidation, "Invalid location")
	errMissingAlertID  = pkgErrors.NewKindHTTPError(http.StatusBadRequest, pkgErrors.KindValidation, "SOS ID is required")
)

var forbiddenMessages = map[string]string{
	sos.OpComplete: "Only the police officer who accepted this SOS can complete it",
	sos.OpCancel:   "Only the requester can cancel this SOS",
	sos.OpRelay:    "Only the police officer who accepted this SOS can share location for it",
}

// mapError converts a usecase error for op into its HTTP form. Unknown
// errors panic and are rendered by the recovery middleware.
func (h handler) mapError(op string, err error) error {
	switch {
	case errors.Is(err, sos.ErrUnauthenticated):
		return errUnauthenticated
	case errors.Is(err, sos.ErrNotFound):
		return errNotFound
	case errors.Is(err, sos.ErrInvalidLocation):
		return errInvalidLocation
	case errors.Is(err, sos.ErrForbidden):
		msg, ok := forbiddenMessages[op]
		if !ok {
			msg = pkgErrors.MessageForbidden
		}
		return pkgErrors.NewKindHTTPError(http.StatusForbidden, pkgErrors.KindForbidden, msg)
	case errors.Is(err, sos.ErrInvalidState):
		status, _ := sos.CurrentStatus(err)
		return pkgErrors.NewKindHTTPError(
			http.StatusBadRequest,
			pkgErrors.KindInvalidState,
			fmt.Sprintf("SOS is already %s", strings.ToLower(string(status))),
		).WithData(stateData{Status: string(status)})
	}
	panic(err)
}

type stateData struct {
	Status string `json:"status"`
}

// fail renders err. Request errors that already carry their HTTP form are
// written as is; usecase errors go through mapError.
func (h handler) fail(c *gin.Context, op string, err error) {
	var (
		httpErr   *pkgErrors.HTTPError
		collector *pkgErrors.ValidationErrorCollector
	)
	if errors.As(err, &httpErr) || errors.As(err, &collector) {
		response.Error(c, err, nil)
		return
	}
	response.Error(c, h.mapError(op, err), nil)
}
