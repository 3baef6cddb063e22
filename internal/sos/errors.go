package sos

import (
	"errors"
	"fmt"
	"strings"

	"sos-srv/internal/model"
)

var (
	ErrNotFound     = errors.New("sos: alert not found")
	ErrForbidden    = errors.New("sos: forbidden")
	ErrInvalidState = errors.New("sos: invalid state")
	// ErrUnauthenticated is returned when an operation runs without a caller.
	ErrUnauthenticated = errors.New("sos: unauthenticated")
	ErrInvalidLocation = errors.New("sos: invalid location")
)

// StateError reports an illegal transition together with the alert's
// current status. It matches ErrInvalidState with errors.Is.
type StateError struct {
	Current model.AlertStatus
	Op      string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("sos: cannot %s: alert is already %s", e.Op, strings.ToLower(string(e.Current)))
}

func (e *StateError) Is(target error) bool {
	return target == ErrInvalidState
}

// CurrentStatus extracts the status carried by a StateError in err's chain.
func CurrentStatus(err error) (model.AlertStatus, bool) {
	var se *StateError
	if errors.As(err, &se) {
		return se.Current, true
	}
	return "", false
}
