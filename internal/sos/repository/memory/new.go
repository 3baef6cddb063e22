// Package memory keeps alerts in process memory. It backs single node
// deployments and tests.
package memory

import (
	"sync"

	"sos-srv/internal/model"
	"sos-srv/internal/sos/repository"
	pkgLog "sos-srv/pkg/log"
)

type implRepository struct {
	l      pkgLog.Logger
	mu     sync.RWMutex
	alerts map[string]model.Alert
}

var _ repository.Repository = &implRepository{}

func New(l pkgLog.Logger) *implRepository {
	return &implRepository{
		l:      l,
		alerts: make(map[string]model.Alert),
	}
}
