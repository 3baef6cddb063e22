package usecase

import (
	"time"

	"sos-srv/internal/dispatch"
	"sos-srv/internal/metrics"
	"sos-srv/internal/realtime"
	"sos-srv/internal/sos"
	"sos-srv/internal/sos/repository"
	"sos-srv/pkg/log"
	postgresPkg "sos-srv/pkg/postgre"
)

const (
	// maxAttempts bounds the read, validate and write cycle. The lifecycle
	// has at most two transitions after creation, so a fourth read always
	// observes a settled status.
	maxAttempts     = 4
	dispatchTimeout = 10 * time.Second
)

type implUseCase struct {
	l          log.Logger
	repo       repository.Repository
	publisher  realtime.Publisher
	dispatcher dispatch.UseCase
	metrics    *metrics.Metrics
	clock      func() time.Time
	newID      func() string
}

var _ sos.UseCase = &implUseCase{}

// New wires the alert service. dispatcher and m may be nil.
func New(l log.Logger, repo repository.Repository, publisher realtime.Publisher, dispatcher dispatch.UseCase, m *metrics.Metrics) *implUseCase {
	return &implUseCase{
		l:          l,
		repo:       repo,
		publisher:  publisher,
		dispatcher: dispatcher,
		metrics:    m,
		clock:      time.Now,
		newID:      postgresPkg.NewUUID,
	}
}

func (uc *implUseCase) now() time.Time {
	return uc.clock().UTC()
}
