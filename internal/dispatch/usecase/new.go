package usecase

import (
	"sos-srv/internal/dispatch"
	"sos-srv/pkg/discord"
	"sos-srv/pkg/log"
)

type implUseCase struct {
	logger  log.Logger
	discord discord.IDiscord
}

func New(logger log.Logger, discord discord.IDiscord) dispatch.UseCase {
	return &implUseCase{
		logger:  logger,
		discord: discord,
	}
}
