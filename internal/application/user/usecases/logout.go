package usecases

import (
	"context"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/shared/logger"
)

type LogoutCommand struct {
	Actor appaudit.Meta
}

// LogoutUseCase records the logout. Tokens are stateless, so there is
// nothing to revoke server side; the entry is the point.
type LogoutUseCase struct {
	recorder *appaudit.Recorder
	logger   logger.Interface
}

func NewLogoutUseCase(recorder *appaudit.Recorder, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		recorder: recorder,
		logger:   logger,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	return uc.recorder.RecordLogout(ctx, cmd.Actor)
}
