package usecases

import (
	"context"
	"time"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/domain/user"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

type LoginCommand struct {
	Username  string
	Password  string
	IPAddress string
	UserAgent string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *UserResult
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenGenerator
	recorder *appaudit.Recorder
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenGenerator,
	recorder *appaudit.Recorder,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		recorder: recorder,
		logger:   logger,
	}
}

// Execute authenticates a user and issues an access token. Every attempt
// leaves a trace: LOGIN on success, LOGIN FAILED with no actor otherwise.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	meta := appaudit.Meta{IPAddress: cmd.IPAddress, UserAgent: cmd.UserAgent}

	u, err := uc.userRepo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.recordFailure(ctx, meta, cmd.Username)
			return nil, errors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.recordFailure(ctx, meta, cmd.Username)
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	token, expiresAt, err := uc.tokens.Generate(u.ID(), u.Username(), u.Role().String())
	if err != nil {
		uc.logger.Errorw("failed to generate token", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to generate token")
	}

	userID := u.ID()
	meta.ActorID = &userID
	if err := uc.recorder.RecordLogin(ctx, meta); err != nil {
		return nil, err
	}

	uc.logger.Infow("user logged in", "user_id", u.ID(), "username", u.Username())
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      newUserResult(u),
	}, nil
}

func (uc *LoginUseCase) recordFailure(ctx context.Context, meta appaudit.Meta, username string) {
	if err := uc.recorder.RecordLoginFailed(ctx, meta, username); err != nil {
		uc.logger.Warnw("failed to record login failure", "username", username, "error", err)
	}
}
