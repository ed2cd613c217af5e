package usecases

import (
	"context"
	"strings"

	"ticketsys/internal/domain/user"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

const minPasswordLength = 8

type RegisterUserCommand struct {
	Username string
	Email    string
	Password string
}

type RegisterUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewRegisterUserUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

// Execute creates a plain user account. Staff roles are only granted later
// through the admin user edit.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*UserResult, error) {
	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Email = strings.TrimSpace(cmd.Email)

	if cmd.Username == "" {
		return nil, errors.NewValidationError("username is required")
	}
	if len(cmd.Password) < minPasswordLength {
		return nil, errors.NewValidationError("password must be at least 8 characters")
	}

	if existing, err := uc.userRepo.FindByUsername(ctx, cmd.Username); err == nil && existing != nil {
		return nil, errors.NewConflictError("username already taken")
	} else if err != nil && !errors.IsNotFoundError(err) {
		return nil, err
	}

	if cmd.Email != "" {
		if existing, err := uc.userRepo.FindByEmail(ctx, cmd.Email); err == nil && existing != nil {
			return nil, errors.NewConflictError("email already registered")
		} else if err != nil && !errors.IsNotFoundError(err) {
			return nil, err
		}
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to process password")
	}

	u, err := user.NewUser(cmd.Username, cmd.Email, hash, authorization.RoleUser)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Save(ctx, u); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("username or email already registered")
		}
		uc.logger.Errorw("failed to save user", "error", err)
		return nil, err
	}

	uc.logger.Infow("user registered", "user_id", u.ID(), "username", u.Username())
	return newUserResult(u), nil
}
