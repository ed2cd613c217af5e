package usecases

import (
	"context"
	"strings"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/domain/user"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

// UpdateUserCommand carries the admin's edits. Nil pointers leave the field
// untouched. A new password is hashed but never appears in the audit trail.
type UpdateUserCommand struct {
	UserID   uint
	Username *string
	Email    *string
	Role     *string
	Password *string
	Actor    appaudit.Meta
}

type UpdateUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	recorder *appaudit.Recorder
	logger   logger.Interface
}

func NewUpdateUserUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	recorder *appaudit.Recorder,
	logger logger.Interface,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		recorder: recorder,
		logger:   logger,
	}
}

// Execute edits an account and logs one entry per changed field, targeting
// the edited user.
func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*UserResult, error) {
	u, err := uc.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	before := user.TakeSnapshot(u)

	if err := uc.applyChanges(ctx, u, cmd); err != nil {
		return nil, err
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("username or email already registered")
		}
		uc.logger.Errorw("failed to update user", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	changes := user.Diff(before, user.TakeSnapshot(u))
	if err := uc.recorder.RecordUserChanges(ctx, cmd.Actor, u.ID(), changes); err != nil {
		return nil, err
	}

	return newUserResult(u), nil
}

func (uc *UpdateUserUseCase) applyChanges(ctx context.Context, u *user.User, cmd UpdateUserCommand) error {
	if cmd.Username != nil {
		username := strings.TrimSpace(*cmd.Username)
		if username == "" {
			return errors.NewValidationError("username cannot be empty")
		}
		if username != u.Username() {
			if existing, err := uc.userRepo.FindByUsername(ctx, username); err == nil && existing != nil && existing.ID() != u.ID() {
				return errors.NewConflictError("username already taken")
			} else if err != nil && !errors.IsNotFoundError(err) {
				return err
			}
		}
		if err := u.SetUsername(username); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}

	if cmd.Email != nil {
		if err := u.SetEmail(strings.TrimSpace(*cmd.Email)); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}

	if cmd.Role != nil {
		role := authorization.Role(*cmd.Role)
		if !role.IsValid() {
			return errors.NewValidationError("invalid role: " + *cmd.Role)
		}
		if err := u.SetRole(role); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}

	if cmd.Password != nil {
		if len(*cmd.Password) < minPasswordLength {
			return errors.NewValidationError("password must be at least 8 characters")
		}
		hash, err := uc.hasher.Hash(*cmd.Password)
		if err != nil {
			uc.logger.Errorw("failed to hash password", "error", err)
			return errors.NewInternalError("failed to process password")
		}
		if err := u.SetPasswordHash(hash); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}

	return nil
}
