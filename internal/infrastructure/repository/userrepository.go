package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ticketsys/internal/domain/user"
	"ticketsys/internal/infrastructure/persistence/mappers"
	"ticketsys/internal/infrastructure/persistence/models"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/db"
	apperrors "ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepositoryImpl) Save(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user", "username", u.Username(), "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := u.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "username", model.Username)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Select("username", "email", "role", "password_hash", "updated_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update user", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		r.logger.Errorw("failed to find user", "id", id, "error", err)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model models.UserModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("username = ?", username).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		r.logger.Errorw("failed to find user by username", "username", username, "error", err)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		r.logger.Errorw("failed to find user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *UserRepositoryImpl) FindNotifiableByRoles(ctx context.Context, roles ...authorization.Role) ([]*user.User, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}

	var rows []*models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("role IN ? AND email <> ''", names).Order("username ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to find notifiable users", "roles", names, "error", err)
		return nil, fmt.Errorf("failed to find notifiable users: %w", err)
	}

	return r.toDomainList(rows)
}

func (r *UserRepositoryImpl) FindByRole(ctx context.Context, role authorization.Role) ([]*user.User, error) {
	var rows []*models.UserModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("role = ?", role.String()).Order("username ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to find users by role", "role", role, "error", err)
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	return r.toDomainList(rows)
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]*user.User, error) {
	var rows []*models.UserModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Order("username ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return r.toDomainList(rows)
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.UserModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete user", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}
	return nil
}

func (r *UserRepositoryImpl) toDomainList(rows []*models.UserModel) ([]*user.User, error) {
	users := make([]*user.User, 0, len(rows))
	for _, row := range rows {
		u, err := r.mapper.ToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("failed to map user: %w", err)
		}
		users = append(users, u)
	}
	return users, nil
}
