package mappers

import (
	"time"

	"ticketsys/internal/domain/user"
	"ticketsys/internal/infrastructure/persistence/models"
	"ticketsys/internal/shared/authorization"
)

// UserMapper handles the conversion between User domain entities and
// persistence models.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		Email:        u.Email(),
		Role:         u.Role().String(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt().UnixMilli(),
		UpdatedAt:    u.UpdatedAt().UnixMilli(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.Username,
		model.Email,
		authorization.ParseRole(model.Role),
		model.PasswordHash,
		time.UnixMilli(model.CreatedAt),
		time.UnixMilli(model.UpdatedAt),
	)
}
