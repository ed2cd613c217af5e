package usecases

import (
	"time"

	"ticketsys/internal/domain/user"
)

type UserResult struct {
	ID        uint
	Username  string
	Email     string
	Role      string
	CreatedAt time.Time
}

func newUserResult(u *user.User) *UserResult {
	return &UserResult{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}
}
