package user

import (
	"context"

	"ticketsys/internal/shared/authorization"
)

type Repository interface {
	Save(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindNotifiableByRoles returns users in any of the given roles that
	// have a non-empty email address.
	FindNotifiableByRoles(ctx context.Context, roles ...authorization.Role) ([]*User, error)
	FindByRole(ctx context.Context, role authorization.Role) ([]*User, error)
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id uint) error
}
