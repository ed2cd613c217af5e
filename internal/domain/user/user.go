package user

import (
	"fmt"
	"net/mail"
	"time"

	"ticketsys/internal/shared/authorization"
)

// User is the aggregate root for an account. The role is an explicit
// enumeration; there are no ad hoc staff flags.
type User struct {
	id           uint
	username     string
	email        string
	role         authorization.Role
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(username, email, passwordHash string, role authorization.Role) (*User, error) {
	if len(username) == 0 {
		return nil, fmt.Errorf("username is required")
	}
	if len(username) > 150 {
		return nil, fmt.Errorf("username exceeds maximum length of 150 characters")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("invalid email address: %s", email)
		}
	}
	if len(passwordHash) == 0 {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := time.Now()
	return &User{
		username:     username,
		email:        email,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(id uint, username, email string, role authorization.Role, passwordHash string, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if len(username) == 0 {
		return nil, fmt.Errorf("username is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:           id,
		username:     username,
		email:        email,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Role() authorization.Role {
	return u.role
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// DisplayName is how the user appears in audit entries and emails.
func (u *User) DisplayName() string {
	return u.username
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) SetUsername(username string) error {
	if len(username) == 0 {
		return fmt.Errorf("username is required")
	}
	if len(username) > 150 {
		return fmt.Errorf("username exceeds maximum length of 150 characters")
	}
	u.username = username
	u.touch()
	return nil
}

func (u *User) SetEmail(email string) error {
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("invalid email address: %s", email)
		}
	}
	u.email = email
	u.touch()
	return nil
}

func (u *User) SetRole(role authorization.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	u.touch()
	return nil
}

func (u *User) SetPasswordHash(hash string) error {
	if len(hash) == 0 {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = hash
	u.touch()
	return nil
}

func (u *User) touch() {
	u.updatedAt = time.Now()
}
