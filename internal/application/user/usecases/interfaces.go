// Package usecases implements account management and authentication.
package usecases

import (
	"context"
	"time"
)

// PasswordHasher abstracts the bcrypt implementation so tests can avoid the
// real cost factor.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenGenerator issues the signed access token returned by login.
type TokenGenerator interface {
	Generate(userID uint, username string, role string) (token string, expiresAt time.Time, err error)
}

// TransactionManager runs a function inside one database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
