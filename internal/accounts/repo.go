package accounts

import (
	"context"
	"errors"
)

var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("account not found")
)

// Repo is the credential store. Every operation is a single transaction;
// a failed operation leaves the table unchanged. Password hashing happens in
// the service layer, the repo only ever sees digests.
type Repo interface {
	Create(ctx context.Context, username, email, passwordHash string) (Account, error)
	Authenticate(ctx context.Context, username, passwordHash string) (Account, error)
	GetByUsername(ctx context.Context, username string) (Account, error)
	UpdatePassword(ctx context.Context, username, oldHash, newHash string) error
	Delete(ctx context.Context, username, passwordHash string) error
	List(ctx context.Context) ([]Account, error)
}
