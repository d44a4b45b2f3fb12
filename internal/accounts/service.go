package accounts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Service validates input and owns the hashing policy for the credential
// store. Hashing is an unsalted SHA-256 hex digest of the UTF-8 password
// bytes; a salted or slow scheme would invalidate every stored digest, so
// changing it is an explicit migration decision, not a drive-by fix.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Register(ctx context.Context, username, email, password string) (Account, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if !usernameRe.MatchString(username) {
		return Account{}, fmt.Errorf("username must be 3-20 characters of letters, digits or underscore")
	}
	if !emailRe.MatchString(email) {
		return Account{}, fmt.Errorf("email address is not valid")
	}
	if len(password) < 6 || len(password) > 50 {
		return Account{}, fmt.Errorf("password must be 6-50 characters")
	}
	return s.Repo.Create(ctx, username, email, hashPassword(password))
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (Account, error) {
	return s.Repo.Authenticate(ctx, strings.TrimSpace(username), hashPassword(password))
}

func (s *Service) GetByUsername(ctx context.Context, username string) (Account, error) {
	return s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
}

func (s *Service) UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if len(newPassword) < 6 || len(newPassword) > 50 {
		return fmt.Errorf("password must be 6-50 characters")
	}
	return s.Repo.UpdatePassword(ctx, strings.TrimSpace(username),
		hashPassword(oldPassword), hashPassword(newPassword))
}

// DeleteAccount requires the password again even for an authenticated
// session, as a confirmation step.
func (s *Service) DeleteAccount(ctx context.Context, username, password string) error {
	return s.Repo.Delete(ctx, strings.TrimSpace(username), hashPassword(password))
}

func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	return s.Repo.List(ctx)
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
