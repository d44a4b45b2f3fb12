package accounts

import (
	"context"
	"errors"
	"testing"
)

func newTestService() *Service {
	return NewService(NewMemoryRepo())
}

func TestRegisterAndDuplicates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	account, err := svc.Register(ctx, "bob", "bob@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if account.ID == 0 {
		t.Fatal("expected generated id")
	}
	if account.PasswordHash == "secret1" {
		t.Fatal("plaintext password must never be stored")
	}

	if _, err := svc.Register(ctx, "bob", "other@x.com", "secret2"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "bob@x.com", "secret2"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"username too short", "ab", "a@b.com", "secret1"},
		{"username too long", "abcdefghijklmnopqrstu", "a@b.com", "secret1"},
		{"username bad chars", "bob smith", "a@b.com", "secret1"},
		{"bad email", "bob", "not-an-email", "secret1"},
		{"password too short", "bob", "a@b.com", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.username, tc.email, tc.password); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "bob", "bob@x.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "bob", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	account, err := svc.Authenticate(ctx, "bob", "secret1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if account.LastLogin == nil {
		t.Fatal("expected lastLogin stamped on successful login")
	}
}

func TestUpdatePassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "bob", "bob@x.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.UpdatePassword(ctx, "bob", "wrong", "secret2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.UpdatePassword(ctx, "bob", "secret1", "short"); err == nil {
		t.Fatal("expected validation error for short new password")
	}
	if err := svc.UpdatePassword(ctx, "bob", "secret1", "secret2"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "bob", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("old password should no longer authenticate")
	}
	if _, err := svc.Authenticate(ctx, "bob", "secret2"); err != nil {
		t.Fatalf("new password should authenticate: %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "bob", "bob@x.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.DeleteAccount(ctx, "bob", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.GetByUsername(ctx, "bob"); err != nil {
		t.Fatal("row must be intact after failed delete")
	}

	if err := svc.DeleteAccount(ctx, "bob", "secret1"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, err := svc.GetByUsername(ctx, "bob"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListAccountsNewestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := svc.Register(ctx, name, name+"@x.com", "secret1"); err != nil {
			t.Fatalf("Register %s: %v", name, err)
		}
	}

	accounts, err := svc.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(accounts))
	}
	if accounts[0].Username != "third" || accounts[2].Username != "first" {
		t.Fatalf("expected newest-first ordering, got %v", []string{
			accounts[0].Username, accounts[1].Username, accounts[2].Username,
		})
	}
}

func TestHashPasswordIsDeterministicSHA256(t *testing.T) {
	got := hashPassword("secret1")
	// sha256("secret1") as a hex digest
	want := "5b11618c2e44027877d0cd0921ed166b9f176f50587fc91e7534dd2946db77d6"
	if got != want {
		t.Fatalf("hashPassword mismatch: got %s, want %s", got, want)
	}
}
