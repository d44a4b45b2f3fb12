package accounts

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo backs the credential store when no database is configured.
// Same error contract as PGRepo.
type MemoryRepo struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[string]Account
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, accounts: make(map[string]Account)}
}

func (r *MemoryRepo) Create(ctx context.Context, username, email, passwordHash string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[username]; ok {
		return Account{}, ErrDuplicateUsername
	}
	for _, existing := range r.accounts {
		if existing.Email == email {
			return Account{}, ErrDuplicateEmail
		}
	}
	account := Account{
		ID:           r.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.nextID++
	r.accounts[username] = account
	return account, nil
}

func (r *MemoryRepo) Authenticate(ctx context.Context, username, passwordHash string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[username]
	if !ok || account.PasswordHash != passwordHash {
		return Account{}, ErrInvalidCredentials
	}
	now := time.Now().UTC()
	account.LastLogin = &now
	r.accounts[username] = account
	return account, nil
}

func (r *MemoryRepo) GetByUsername(ctx context.Context, username string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[username]
	if !ok {
		return Account{}, ErrNotFound
	}
	return account, nil
}

func (r *MemoryRepo) UpdatePassword(ctx context.Context, username, oldHash, newHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[username]
	if !ok || account.PasswordHash != oldHash {
		return ErrInvalidCredentials
	}
	account.PasswordHash = newHash
	r.accounts[username] = account
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, username, passwordHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[username]
	if !ok || account.PasswordHash != passwordHash {
		return ErrInvalidCredentials
	}
	delete(r.accounts, username)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	accounts := make([]Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].ID > accounts[j].ID
		}
		return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
	})
	return accounts, nil
}
