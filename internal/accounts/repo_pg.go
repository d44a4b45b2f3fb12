package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, username, email, passwordHash string) (Account, error) {
	const query = `
INSERT INTO users (username, email, password_hash)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	var account Account
	account.Username = username
	account.Email = email
	account.PasswordHash = passwordHash
	err := r.DB.QueryRowContext(ctx, query, username, email, passwordHash).
		Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return Account{}, mapUniqueViolation(err)
	}
	return account, nil
}

// Authenticate looks the account up by username, compares digests, and stamps
// last_login in the same transaction. Unknown username and wrong password are
// indistinguishable to the caller.
func (r *PGRepo) Authenticate(ctx context.Context, username, passwordHash string) (Account, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Account{}, err
	}
	defer func() { _ = tx.Rollback() }()

	account, err := scanAccount(tx.QueryRowContext(ctx, selectByUsername, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}
	if account.PasswordHash != passwordHash {
		return Account{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE username = $2`, now, username); err != nil {
		return Account{}, err
	}
	if err := tx.Commit(); err != nil {
		return Account{}, err
	}
	account.LastLogin = &now
	return account, nil
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (Account, error) {
	account, err := scanAccount(r.DB.QueryRowContext(ctx, selectByUsername, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return account, nil
}

func (r *PGRepo) UpdatePassword(ctx context.Context, username, oldHash, newHash string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $1 WHERE username = $2 AND password_hash = $3`,
		newHash, username, oldHash)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

func (r *PGRepo) Delete(ctx context.Context, username, passwordHash string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM users WHERE username = $1 AND password_hash = $2`,
		username, passwordHash)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

func (r *PGRepo) List(ctx context.Context) ([]Account, error) {
	const query = `
SELECT id, username, email, password_hash, created_at, last_login
FROM users
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

const selectByUsername = `
SELECT id, username, email, password_hash, created_at, last_login
FROM users
WHERE username = $1
LIMIT 1`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (Account, error) {
	var account Account
	var lastLogin sql.NullTime
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		return Account{}, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		account.LastLogin = &t
	}
	return account, nil
}

// mapUniqueViolation translates a 23505 on one of the two named unique
// constraints into the matching duplicate error. Races between concurrent
// signups resolve here, at commit time.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return ErrDuplicateUsername
	case "users_email_key":
		return ErrDuplicateEmail
	default:
		return err
	}
}

func requireOneRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidCredentials
	}
	return nil
}
