package repository

import (
	"context"
	"errors"
	"fmt"

	"resume-builder/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Insert stores a new account. An existing username yields domain.ErrConflict;
// ON CONFLICT keeps two racing registrations from both succeeding.
func (r *AccountRepo) Insert(ctx context.Context, a domain.Account) error {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO users (username, password) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`,
		a.Username, a.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("username %q: %w", a.Username, domain.ErrConflict)
	}
	return nil
}

func (r *AccountRepo) Find(ctx context.Context, username string) (*domain.Account, error) {
	a := domain.Account{}
	err := r.pool.QueryRow(ctx,
		`SELECT username, password FROM users WHERE username = $1`, username).
		Scan(&a.Username, &a.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &a, nil
}
