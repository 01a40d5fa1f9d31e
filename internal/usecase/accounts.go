package usecase

import (
	"context"
	"errors"
	"fmt"

	"resume-builder/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Accounts registers users and checks their credentials. Passwords are kept
// as bcrypt hashes only.
type Accounts struct {
	repo AccountRepo
	cost int
}

func NewAccounts(repo AccountRepo) *Accounts {
	return &Accounts{repo: repo, cost: bcrypt.DefaultCost}
}

// Register fails with domain.ErrConflict when the username is taken.
func (a *Accounts) Register(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrValidation)
	}
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return a.repo.Insert(ctx, domain.Account{Username: username, PasswordHash: string(hash)})
}

// Login fails with domain.ErrUnauthorized for an unknown user or a wrong
// password; the two cases are indistinguishable to the caller.
func (a *Accounts) Login(ctx context.Context, username, password string) error {
	acc, err := a.repo.Find(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("login %q: %w", username, domain.ErrUnauthorized)
	}
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return fmt.Errorf("login %q: %w", username, domain.ErrUnauthorized)
	}
	return nil
}
